// Package sharing implements the client for the notebook sharing backend:
// token issuance and refresh, create/update/retrieve of shared notebooks,
// and derivation of shareable retrieval URLs. All responses are validated
// against the expected schemas before being trusted; failures surface as
// the typed errors in errors.go and are never swallowed.
package sharing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nbshare/cli/pkg/nbformat"
)

const defaultTimeout = 30 * time.Second

// Client talks to one sharing backend. It owns its cached bearer token
// exclusively; construct independent clients for independent sessions.
// Methods are safe for concurrent use, but a stale token is only detected
// by a failed call — callers re-authenticate explicitly (see Token).
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
	logger  *slog.Logger

	mu    sync.Mutex
	token *Token
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets the diagnostic logger. The client logs at debug level
// only and never produces user-facing output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithToken seeds the token cache, e.g. from an environment variable or
// keyring, skipping the initial issuance round-trip.
func WithToken(tok Token) Option {
	return func(c *Client) { c.token = &tok }
}

// New builds a client for the API rooted at rawURL (e.g.
// "http://localhost:8080/api/v1"). The path is normalized to end with "/"
// so endpoint composition is unambiguous.
func New(rawURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &ValidationError{Op: "new client", Reason: "invalid API URL " + rawURL}
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c := &Client{
		baseURL: u,
		httpc:   &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Token returns the cached bearer token, authenticating first if none is
// cached. It does not re-authenticate after the token has gone stale
// mid-session; a late authorization failure from the backend surfaces to
// the caller, who may call Authenticate again.
func (c *Client) Token(ctx context.Context) (Token, error) {
	c.mu.Lock()
	if c.token != nil {
		tok := *c.token
		c.mu.Unlock()
		return tok, nil
	}
	c.mu.Unlock()
	return c.Authenticate(ctx)
}

// Authenticate obtains a fresh bearer token from the issuance endpoint and
// replaces the cached one.
func (c *Client) Authenticate(ctx context.Context) (Token, error) {
	return c.issueToken(ctx, "authenticate", c.baseURL.JoinPath("auth", "issue"), nil)
}

// Refresh re-issues the given token, or the cached one if tok is nil, and
// replaces the cached token with the result.
func (c *Client) Refresh(ctx context.Context, tok *Token) (Token, error) {
	if tok == nil {
		current, err := c.Token(ctx)
		if err != nil {
			return Token{}, err
		}
		tok = &current
	}
	return c.issueToken(ctx, "refresh token", c.baseURL.JoinPath("auth", "refresh"), tok)
}

func (c *Client) issueToken(ctx context.Context, op string, endpoint *url.URL, payload *Token) (Token, error) {
	c.logger.Debug("requesting token", "op", op, "endpoint", endpoint.String())
	code, status, body, err := c.do(ctx, op, http.MethodPost, endpoint, "", payload, nil)
	if err != nil {
		return Token{}, err
	}
	if code < 200 || code >= 300 {
		return Token{}, &AuthenticationError{Op: op, Status: status}
	}
	tok, ok := validateToken(body)
	if !ok {
		return Token{}, &AuthenticationError{Op: op, Status: status, Err: errInvalidTokenBody}
	}
	c.mu.Lock()
	c.token = &tok
	c.mu.Unlock()
	return tok, nil
}

// Share stores the notebook as a brand-new shared resource and returns the
// identifiers the backend assigned. Every call creates a new resource;
// callers holding a sharedId must use Update instead to avoid orphaning
// duplicates. An optional password becomes the shared secret for future
// edits of the resource.
func (c *Client) Share(ctx context.Context, nb *nbformat.Notebook, password string) (*ShareResponse, error) {
	return c.submit(ctx, "share notebook", http.MethodPost, "", nb, password)
}

// Update replaces the content of the existing shared resource addressed by
// id. Validation and failure semantics match Share.
func (c *Client) Update(ctx context.Context, id string, nb *nbformat.Notebook, password string) (*ShareResponse, error) {
	const op = "update notebook"
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &ValidationError{Op: op, Reason: "notebook id is required"}
	}
	return c.submit(ctx, op, http.MethodPut, id, nb, password)
}

type shareRequest struct {
	Notebook *nbformat.Notebook `json:"notebook"`
	Password string             `json:"password,omitempty"`
}

func (c *Client) submit(ctx context.Context, op, method, id string, nb *nbformat.Notebook, password string) (*ShareResponse, error) {
	if err := nb.Validate(); err != nil {
		// Invalid documents never reach the network.
		return nil, &ValidationError{Op: op, Reason: err.Error()}
	}
	tok, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL.JoinPath("notebooks")
	if id != "" {
		endpoint = c.baseURL.JoinPath("notebooks", id)
	}
	c.logger.Debug("submitting notebook", "op", op, "endpoint", endpoint.String())
	code, status, body, err := c.do(ctx, op, method, endpoint, id, shareRequest{Notebook: nb, Password: password}, &tok)
	if err != nil {
		return nil, err
	}
	if code < 200 || code >= 300 {
		return nil, &ProtocolError{Op: op, ID: id, Status: status}
	}
	resp, ok := validateShareResponse(body)
	if !ok {
		return nil, &ProtocolError{Op: op, ID: id, Status: status, Reason: "unexpected response shape"}
	}
	c.logger.Debug("notebook submitted", "op", op, "id", resp.Notebook.ID, "readable_id", resp.Notebook.ReadableID)
	return resp, nil
}

// Retrieve fetches a shared notebook by canonical UUID or readable id,
// choosing the endpoint by the identifier shape.
func (c *Client) Retrieve(ctx context.Context, id string) (*NotebookResponse, error) {
	const op = "retrieve notebook"
	endpoint, err := c.retrieveEndpoint(op, id)
	if err != nil {
		return nil, err
	}
	tok, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("retrieving notebook", "endpoint", endpoint.String())
	code, status, body, err := c.do(ctx, op, http.MethodGet, endpoint, id, nil, &tok)
	if err != nil {
		return nil, err
	}
	if code < 200 || code >= 300 {
		return nil, &ProtocolError{Op: op, ID: id, Status: status}
	}
	resp, ok := validateNotebookResponse(body)
	if !ok {
		return nil, &ProtocolError{Op: op, ID: id, Status: status, Reason: "unexpected response shape"}
	}
	return resp, nil
}

// RetrieveURL derives the URL Retrieve would call for id, without any
// network traffic, so callers can present a shareable link independent of
// confirming the backend can serve it. When both identifiers are known the
// caller should pass the readable id, which makes the friendlier link.
func (c *Client) RetrieveURL(id string) (*url.URL, error) {
	return c.retrieveEndpoint("make retrieve URL", id)
}

func (c *Client) retrieveEndpoint(op, id string) (*url.URL, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &ValidationError{Op: op, Reason: "notebook id is required"}
	}
	if IsValidUUID(id) {
		return c.baseURL.JoinPath("notebooks", id), nil
	}
	return c.baseURL.JoinPath("notebooks", "get-by-readable-id", id), nil
}

// do performs one HTTP exchange and returns the status code, status text,
// and raw body. Transport failures come back as *NetworkError; status and
// schema handling is left to the caller.
func (c *Client) do(ctx context.Context, op, method string, endpoint *url.URL, id string, payload any, tok *Token) (int, string, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, "", nil, &ValidationError{Op: op, Reason: "encode request: " + err.Error()}
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return 0, "", nil, &ValidationError{Op: op, Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if tok != nil {
		req.Header.Set("Authorization", "Bearer "+tok.Token)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, "", nil, &NetworkError{Op: op, ID: id, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, &NetworkError{Op: op, ID: id, Err: err}
	}
	return resp.StatusCode, resp.Status, body, nil
}
