package sharing

import (
	"encoding/json"

	"github.com/nbshare/cli/pkg/nbformat"
)

// Token is the bearer credential returned by the auth endpoints. It carries
// no expiry of its own; staleness only shows up as a failed authenticated
// call.
type Token struct {
	Token string `json:"token"`
}

// SharedNotebook identifies the server-side resource a share or update
// produced. ReadableID may be empty when the backend has not assigned an
// alias.
type SharedNotebook struct {
	ID         string `json:"id"`
	ReadableID string `json:"readable_id"`
	Password   string `json:"password,omitempty"`
}

// ShareResponse is the body returned by the create and update endpoints.
type ShareResponse struct {
	Message  string         `json:"message"`
	Notebook SharedNotebook `json:"notebook"`
}

// NotebookResponse is the body returned by the retrieval endpoints.
type NotebookResponse struct {
	ID         string             `json:"id"`
	DomainID   string             `json:"domain_id"`
	ReadableID string             `json:"readable_id"`
	Content    *nbformat.Notebook `json:"content"`
}

// hasRequiredKeys is the generic structural primitive every response
// validator composes: true iff data decodes to a non-null JSON object
// carrying all of the given keys. Pure and total over arbitrary bytes.
func hasRequiredKeys(data []byte, keys ...string) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return false
	}
	for _, key := range keys {
		if _, ok := obj[key]; !ok {
			return false
		}
	}
	return true
}

// validateToken decodes an auth response body, rejecting anything that is
// not an object with a string token.
func validateToken(data []byte) (Token, bool) {
	if !hasRequiredKeys(data, "token") {
		return Token{}, false
	}
	var obj struct {
		Token *string `json:"token"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.Token == nil {
		return Token{}, false
	}
	return Token{Token: *obj.Token}, true
}

// validateShareResponse decodes a create/update response body. The nested
// notebook object must carry both identifier keys and its id must be a
// valid UUID, or the whole response is rejected.
func validateShareResponse(data []byte) (*ShareResponse, bool) {
	if !hasRequiredKeys(data, "message", "notebook") {
		return nil, false
	}
	var outer struct {
		Notebook json.RawMessage `json:"notebook"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, false
	}
	if !hasRequiredKeys(outer.Notebook, "id", "readable_id") {
		return nil, false
	}
	var resp ShareResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}
	if !IsValidUUID(resp.Notebook.ID) {
		return nil, false
	}
	return &resp, true
}

// validateNotebookResponse decodes a retrieval response body, requiring a
// valid UUID id and a content payload that passes the notebook validity
// rule before anything is trusted.
func validateNotebookResponse(data []byte) (*NotebookResponse, bool) {
	if !hasRequiredKeys(data, "id", "domain_id", "readable_id", "content") {
		return nil, false
	}
	var outer struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, false
	}
	if err := nbformat.ValidateContent(outer.Content); err != nil {
		return nil, false
	}
	var resp NotebookResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}
	if !IsValidUUID(resp.ID) {
		return nil, false
	}
	return &resp, true
}
