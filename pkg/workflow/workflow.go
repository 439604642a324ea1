// Package workflow implements the caller-side share state machine: deciding
// per notebook whether an action is a first share, a re-share of an
// already-shared document, or a silent resync, and writing the resulting
// sharing metadata back into the document. The document's own metadata is
// the only state — a notebook with no sharedId is Unshared, one with a
// sharedId is Shared.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/nbshare/cli/pkg/nbformat"
	"github.com/nbshare/cli/pkg/sharing"
	"github.com/samber/lo"
)

// SharingService defines the subset of the sharing client that the
// workflow uses.
type SharingService interface {
	Share(ctx context.Context, nb *nbformat.Notebook, password string) (*sharing.ShareResponse, error)
	Update(ctx context.Context, id string, nb *nbformat.Notebook, password string) (*sharing.ShareResponse, error)
	Retrieve(ctx context.Context, id string) (*sharing.NotebookResponse, error)
	RetrieveURL(id string) (*url.URL, error)
}

// ErrSyncSkipped is returned by SyncOnSave when there is nothing to resync:
// the document has never been shared, or a manual share currently owns it.
var ErrSyncSkipped = errors.New("sync skipped")

// ErrShareInProgress is returned when a manual share is requested for a
// handle that already has one in flight.
var ErrShareInProgress = errors.New("a share is already in progress for this notebook")

// Handle pairs a notebook with its in-progress marker. The marker is what
// keeps an autosave-triggered resync from racing the manual share that
// caused the save; it is held only for the duration of ShareManual and
// cleared on every exit path.
type Handle struct {
	mu          sync.Mutex
	nb          *nbformat.Notebook
	manualShare bool
}

// NewHandle wraps a notebook for use with a Manager.
func NewHandle(nb *nbformat.Notebook) *Handle {
	return &Handle{nb: nb}
}

// Notebook returns the wrapped document. The workflow is the only
// component that mutates its sharing metadata.
func (h *Handle) Notebook() *nbformat.Notebook { return h.nb }

func (h *Handle) beginManualShare() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.manualShare {
		return false
	}
	h.manualShare = true
	return true
}

func (h *Handle) endManualShare() {
	h.mu.Lock()
	h.manualShare = false
	h.mu.Unlock()
}

func (h *Handle) manualShareInProgress() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.manualShare
}

// Manager drives share state transitions against a sharing service.
type Manager struct {
	svc    SharingService
	logger *slog.Logger
	now    func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger }
}

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager builds a Manager over the given sharing service.
func NewManager(svc SharingService, opts ...ManagerOption) *Manager {
	m := &Manager{svc: svc, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ShareOptions carries the user's choices for a manual share.
type ShareOptions struct {
	// Name is the display name to share under. Defaults to the name the
	// notebook was last shared under, then to a timestamp-derived name.
	Name string
	// Password, when set, protects future edits of the shared resource.
	Password string
}

// ShareResult reports a completed manual share.
type ShareResult struct {
	SharedID   string
	ReadableID string
	Name       string
	Password   string
	URL        *url.URL
	// Created is true for a first share, false for a re-share that updated
	// the existing resource.
	Created bool
}

// ShareManual performs the user-initiated share action. An Unshared
// document is created on the backend; a Shared one is updated in place so
// no duplicate resource is orphaned. Sharing metadata is written into the
// document only after the backend confirms, so a failure leaves the
// document exactly as it was. While the share is in flight the handle's
// marker suppresses autosave resyncs for the same document.
func (m *Manager) ShareManual(ctx context.Context, h *Handle, opts ShareOptions) (*ShareResult, error) {
	if !h.beginManualShare() {
		return nil, ErrShareInProgress
	}
	defer h.endManualShare()

	nb := h.Notebook()
	var (
		resp    *sharing.ShareResponse
		err     error
		created bool
	)
	if id := nb.SharedID(); id != "" {
		m.logger.Debug("re-sharing notebook", "id", id)
		resp, err = m.svc.Update(ctx, id, nb, opts.Password)
	} else {
		m.logger.Debug("sharing notebook for the first time")
		resp, err = m.svc.Share(ctx, nb, opts.Password)
		created = true
	}
	if err != nil {
		return nil, err
	}

	name := lo.CoalesceOrEmpty(opts.Name, nb.SharedName(), nbformat.DefaultName())
	nb.SetShareInfo(nbformat.ShareInfo{
		SharedID:          resp.Notebook.ID,
		ReadableID:        resp.Notebook.ReadableID,
		Name:              name,
		LastShared:        m.now(),
		PasswordProtected: opts.Password != "",
	})

	// Readable id preferred for the user-facing link; the UUID is always
	// present as the fallback.
	linkID := lo.Ternary(resp.Notebook.ReadableID != "", resp.Notebook.ReadableID, resp.Notebook.ID)
	link, err := m.svc.RetrieveURL(linkID)
	if err != nil {
		return nil, err
	}
	return &ShareResult{
		SharedID:   resp.Notebook.ID,
		ReadableID: resp.Notebook.ReadableID,
		Name:       name,
		Password:   opts.Password,
		URL:        link,
		Created:    created,
	}, nil
}

// SyncOnSave performs the silent autosave-path resync of an already-shared
// notebook. It returns ErrSyncSkipped when the document is Unshared or a
// manual share currently owns it (the save that triggered this sync was
// the manual share's own). Any backend failure is returned for the caller
// to log as a non-blocking warning; the document is left untouched.
func (m *Manager) SyncOnSave(ctx context.Context, h *Handle) error {
	if h.manualShareInProgress() {
		m.logger.Debug("skipping resync, manual share in flight")
		return ErrSyncSkipped
	}
	nb := h.Notebook()
	id := nb.SharedID()
	if id == "" {
		return ErrSyncSkipped
	}
	if _, err := m.svc.Update(ctx, id, nb, ""); err != nil {
		return fmt.Errorf("resync of %s: %w", id, err)
	}
	nb.SetLastShared(m.now())
	return nil
}

// CreateCopy clones a notebook and strips every sharing-related metadata
// key, including the view-only cell markers, producing a fresh
// never-shared document. All other content is preserved.
func CreateCopy(nb *nbformat.Notebook) (*nbformat.Notebook, error) {
	clone, err := nb.Clone()
	if err != nil {
		return nil, fmt.Errorf("create copy: %w", err)
	}
	clone.StripSharing()
	return clone, nil
}

// LoadResult is a shared notebook materialized for view-only display.
type LoadResult struct {
	Notebook   *nbformat.Notebook
	Filename   string
	ID         string
	ReadableID string
	DomainID   string
}

// LoadShared retrieves a shared notebook and prepares the local view-only
// copy: every cell marked non-editable and the retrieval identifiers
// recorded in the document metadata. The suggested filename prefers the
// readable id.
func (m *Manager) LoadShared(ctx context.Context, id string) (*LoadResult, error) {
	resp, err := m.svc.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}
	nb := resp.Content
	nb.MarkReadOnly()
	nb.MarkRetrieved(resp.ID, resp.ReadableID, resp.DomainID)
	name := lo.Ternary(resp.ReadableID != "", resp.ReadableID, resp.ID)
	return &LoadResult{
		Notebook:   nb,
		Filename:   "Shared_" + name + ".ipynb",
		ID:         resp.ID,
		ReadableID: resp.ReadableID,
		DomainID:   resp.DomainID,
	}, nil
}
