package nbformat

import "time"

// Reserved metadata keys used to record a notebook's sharing state. The
// document is self-describing: there is no registry of shared notebooks
// beyond these keys in its own metadata block.
const (
	keySharedID          = "sharedId"
	keyReadableID        = "readableId"
	keySharedName        = "sharedName"
	keyLastShared        = "lastShared"
	keyPasswordProtected = "isPasswordProtected"
	keyDomainID          = "domainId"
	keySharedNotebook    = "isSharedNotebook"
)

var sharingKeys = []string{
	keySharedID,
	keyReadableID,
	keySharedName,
	keyLastShared,
	keyPasswordProtected,
	keyDomainID,
	keySharedNotebook,
}

// metaString reads a string-valued metadata key, tolerating absent or
// non-string values.
func (n *Notebook) metaString(key string) string {
	if n.Metadata == nil {
		return ""
	}
	s, _ := n.Metadata[key].(string)
	return s
}

// SharedID returns the canonical UUID assigned on first share, or "".
func (n *Notebook) SharedID() string { return n.metaString(keySharedID) }

// ReadableID returns the human-friendly alias, or "".
func (n *Notebook) ReadableID() string { return n.metaString(keyReadableID) }

// SharedName returns the display name the user shared under, or "".
func (n *Notebook) SharedName() string { return n.metaString(keySharedName) }

// IsShared reports whether the document already maps to a server-side
// shared resource.
func (n *Notebook) IsShared() bool { return n.SharedID() != "" }

// LastShared returns the recorded time of the last successful share or
// update, or the zero time if unset or unparseable.
func (n *Notebook) LastShared() time.Time {
	t, err := time.Parse(time.RFC3339, n.metaString(keyLastShared))
	if err != nil {
		return time.Time{}
	}
	return t
}

// ShareInfo is the sharing state written back into a notebook's metadata
// after a successful share or update.
type ShareInfo struct {
	SharedID          string
	ReadableID        string
	Name              string
	LastShared        time.Time
	PasswordProtected bool
}

// SetShareInfo records a successful share in the document's metadata.
// Callers must only invoke this after the backend confirmed the operation;
// metadata is never mutated on a failed share.
func (n *Notebook) SetShareInfo(info ShareInfo) {
	if n.Metadata == nil {
		n.Metadata = Metadata{}
	}
	n.Metadata[keySharedID] = info.SharedID
	n.Metadata[keyReadableID] = info.ReadableID
	n.Metadata[keySharedName] = info.Name
	n.Metadata[keyLastShared] = info.LastShared.UTC().Format(time.RFC3339)
	n.Metadata[keyPasswordProtected] = info.PasswordProtected
}

// SetLastShared refreshes only the recency marker, used by the silent
// resync path where the identifiers are already recorded.
func (n *Notebook) SetLastShared(t time.Time) {
	if n.Metadata == nil {
		n.Metadata = Metadata{}
	}
	n.Metadata[keyLastShared] = t.UTC().Format(time.RFC3339)
}

// MarkRetrieved flags a locally materialized copy of a shared notebook with
// the identifiers the backend returned for it.
func (n *Notebook) MarkRetrieved(id, readableID, domainID string) {
	if n.Metadata == nil {
		n.Metadata = Metadata{}
	}
	n.Metadata[keySharedNotebook] = true
	n.Metadata[keySharedID] = id
	n.Metadata[keyReadableID] = readableID
	n.Metadata[keyDomainID] = domainID
}

// MarkReadOnly sets editable:false on every cell so a retrieved shared
// notebook renders view-only.
func (n *Notebook) MarkReadOnly() {
	for i := range n.Cells {
		if n.Cells[i].Metadata == nil {
			n.Cells[i].Metadata = Metadata{}
		}
		n.Cells[i].Metadata["editable"] = false
	}
}

// StripSharing removes every sharing-related metadata key and re-enables
// cell editing. Applied to a clone, it yields a fresh never-shared notebook
// with all other content intact (the Create Copy transform).
func (n *Notebook) StripSharing() {
	for _, key := range sharingKeys {
		delete(n.Metadata, key)
	}
	for i := range n.Cells {
		delete(n.Cells[i].Metadata, "editable")
	}
}

// DefaultName derives a share name from the current time, used when the
// user does not supply one: Notebook_YYYY-MM-DD_HH-MM-SS.
func DefaultName() string {
	return time.Now().Format("Notebook_2006-01-02_15-04-05")
}
