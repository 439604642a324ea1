// Package nbformat models Jupyter notebook documents (.ipynb) at the level
// of detail the sharing service needs: ordered cells, an open metadata map,
// and the nbformat version markers. Unknown fields survive JSON round-trips
// so a notebook produced by any editor can be shared and retrieved without
// losing content.
package nbformat

import (
	"encoding/json"
	"strings"
)

// CellType identifies one of the three recognized notebook cell kinds.
type CellType string

const (
	CellCode     CellType = "code"
	CellMarkdown CellType = "markdown"
	CellRaw      CellType = "raw"
)

// Recognized reports whether t is one of the three cell kinds a valid
// notebook may contain.
func (t CellType) Recognized() bool {
	switch t {
	case CellCode, CellMarkdown, CellRaw:
		return true
	}
	return false
}

// Metadata is the open string-keyed mapping carried by notebooks and cells.
type Metadata = map[string]any

// Source holds cell source text. The on-disk format allows either a single
// string or an array of line strings; both decode into the line-array form.
type Source []string

// UnmarshalJSON accepts both the string and string-array encodings.
func (s *Source) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*s = lines
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*s = Source{text}
	return nil
}

// Text returns the cell source as a single string.
func (s Source) Text() string {
	return strings.Join(s, "")
}

// Cell is a single notebook cell. Fields beyond the ones modeled here
// (outputs, execution_count, attachments, id) are retained verbatim in an
// extra map so marshaling does not drop them.
type Cell struct {
	Type     CellType
	Source   Source
	Metadata Metadata

	extra map[string]json.RawMessage
}

// cellKnownKeys are the keys lifted out of the raw object into typed fields.
var cellKnownKeys = []string{"cell_type", "source", "metadata"}

// UnmarshalJSON decodes the typed fields and stashes everything else.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["cell_type"]; ok {
		if err := json.Unmarshal(raw, &c.Type); err != nil {
			return err
		}
	}
	if raw, ok := fields["source"]; ok {
		if err := json.Unmarshal(raw, &c.Source); err != nil {
			return err
		}
	}
	if raw, ok := fields["metadata"]; ok {
		if err := json.Unmarshal(raw, &c.Metadata); err != nil {
			return err
		}
	}
	for _, k := range cellKnownKeys {
		delete(fields, k)
	}
	c.extra = fields
	return nil
}

// MarshalJSON re-assembles the typed fields with the retained extras.
func (c Cell) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.extra)+len(cellKnownKeys))
	for k, v := range c.extra {
		out[k] = v
	}
	var err error
	if out["cell_type"], err = json.Marshal(c.Type); err != nil {
		return nil, err
	}
	src := c.Source
	if src == nil {
		src = Source{}
	}
	if out["source"], err = json.Marshal(src); err != nil {
		return nil, err
	}
	md := c.Metadata
	if md == nil {
		md = Metadata{}
	}
	if out["metadata"], err = json.Marshal(md); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// Notebook is an in-memory notebook document. Cell order is significant.
type Notebook struct {
	Cells         []Cell   `json:"cells"`
	Metadata      Metadata `json:"metadata"`
	NBFormat      int      `json:"nbformat"`
	NBFormatMinor int      `json:"nbformat_minor"`
}

// New returns an empty notebook at the current major/minor format version,
// the same blank document the editor opens when no shared notebook loads.
func New() *Notebook {
	return &Notebook{
		Cells:         []Cell{},
		Metadata:      Metadata{},
		NBFormat:      4,
		NBFormatMinor: 5,
	}
}

// Clone deep-copies the notebook, retained extras included, via a JSON
// round-trip. The clone shares no state with the original.
func (n *Notebook) Clone() (*Notebook, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	var out Notebook
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
