package nbformat

import (
	"encoding/json"
	"fmt"
)

// InvalidError reports why a document failed the notebook validity rule.
type InvalidError struct {
	Reason string
}

func (e *InvalidError) Error() string {
	return "invalid notebook: " + e.Reason
}

func invalidf(format string, args ...any) error {
	return &InvalidError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the notebook validity rule on the typed model: metadata
// present, numeric format markers, and a cell list where every cell is one
// of the recognized kinds. Documents failing this must never be sent to or
// accepted from the sharing backend.
func (n *Notebook) Validate() error {
	if n == nil {
		return invalidf("document is nil")
	}
	if n.Metadata == nil {
		return invalidf("missing metadata")
	}
	if n.NBFormat == 0 {
		return invalidf("missing nbformat")
	}
	if n.Cells == nil {
		return invalidf("missing cells")
	}
	for i, cell := range n.Cells {
		if !cell.Type.Recognized() {
			return invalidf("cell %d has unrecognized type %q", i, cell.Type)
		}
	}
	return nil
}

// ValidateContent applies the same validity rule to arbitrary decoded JSON
// before it is trusted as a notebook: metadata must be an object, nbformat
// and nbformat_minor numbers, and cells an array of recognized cell kinds.
// It is pure and never panics; any failure means "reject".
func ValidateContent(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return invalidf("not a JSON object: %v", err)
	}
	if doc == nil {
		return invalidf("document is null")
	}
	md, ok := doc["metadata"]
	if !ok {
		return invalidf("missing metadata")
	}
	if _, ok := md.(map[string]any); !ok {
		return invalidf("metadata is not an object")
	}
	for _, key := range []string{"nbformat", "nbformat_minor"} {
		v, ok := doc[key]
		if !ok {
			return invalidf("missing %s", key)
		}
		if _, ok := v.(float64); !ok {
			return invalidf("%s is not a number", key)
		}
	}
	rawCells, ok := doc["cells"]
	if !ok {
		return invalidf("missing cells")
	}
	cells, ok := rawCells.([]any)
	if !ok {
		return invalidf("cells is not an array")
	}
	for i, rawCell := range cells {
		cell, ok := rawCell.(map[string]any)
		if !ok {
			return invalidf("cell %d is not an object", i)
		}
		kind, _ := cell["cell_type"].(string)
		if !CellType(kind).Recognized() {
			return invalidf("cell %d has unrecognized type %q", i, kind)
		}
	}
	return nil
}
