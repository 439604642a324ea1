package nbformat

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadFile loads and validates a notebook from an .ipynb file. The raw
// bytes are checked against the validity rule before the typed model is
// populated, so a malformed file is rejected rather than partially decoded.
func ReadFile(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}
	if err := ValidateContent(data); err != nil {
		return nil, fmt.Errorf("read notebook %s: %w", path, err)
	}
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("read notebook %s: %w", path, err)
	}
	return &nb, nil
}

// WriteFile writes the notebook as indented JSON, matching the single-space
// indent Jupyter itself uses for .ipynb files.
func WriteFile(path string, nb *Notebook) error {
	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return fmt.Errorf("write notebook: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write notebook %s: %w", path, err)
	}
	return nil
}
