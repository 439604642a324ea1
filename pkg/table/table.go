// Package table holds small pterm rendering helpers shared by the command
// layer.
package table

import "github.com/pterm/pterm"

// PrintTableNoPad renders tabular data without left padding so output
// lines up with the surrounding pterm printers.
func PrintTableNoPad(data pterm.TableData, hasHeader bool) {
	t := pterm.DefaultTable.WithData(data).WithLeftAlignment()
	if hasHeader {
		t = t.WithHasHeader()
	}
	_ = t.Render()
}

// OrDash substitutes "-" for an empty value in a table cell.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
