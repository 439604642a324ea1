package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nbshare/cli/pkg/nbformat"
	"github.com/nbshare/cli/pkg/workflow"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// CopyInput holds input for the create-copy transform.
type CopyInput struct {
	Path   string
	Output string
}

// RunCopy turns a view-only or previously shared notebook into a fresh,
// independently editable one: all sharing metadata and read-only markers
// are stripped from a clone, leaving the original file untouched. The copy
// has no link to the shared resource; sharing it again creates a new one.
func RunCopy(in CopyInput) error {
	nb, err := nbformat.ReadFile(in.Path)
	if err != nil {
		return err
	}

	copied, err := workflow.CreateCopy(nb)
	if err != nil {
		return err
	}

	out := in.Output
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(in.Path), ".ipynb")
		base = strings.TrimPrefix(base, "Shared_")
		out = filepath.Join(filepath.Dir(in.Path), "Copy_of_"+base+".ipynb")
	}
	if out == in.Path {
		return fmt.Errorf("refusing to overwrite %s with its own copy", in.Path)
	}

	if err := nbformat.WriteFile(out, copied); err != nil {
		return err
	}
	pterm.Success.Printf("Editable copy saved to %s\n", out)
	return nil
}

var copyCmd = &cobra.Command{
	Use:   "copy <notebook.ipynb> [output.ipynb]",
	Short: "Create an editable copy of a shared notebook",
	Long: `Create a fresh, never-shared copy of a notebook. Sharing metadata and
view-only cell markers are removed; everything else is preserved.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	in := CopyInput{Path: args[0]}
	if len(args) == 2 {
		in.Output = args[1]
	}
	return RunCopy(in)
}
