package cmd

import (
	"context"

	"github.com/nbshare/cli/pkg/nbformat"
	"github.com/nbshare/cli/pkg/table"
	"github.com/nbshare/cli/pkg/workflow"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// GetCmd handles retrieval of shared notebooks as view-only copies.
type GetCmd struct {
	svc workflow.SharingService
}

// GetInput holds input for retrieving a shared notebook.
type GetInput struct {
	ID          string
	Output      string
	FallbackNew bool
}

// Get retrieves a shared notebook by UUID or readable id and writes a
// view-only copy to disk. With FallbackNew, a failed retrieval produces a
// blank notebook instead of an error, so a broken link still leaves the
// user with something to work in.
func (g GetCmd) Get(ctx context.Context, in GetInput) error {
	mgr := workflow.NewManager(g.svc)
	res, err := mgr.LoadShared(ctx, in.ID)
	if err != nil {
		if !in.FallbackNew {
			return err
		}
		pterm.Warning.Printf("Could not load shared notebook %q: %v\n", in.ID, err)
		pterm.Info.Println("Creating a new blank notebook instead")
		path := in.Output
		if path == "" {
			path = "Untitled.ipynb"
		}
		return nbformat.WriteFile(path, nbformat.New())
	}

	path := in.Output
	if path == "" {
		path = res.Filename
	}
	if err := nbformat.WriteFile(path, res.Notebook); err != nil {
		return err
	}

	pterm.Success.Printf("Shared notebook saved to %s (view-only)\n", path)
	rows := pterm.TableData{{"Property", "Value"}}
	rows = append(rows, []string{"ID", res.ID})
	rows = append(rows, []string{"Readable ID", table.OrDash(res.ReadableID)})
	rows = append(rows, []string{"Domain", table.OrDash(res.DomainID)})
	rows = append(rows, []string{"Cells", pterm.Sprintf("%d", len(res.Notebook.Cells))})
	table.PrintTableNoPad(rows, true)
	return nil
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Retrieve a shared notebook as a view-only copy",
	Long: `Retrieve a shared notebook by its canonical UUID or readable alias and
save it locally with every cell marked non-editable. Use "nbshare copy"
to turn the view-only file back into an editable notebook.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringP("output", "o", "", "Destination file (defaults to Shared_<id>.ipynb)")
	getCmd.Flags().Bool("fallback-new", false, "Create a blank notebook when retrieval fails")
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := getSharingClient(cmd)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	fallback, _ := cmd.Flags().GetBool("fallback-new")

	g := GetCmd{svc: client}
	return g.Get(cmd.Context(), GetInput{ID: args[0], Output: output, FallbackNew: fallback})
}
