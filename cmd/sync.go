package cmd

import (
	"context"
	"errors"

	"github.com/nbshare/cli/pkg/nbformat"
	"github.com/nbshare/cli/pkg/workflow"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// SyncCmd handles the silent resync of an already-shared notebook, the
// CLI's equivalent of the editor's autosave hook.
type SyncCmd struct {
	svc workflow.SharingService
}

// SyncInput holds input for resyncing a notebook.
type SyncInput struct {
	Path  string
	Quiet bool
}

// Sync pushes the current content of an already-shared notebook to the
// backend. It never fails the invocation: a notebook that was never shared
// is skipped, and backend errors are reported as warnings so a save path
// wired through this command is never blocked.
func (s SyncCmd) Sync(ctx context.Context, in SyncInput) error {
	nb, err := nbformat.ReadFile(in.Path)
	if err != nil {
		return err
	}

	h := workflow.NewHandle(nb)
	mgr := workflow.NewManager(s.svc)
	if err := mgr.SyncOnSave(ctx, h); err != nil {
		if errors.Is(err, workflow.ErrSyncSkipped) {
			if !in.Quiet {
				pterm.Info.Println("Notebook has not been shared yet, nothing to sync")
			}
			return nil
		}
		pterm.Warning.Printf("Could not sync shared notebook: %v\n", err)
		return nil
	}

	if err := nbformat.WriteFile(in.Path, h.Notebook()); err != nil {
		return err
	}
	if !in.Quiet {
		pterm.Success.Println("Shared notebook synced")
	}
	return nil
}

var syncCmd = &cobra.Command{
	Use:   "sync <notebook.ipynb>",
	Short: "Resync an already-shared notebook",
	Long: `Push the current content of an already-shared notebook to the sharing
service. Intended for save hooks: a notebook without sharing metadata is
skipped and backend failures only produce a warning, never a failed exit.`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolP("quiet", "q", false, "Suppress non-warning output")
}

func runSync(cmd *cobra.Command, args []string) error {
	client, err := getSharingClient(cmd)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	s := SyncCmd{svc: client}
	return s.Sync(cmd.Context(), SyncInput{Path: args[0], Quiet: quiet})
}
