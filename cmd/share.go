package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nbshare/cli/pkg/nbformat"
	"github.com/nbshare/cli/pkg/sharing"
	"github.com/nbshare/cli/pkg/table"
	"github.com/nbshare/cli/pkg/workflow"
	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ShareCmd handles the manual share action.
type ShareCmd struct {
	svc workflow.SharingService
}

// ShareInput holds input for sharing a notebook.
type ShareInput struct {
	Path     string
	Name     string
	Password string
	ViewOnly bool
	Open     bool
	Output   string
}

// shareJSON is the machine-readable form of a share result.
type shareJSON struct {
	ID         string `json:"id"`
	ReadableID string `json:"readable_id,omitempty"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Password   string `json:"password,omitempty"`
	Created    bool   `json:"created"`
}

// Share publishes the notebook. A never-shared notebook is created on the
// backend; one that already carries a shared id is updated in place. On
// success the sharing metadata is written back into the .ipynb file.
func (s ShareCmd) Share(ctx context.Context, in ShareInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	nb, err := nbformat.ReadFile(in.Path)
	if err != nil {
		return err
	}

	password := in.Password
	if in.ViewOnly && password == "" {
		password = sharing.GeneratePassword(sharing.DefaultPasswordLength)
	}

	h := workflow.NewHandle(nb)
	mgr := workflow.NewManager(s.svc)
	res, err := mgr.ShareManual(ctx, h, workflow.ShareOptions{Name: in.Name, Password: password})
	if err != nil {
		return err
	}

	if err := nbformat.WriteFile(in.Path, h.Notebook()); err != nil {
		return err
	}

	if in.Output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(shareJSON{
			ID:         res.SharedID,
			ReadableID: res.ReadableID,
			Name:       res.Name,
			URL:        res.URL.String(),
			Password:   res.Password,
			Created:    res.Created,
		})
	}

	if res.Created {
		pterm.Success.Println("Notebook shared")
	} else {
		pterm.Success.Println("Shared notebook updated")
	}

	rows := pterm.TableData{{"Property", "Value"}}
	rows = append(rows, []string{"ID", res.SharedID})
	rows = append(rows, []string{"Readable ID", table.OrDash(res.ReadableID)})
	rows = append(rows, []string{"Name", res.Name})
	rows = append(rows, []string{"URL", res.URL.String()})
	if res.Password != "" {
		rows = append(rows, []string{"Password", res.Password})
	}
	table.PrintTableNoPad(rows, true)

	if res.Password != "" {
		pterm.Info.Println("Save the password: it is required to edit this shared notebook later")
	}

	if in.Open {
		if err := browser.OpenURL(res.URL.String()); err != nil {
			pterm.Warning.Printf("Could not open browser: %v\n", err)
		}
	}
	return nil
}

var shareCmd = &cobra.Command{
	Use:   "share <notebook.ipynb>",
	Short: "Share a notebook and get its link",
	Long: `Share a notebook through the sharing service.

A notebook that has never been shared is created on the service and
assigned a canonical ID plus a readable alias. A notebook that already
carries sharing metadata is updated in place, keeping its existing link.`,
	Args: cobra.ExactArgs(1),
	RunE: runShare,
}

func init() {
	shareCmd.Flags().String("name", "", "Display name to share under (defaults to a timestamp-derived name)")
	shareCmd.Flags().String("password", "", "Password protecting future edits of the shared notebook")
	shareCmd.Flags().Bool("view-only", false, "Share as view-only: generate an edit password if none is given")
	shareCmd.Flags().Bool("open", false, "Open the share link in the browser")
	shareCmd.Flags().StringP("output", "o", "", "Output format (json)")
}

func runShare(cmd *cobra.Command, args []string) error {
	client, err := getSharingClient(cmd)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	password, _ := cmd.Flags().GetString("password")
	viewOnly, _ := cmd.Flags().GetBool("view-only")
	open, _ := cmd.Flags().GetBool("open")
	output, _ := cmd.Flags().GetString("output")

	s := ShareCmd{svc: client}
	return s.Share(cmd.Context(), ShareInput{
		Path:     args[0],
		Name:     name,
		Password: password,
		ViewOnly: viewOnly,
		Open:     open,
		Output:   output,
	})
}
