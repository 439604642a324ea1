package cmd

import (
	"fmt"
	"strings"

	"github.com/nbshare/cli/pkg/nbformat"
	"github.com/nbshare/cli/pkg/workflow"
	"github.com/spf13/cobra"
)

// URLCmd derives retrieval URLs without touching the network.
type URLCmd struct {
	svc workflow.SharingService
}

// URLInput holds input for deriving a retrieval URL.
type URLInput struct {
	// Target is either an identifier (UUID or readable id) or a path to a
	// shared .ipynb file whose metadata carries the identifiers.
	Target string
}

// URL prints the retrieval URL for the target. When the target is a
// notebook file that has both identifiers, the readable id is preferred
// for the friendlier link.
func (u URLCmd) URL(in URLInput) error {
	id := in.Target
	if strings.HasSuffix(in.Target, ".ipynb") {
		nb, err := nbformat.ReadFile(in.Target)
		if err != nil {
			return err
		}
		if readable := nb.ReadableID(); readable != "" {
			id = readable
		} else if shared := nb.SharedID(); shared != "" {
			id = shared
		} else {
			return fmt.Errorf("%s has not been shared yet", in.Target)
		}
	}

	link, err := u.svc.RetrieveURL(id)
	if err != nil {
		return err
	}
	fmt.Println(link.String())
	return nil
}

var urlCmd = &cobra.Command{
	Use:   "url <id-or-notebook.ipynb>",
	Short: "Print the retrieval URL for a shared notebook",
	Long: `Print the URL a shared notebook can be retrieved from, without calling
the service. Accepts a canonical UUID, a readable alias, or a path to a
shared notebook file (whose readable alias is preferred when present).`,
	Args: cobra.ExactArgs(1),
	RunE: runURL,
}

func runURL(cmd *cobra.Command, args []string) error {
	client, err := getSharingClient(cmd)
	if err != nil {
		return err
	}
	u := URLCmd{svc: client}
	return u.URL(URLInput{Target: args[0]})
}
