package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nbshare/cli/pkg/update"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nbshare version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check whether a newer release is available")
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Println("nbshare " + Version)

	check, _ := cmd.Flags().GetBool("check")
	if !check {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	latest, releaseURL, err := update.FetchLatest(ctx)
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}

	newer, err := update.IsNewerVersion(Version, latest)
	if err != nil {
		// Dev builds have non-semver versions; report the latest tag anyway.
		pterm.Info.Printf("Latest release is %s (%s)\n", latest, releaseURL)
		return nil
	}
	if newer {
		pterm.Warning.Printf("A newer release is available: %s (%s)\n", strings.TrimPrefix(latest, "v"), releaseURL)
	} else {
		pterm.Success.Println("You are on the latest release")
	}
	return nil
}
