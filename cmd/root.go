// Package cmd wires the nbshare command tree. Commands are thin cobra
// shells over small testable command objects that hold narrow service
// interfaces, so every operation can run against a fake in tests.
package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nbshare/cli/pkg/sharing"
	"github.com/spf13/cobra"
)

// Version is the CLI version, overridden at build time via ldflags.
var Version = "dev"

// defaultAPIURL matches the sharing service's local development default.
const defaultAPIURL = "http://localhost:8080/api/v1"

const (
	envAPIURL = "NBSHARE_API_URL"
	envToken  = "NBSHARE_TOKEN"
)

var rootCmd = &cobra.Command{
	Use:   "nbshare",
	Short: "Share notebooks through the sharing service",
	Long: `nbshare shares Jupyter notebooks through a hosted sharing service:
publish a notebook and get a link, keep an already-shared notebook in
sync, retrieve a shared notebook as a view-only copy, and turn a
view-only copy back into a fresh editable notebook.`,
	SilenceUsage: true,
}

// Root returns the assembled command tree.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Base URL of the sharing service API (env "+envAPIURL+")")
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// resolveAPIURL picks the API base URL: flag, then environment (with .env
// loaded if present), then the development default.
func resolveAPIURL(cmd *cobra.Command) string {
	_ = godotenv.Load()
	if v, _ := cmd.Flags().GetString("api-url"); strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		return v
	}
	return defaultAPIURL
}

// getSharingClient builds the sharing client for a command invocation,
// seeding the token cache from the environment when one is provided.
func getSharingClient(cmd *cobra.Command) (*sharing.Client, error) {
	opts := []sharing.Option{}
	if tok := strings.TrimSpace(os.Getenv(envToken)); tok != "" {
		opts = append(opts, sharing.WithToken(sharing.Token{Token: tok}))
	}
	return sharing.New(resolveAPIURL(cmd), opts...)
}
