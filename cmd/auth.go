package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nbshare/cli/pkg/sharing"
	"github.com/nbshare/cli/pkg/table"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

// AuthService defines the subset of the sharing client that auth commands
// use.
type AuthService interface {
	Authenticate(ctx context.Context) (sharing.Token, error)
	Refresh(ctx context.Context, tok *sharing.Token) (sharing.Token, error)
}

// AuthCmd handles token lifecycle operations.
type AuthCmd struct {
	svc AuthService
}

const (
	keyringService = "nbshare"
	keyringUser    = "token"
)

// AuthIssueInput holds input for issuing a token.
type AuthIssueInput struct {
	SaveKeyring bool
}

// Issue obtains a fresh bearer token from the service.
func (a AuthCmd) Issue(ctx context.Context, in AuthIssueInput) error {
	tok, err := a.svc.Authenticate(ctx)
	if err != nil {
		return err
	}
	pterm.Success.Println("Token issued")
	fmt.Println(tok.Token)
	if in.SaveKeyring {
		if err := keyring.Set(keyringService, keyringUser, tok.Token); err != nil {
			return fmt.Errorf("save token to keyring: %w", err)
		}
		pterm.Info.Println("Token saved to the OS keyring")
	}
	return nil
}

// AuthRefreshInput holds input for refreshing a token.
type AuthRefreshInput struct {
	Token       string
	SaveKeyring bool
}

// Refresh re-issues the given token (or the cached one when empty).
func (a AuthCmd) Refresh(ctx context.Context, in AuthRefreshInput) error {
	var tok *sharing.Token
	if in.Token != "" {
		tok = &sharing.Token{Token: in.Token}
	}
	refreshed, err := a.svc.Refresh(ctx, tok)
	if err != nil {
		return err
	}
	pterm.Success.Println("Token refreshed")
	fmt.Println(refreshed.Token)
	if in.SaveKeyring {
		if err := keyring.Set(keyringService, keyringUser, refreshed.Token); err != nil {
			return fmt.Errorf("save token to keyring: %w", err)
		}
	}
	return nil
}

// AuthStatusInput holds input for inspecting a token.
type AuthStatusInput struct {
	Token string
}

// Status decodes the bearer token's claims without verifying its
// signature and reports the expiry. The service treats expiry as implicit
// (a stale token simply fails the next call), so this is a convenience
// view, not a validity guarantee.
func (a AuthCmd) Status(in AuthStatusInput) error {
	if in.Token == "" {
		return fmt.Errorf("no token: pass --token, set %s, or store one with 'auth issue --keyring'", envToken)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(in.Token, claims); err != nil {
		return fmt.Errorf("token is not a decodable JWT: %w", err)
	}

	rows := pterm.TableData{{"Claim", "Value"}}
	var expired bool
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		rows = append(rows, []string{"Expires", exp.Format(time.RFC3339)})
		expired = exp.Before(time.Now())
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		rows = append(rows, []string{"Issued", iat.Format(time.RFC3339)})
	}
	if iss, err := claims.GetIssuer(); err == nil && iss != "" {
		rows = append(rows, []string{"Issuer", iss})
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		rows = append(rows, []string{"Subject", sub})
	}
	table.PrintTableNoPad(rows, true)

	if expired {
		pterm.Warning.Println("Token looks expired; run 'nbshare auth issue' for a fresh one")
	} else {
		pterm.Success.Println("Token looks current")
	}
	return nil
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage sharing service tokens",
	Long:  "Commands for issuing, refreshing, and inspecting bearer tokens for the sharing service",
}

var authIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Obtain a fresh bearer token",
	Args:  cobra.NoArgs,
	RunE:  runAuthIssue,
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh a bearer token",
	Args:  cobra.NoArgs,
	RunE:  runAuthRefresh,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Inspect the current bearer token",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authIssueCmd)
	authCmd.AddCommand(authRefreshCmd)
	authCmd.AddCommand(authStatusCmd)

	authIssueCmd.Flags().Bool("keyring", false, "Store the issued token in the OS keyring")
	authRefreshCmd.Flags().String("token", "", "Token to refresh (defaults to the stored/cached one)")
	authRefreshCmd.Flags().Bool("keyring", false, "Store the refreshed token in the OS keyring")
	authStatusCmd.Flags().String("token", "", "Token to inspect (defaults to env or keyring)")
}

// storedToken finds a token from flag, environment, or keyring, in that
// order.
func storedToken(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(envToken)); v != "" {
		return v
	}
	if v, err := keyring.Get(keyringService, keyringUser); err == nil {
		return v
	}
	return ""
}

func runAuthIssue(cmd *cobra.Command, args []string) error {
	client, err := getSharingClient(cmd)
	if err != nil {
		return err
	}
	save, _ := cmd.Flags().GetBool("keyring")

	a := AuthCmd{svc: client}
	return a.Issue(cmd.Context(), AuthIssueInput{SaveKeyring: save})
}

func runAuthRefresh(cmd *cobra.Command, args []string) error {
	client, err := getSharingClient(cmd)
	if err != nil {
		return err
	}
	tokenFlag, _ := cmd.Flags().GetString("token")
	save, _ := cmd.Flags().GetBool("keyring")

	a := AuthCmd{svc: client}
	return a.Refresh(cmd.Context(), AuthRefreshInput{Token: storedToken(tokenFlag), SaveKeyring: save})
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	tokenFlag, _ := cmd.Flags().GetString("token")

	a := AuthCmd{}
	return a.Status(AuthStatusInput{Token: storedToken(tokenFlag)})
}
