package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect and refresh the cached bearer token",
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a currently valid token, refreshing it if needed",
	Long: `Print a currently valid bearer token to stdout.

If the cached token is absent or expired, one authentication call is made
and the fresh token is cached before printing. Useful for piping into other
tools:

  curl -H "Authorization: Bearer $(plug token show)" ...`,
	RunE: runTokenShow,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cached token (masked) and its expiry",
	RunE:  runTokenList,
}

func init() {
	tokenCmd.AddCommand(tokenShowCmd)
	tokenCmd.AddCommand(tokenListCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenShow(cmd *cobra.Command, _ []string) error {
	token, ok := credentialService.ValidToken(context.Background())
	if !ok {
		// The service already printed the reason as a notice.
		return errors.New("could not obtain a token")
	}

	fmt.Fprintln(cmd.OutOrStdout(), token.Value)
	return nil
}

func runTokenList(cmd *cobra.Command, _ []string) error {
	token, ok := credentialService.Token(context.Background())
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No token cached.")
		return nil
	}

	status := "valid"
	if !token.ValidAt(time.Now()) {
		status = "expired"
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Token:   %s\nExpires: %s (%s)\n",
		maskSecret(token.Value),
		token.ExpiresAt.Format(time.RFC3339),
		status,
	)
	return nil
}
