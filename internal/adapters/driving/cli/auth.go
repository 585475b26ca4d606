package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored Plug credentials",
	Long: `Store, inspect, and remove the Plug username/password pair.

Credentials live in the operating system's secret storage and are read on
every token refresh. There is exactly one credential scope; storing again
overwrites the previous pair.

Examples:
  # Interactive (password prompt is hidden)
  plug auth set

  # Non-interactive
  plug auth set --username maria --password s3cret

  # Show what is stored
  plug auth list`,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the username/password pair",
	RunE:  runAuthSet,
}

var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the stored credentials (password masked)",
	RunE:  runAuthList,
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove stored credentials and any cached token",
	RunE:  runAuthClear,
}

// Flags for auth set.
var (
	authSetUsername string
	authSetPassword string
)

func init() {
	authSetCmd.Flags().StringVar(
		&authSetUsername, "username", "", "Plug account name")
	authSetCmd.Flags().StringVar(
		&authSetPassword, "password", "", "Plug account password (prompted when omitted)")

	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authListCmd)
	authCmd.AddCommand(authClearCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	username := authSetUsername
	if username == "" {
		var err error
		if username, err = promptLine(cmd, "Username: "); err != nil {
			return err
		}
	}

	password := authSetPassword
	if password == "" {
		var err error
		if password, err = promptPassword(cmd, "Password: "); err != nil {
			return err
		}
	}

	if err := credentialService.Store(ctx, username, password); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Credentials stored for %q.\n", username)
	return nil
}

func runAuthList(cmd *cobra.Command, _ []string) error {
	creds, ok := credentialService.Credentials(context.Background())
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No credentials stored.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Username: %s\nPassword: %s\n",
		creds.Username, maskSecret(creds.Password))
	return nil
}

func runAuthClear(cmd *cobra.Command, _ []string) error {
	if err := credentialService.Clear(context.Background()); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Credentials and cached token removed.")
	return nil
}

// promptLine reads one line from the command's input.
func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when attached to a
// terminal, falling back to a plain line read otherwise (pipes, tests).
func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	stdin, isFile := cmd.InOrStdin().(*os.File)
	if !isFile || !term.IsTerminal(int(stdin.Fd())) {
		return promptLine(cmd, prompt)
	}

	fmt.Fprint(cmd.OutOrStdout(), prompt)
	raw, err := term.ReadPassword(int(stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}
