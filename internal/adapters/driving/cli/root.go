// Package cli implements the plug command-line interface.
package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/plugdata-labs/plug-cli/internal/adapters/driven/config/file"
	"github.com/plugdata-labs/plug-cli/internal/adapters/driven/keyring"
	"github.com/plugdata-labs/plug-cli/internal/adapters/driven/memory"
	"github.com/plugdata-labs/plug-cli/internal/adapters/driven/plug"
	"github.com/plugdata-labs/plug-cli/internal/adapters/driven/storage/sqlite"
	"github.com/plugdata-labs/plug-cli/internal/core/ports/driven"
	"github.com/plugdata-labs/plug-cli/internal/core/ports/driving"
	"github.com/plugdata-labs/plug-cli/internal/core/services"
	"github.com/plugdata-labs/plug-cli/internal/logger"
)

// Services wired for the commands. Set by setup during PersistentPreRunE,
// or injected directly by tests.
var (
	credentialService driving.CredentialService
	queryService      driving.QueryService
	historyStore      driven.HistoryStore
	configStore       *configfile.ConfigStore
)

// Global flags.
var (
	flagVerbose   bool
	flagConfigDir string
	flagAuthURL   string
	flagQueryURL  string
	flagNoKeyring bool
)

var rootCmd = &cobra.Command{
	Use:   "plug",
	Short: "Credential management and SQL queries for the Plug API",
	Long: `plug stores your Plug API credentials in the operating system's
secret storage, keeps the bearer token fresh, and forwards SQL to the
remote query endpoint.

Examples:
  # Store credentials (prompts for the password)
  plug auth set --username maria

  # Run a query with safely quoted parameters
  plug query "SELECT * FROM Obras WHERE municipio = {city}" --param city=Recife

  # Download a whole table as JSON
  plug download Contratos_VIEW --json`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&flagVerbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(
		&flagConfigDir, "config-dir", "", "Configuration directory (default ~/.plug)")
	rootCmd.PersistentFlags().StringVar(
		&flagAuthURL, "auth-url", "", "Authentication endpoint override")
	rootCmd.PersistentFlags().StringVar(
		&flagQueryURL, "query-url", "", "Query endpoint override")
	rootCmd.PersistentFlags().BoolVar(
		&flagNoKeyring, "no-keyring", false, "Keep secrets in process memory only (testing)")
}

// setup wires adapters and services for one invocation.
// Precedence for endpoints and validity: flag > config file > default.
func setup() error {
	// Tests inject services directly; don't overwrite them.
	if credentialService != nil && queryService != nil {
		return nil
	}

	var err error
	configStore, err = configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	if flagVerbose || configStore.GetBool(configfile.KeyVerbose) {
		logger.SetVerbose(true)
	}
	logger.Debug("config loaded from %s", configStore.Path())

	authURL := firstNonEmpty(flagAuthURL, configStore.GetString(configfile.KeyAuthURL))
	queryURL := firstNonEmpty(flagQueryURL, configStore.GetString(configfile.KeyQueryURL))
	client := plug.NewClient(authURL, queryURL)

	var secrets driven.SecretStore
	if flagNoKeyring {
		secrets = memory.NewSecretStore()
	} else {
		secrets = keyring.NewStore()
	}

	var credOpts []services.CredentialOption
	if seconds := configStore.GetInt(configfile.KeyValiditySeconds); seconds > 0 {
		credOpts = append(credOpts, services.WithValidity(time.Duration(seconds)*time.Second))
	}
	credSvc := services.NewCredentialService(secrets, client, credOpts...)
	credentialService = credSvc

	var queryOpts []services.QueryOption
	if store, err := sqlite.NewHistoryStore(historyDataDir()); err != nil {
		// History is an audit nicety; a broken local database must not
		// block queries.
		logger.Notice("query history unavailable: %v", err)
	} else {
		historyStore = store
		queryOpts = append(queryOpts, services.WithHistory(store, client.QueryURL()))
		cobra.OnFinalize(func() { store.Close() })
	}
	queryService = services.NewQueryService(credSvc, client, queryOpts...)

	return nil
}

// historyDataDir derives the data directory from --config-dir so tests and
// sandboxed runs stay self-contained.
func historyDataDir() string {
	if flagConfigDir == "" {
		return ""
	}
	return filepath.Join(flagConfigDir, "data")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
