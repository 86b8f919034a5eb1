package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/harsha7innerscore/ui-playground/internal/config"
	"github.com/harsha7innerscore/ui-playground/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for locators.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locators",
		Short: "Inject stable test identifiers into JSX components",
		Long: `locators adds a unique, human-readable test identifier attribute
(data-testid by default) to component tags in JSX and TSX files.

Identifiers are derived from the tag and its context: a className, a
text label, an onClick handler, an image src or the parent identifier.
Tags that already carry the attribute are left alone, so running
locators twice over the same files adds nothing.

Configuration is read from --config, ./locators.yaml or
$XDG_CONFIG_HOME/locators/locators.yaml, in that order.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: ./locators.yaml or the XDG config directory)")

	// Add subcommands
	cmd.AddCommand(NewInjectCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config flag from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// setupLogger creates a structured logger based on verbosity setting.
// Attributes that look like credentials are redacted and home
// directory paths are shortened.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return log.NewLogger(w, verbose)
}

// loadConfig builds a Config from defaults and the configuration file.
// If the user named a file with --config and it does not exist, an error
// is returned; otherwise a missing file means defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	explicit := getConfigFlag(cmd)
	configPath := config.FindConfigFile(explicit)

	switch {
	case configPath != "":
		if err := cfg.Load(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicit != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicit)
	}

	return cfg, nil
}
