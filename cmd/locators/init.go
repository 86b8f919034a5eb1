package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harsha7innerscore/ui-playground/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed templates/locators.yaml
var configTemplate embed.FS

// configTemplatePath is the template location inside configTemplate.
const configTemplatePath = "templates/locators.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new locators configuration file",
		Long: `Initialize creates a new locators.yaml configuration file in the current directory.

The generated file includes:
- Every setting with its default value
- Commented examples for per-path overrides
- Documentation for all available options

Examples:
  # Create locators.yaml in current directory
  locators init

  # Create config file at a specific path
  locators init -o config/locators.yaml

  # Force overwrite existing file
  locators init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(configTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// The template must stay loadable and valid.
	cfg := config.NewConfig()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("invalid config template: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure settings such as:")
	fmt.Fprintln(out, "  - Identifier attribute and prefix")
	fmt.Fprintln(out, "  - Targeting mode and extra components")
	fmt.Fprintln(out, "  - Per-path overrides")

	return nil
}
