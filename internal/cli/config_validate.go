package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tablectl/internal/config"
)

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file, project overlay and environment are applied.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Example: `  # Show the configuration used in this directory
  tablectl config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(configFromContext(cmd.Context()))
			if err != nil {
				return fmt.Errorf("marshalling configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration for syntax and semantic correctness.

This includes:
- The schema version against the versions this build supports
- rows_on_page, sort_order, collation, locale and missing-value settings
- The logging format and output`,
		Example: `  # Validate current configuration
  tablectl config validate

  # Validate and show detailed information
  tablectl config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate resolves the configuration again, this time failing on errors.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	configPath, _ := cmd.Flags().GetString("config")
	startDir, _ := os.Getwd()

	cfg, err := config.Resolve(configPath, startDir, os.LookupEnv)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Schema version: %s\n", cfg.Version)
	cmd.Printf("  Rows on page: %d\n", cfg.Table.RowsOnPage)
	cmd.Printf("  Sort order: %s\n", cfg.DefaultSortOrder())
	cmd.Printf("  Collation: %s (locale %s)\n", cfg.Table.Collation, cfg.Table.Locale)
	cmd.Printf("  Missing values: %s\n", cfg.Table.Missing)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if project := config.FindProjectFile(mustGetwd()); project != "" {
		cmd.Printf("  Project overlay: %s\n", project)
	}
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return dir
}
