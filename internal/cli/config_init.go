package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/tablectl/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// By default it writes the global configuration file; with --project it writes
// a .tablectl.yaml overlay in the current directory.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

The global file lives at $TABLECTL_HOME/config.yaml (default ~/.tablectl/config.yaml).
Use --project to create a .tablectl.yaml in the current directory instead; its
sections override the global file for commands run in that directory tree.`,
		Example: `  # Create global configuration
  tablectl config init

  # Create a project overlay in the current directory
  tablectl config init --project

  # Create configuration, overwriting existing
  tablectl config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				dir, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving current directory: %w", err)
				}
				return initConfigAt(cmd, filepath.Join(dir, config.ProjectFileName), force)
			}

			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				var err error
				if configPath, err = config.DefaultPath(os.LookupEnv); err != nil {
					return err
				}
			}
			return initConfigAt(cmd, configPath, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create "+config.ProjectFileName+" in the current directory")

	return cmd
}

// initConfigAt writes the default configuration to configPath.
func initConfigAt(cmd *cobra.Command, configPath string, force bool) error {
	// Check if config already exists and force isn't set
	if !force {
		_, err := os.Stat(configPath)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", configPath, err)
		}
	}

	if err := config.Default().Save(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	return nil
}
