package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// annotationConfigOptional marks commands that still run when the
// configuration file is invalid, so it can be repaired.
const annotationConfigOptional = "tablectl/config-optional"

// NewRootCmd creates the root Cobra command for the tablectl CLI.
// It wires up configuration, logging and the page, browse, fields and config
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var session *logSession

	cmd := &cobra.Command{
		Use:           "tablectl",
		Short:         "Sort and page through tabular JSON, NDJSON and YAML data",
		Long:          "tablectl: sort records by one or more nested fields and page through them, in the terminal or as structured output",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			session, err = setupLogging(cmd, lookupEnv)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, session)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "configuration file (default $TABLECTL_HOME/config.yaml or ~/.tablectl/config.yaml)")
	cmd.AddCommand(NewPageCmd(), NewBrowseCmd(), NewFieldsCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Show the first page of a JSON array, sorted by age descending
  tablectl page people.json --sort age:desc

  # Sort by a nested field, then by name, 50 rows per page
  tablectl page people.ndjson --sort city.zip,name --page-size 50 --page 3

  # Emit the page as JSON with pagination metadata
  cat people.json | tablectl page - --output json

  # Browse interactively and reload when the file changes
  tablectl browse people.yaml --watch

  # List the sortable fields
  tablectl fields people.json

  # Initialize configuration
  tablectl config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Configuration management commands",
		Annotations: map[string]string{annotationConfigOptional: "true"},
	}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
