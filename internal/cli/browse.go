package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/tablectl/internal/ingest"
	"github.com/rshade/tablectl/internal/logging"
	"github.com/rshade/tablectl/internal/tui"
)

// NewBrowseCmd creates the browse command, an interactive table browser.
func NewBrowseCmd() *cobra.Command {
	var (
		flags tableFlags
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "browse FILE...",
		Short: "Browse records interactively",
		Long: `Opens an interactive table over the records: page with n/p, change the page size
with +/-, cycle the sort column with s, add secondary keys with S and reverse with r.

When standard output is not a terminal, browse prints a single page like the page command.`,
		Example: `  # Browse a file sorted by name
  tablectl browse people.json --sort name

  # Reload whenever the file changes on disk
  tablectl browse people.yaml --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
				logger.Debug().Msg("not a terminal, falling back to page output")
				return runPage(cmd, &flags, OutputTable, args)
			}
			if !cmd.Flags().Changed("watch") {
				watch = configFromContext(cmd.Context()).Browse.Watch
			}
			return runBrowse(cmd, &flags, watch, args)
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the input files change (default from config browse.watch)")

	return cmd
}

// runBrowse starts the Bubble Tea program over the loaded records.
func runBrowse(cmd *cobra.Command, flags *tableFlags, watch bool, args []string) error {
	if slices.Contains(args, ingest.StdinPath) {
		return errors.New("browse cannot read records from standard input; use the page command instead")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	log := logging.Component(ctx, "cli")

	session, err := flags.openTable(ctx, cmd, args)
	if err != nil {
		return err
	}

	opts := tui.BrowserOptions{
		Title:   joinPaths(args),
		Columns: flags.columns,
		Locale:  session.locale,
	}

	if watch {
		cfg := configFromContext(ctx)
		debounce := time.Duration(cfg.Browse.DebounceMS) * time.Millisecond
		w, wErr := ingest.NewWatcher(args, session.format, debounce)
		if wErr != nil {
			return fmt.Errorf("starting watcher: %w", wErr)
		}

		opts.Reloads = watchReloads(ctx, w, log)
		log.Debug().Strs("paths", args).Dur("debounce", debounce).Msg("watching input files")
	}

	model := tui.NewBrowserModel(ctx, session.ctrl, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run interactive browser: %w", err)
	}
	return nil
}

// watchReloads runs w until ctx is cancelled and returns the channel of its
// results. The channel is closed when the watcher stops.
func watchReloads(ctx context.Context, w *ingest.Watcher, log zerolog.Logger) <-chan ingest.Reload {
	reloads := make(chan ingest.Reload)
	go func() {
		defer close(reloads)
		if runErr := w.Run(ctx, reloads); runErr != nil && !errors.Is(runErr, context.Canceled) {
			log.Warn().Err(runErr).Msg("file watcher stopped")
		}
	}()
	return reloads
}
