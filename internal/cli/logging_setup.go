package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/tablectl/internal/config"
	"github.com/rshade/tablectl/internal/logging"
)

// logSession holds what setupLogging opened for one command invocation.
type logSession struct {
	closer io.Closer
}

type configKey struct{}

// withConfig returns a copy of ctx carrying the effective configuration.
func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the configuration resolved for the running
// command, or the defaults.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.Default()
}

// isConfigOptional reports whether cmd or one of its parents tolerates an
// invalid configuration.
func isConfigOptional(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationConfigOptional] == "true" {
			return true
		}
	}
	return false
}

// setupLogging resolves the configuration and configures logging from it,
// the environment and CLI flags. Both are stored on the command context.
func setupLogging(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*logSession, error) {
	configPath, _ := cmd.Flags().GetString("config")
	startDir, _ := os.Getwd()

	cfg, err := config.Resolve(configPath, startDir, lookupEnv)
	if err != nil {
		if !isConfigOptional(cmd) {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: ignoring invalid configuration: %v\n", err)
		cfg = config.Default()
	}

	debug, _ := cmd.Flags().GetBool("debug")
	loggingCfg := cfg.Logging.WithDebug(debug)

	l, closer, err := logging.NewLogger(loggingCfg.ToLoggingConfig(), cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)

	l = l.With().Str("trace_id", traceID).Logger()
	logger = l.With().Str("component", "cli").Logger()

	ctx = logging.WithContext(ctx, l)
	ctx = withConfig(ctx, cfg)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")

	return &logSession{closer: closer}, nil
}

// cleanupLogging closes the log file handle.
func cleanupLogging(cmd *cobra.Command, session *logSession) error {
	log := logging.FromContext(cmd.Context())
	log.Debug().Str("command", cmd.Name()).Msg("command finished")
	if session == nil || session.closer == nil {
		return nil
	}
	if err := session.closer.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
