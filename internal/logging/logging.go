// Package logging builds the zerolog loggers used across tablectl and carries
// them on context.Context.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Output destinations.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// ErrInvalidFormat is returned for a log format other than console or json.
var ErrInvalidFormat = errors.New("log format must be 'console' or 'json'")

// Config controls how NewLogger builds a logger.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// Validate checks the format and output settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "", FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Format)
	}
	if c.Output == OutputFile && c.File == "" {
		return errors.New("log output 'file' requires a file path")
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds a logger writing to stderr, and additionally to cfg.File
// when Output is "file". An unparsable level falls back to info. The returned
// Closer releases the log file, if one was opened.
func NewLogger(cfg Config, stderr io.Writer) (zerolog.Logger, io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var console io.Writer = stderr
	if !strings.EqualFold(cfg.Format, FormatJSON) {
		console = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
	}
	writers := []io.Writer{console}

	var closer io.Closer = nopCloser{}
	if cfg.Output == OutputFile {
		if mkErr := os.MkdirAll(filepath.Dir(cfg.File), 0o750); mkErr != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("creating log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if openErr != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", openErr)
		}
		writers = append(writers, f)
		closer = f
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(lvl).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), closer, nil
}

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger carried by ctx, or a disabled logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil {
		return *l
	}
	return zerolog.Nop()
}

// Component returns the logger from ctx tagged with a component name.
func Component(ctx context.Context, name string) zerolog.Logger {
	l := FromContext(ctx)
	return l.With().Str("component", name).Logger()
}
