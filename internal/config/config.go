// Package config loads, validates and saves the tablectl configuration file
// and turns its table section into datatable controller options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tablectl/internal/datatable"
)

// Schema and defaults.
const (
	// SchemaVersion is written by Save and Default.
	SchemaVersion = "1.0.0"

	// supportedSchema is the range of config versions this build understands.
	supportedSchema = "^1.0.0"

	DefaultRowsOnPage = 20
	DefaultLocale     = "und"
	DefaultDebounceMS = 200

	CollationLocale    = "locale"
	CollationCodepoint = "codepoint"
)

// Configuration errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrInvalidRowsOnPage  = errors.New("rows_on_page must be >= 0 (0 shows all rows)")
	ErrInvalidSortOrder   = errors.New("sort_order must be 'asc' or 'desc'")
	ErrInvalidCollation   = errors.New("collation must be 'locale' or 'codepoint'")
	ErrInvalidLocale      = errors.New("invalid locale")
)

// Config is the tablectl configuration file.
type Config struct {
	Version string        `yaml:"version"`
	Table   TableConfig   `yaml:"table"`
	Logging LoggingConfig `yaml:"logging"`
	Browse  BrowseConfig  `yaml:"browse"`
}

// TableConfig holds defaults for the data-table controller.
type TableConfig struct {
	RowsOnPage int    `yaml:"rows_on_page"`
	SortOrder  string `yaml:"sort_order"`
	Collation  string `yaml:"collation"`
	Locale     string `yaml:"locale"`
	Missing    string `yaml:"missing"`
}

// BrowseConfig holds settings of the interactive browser.
type BrowseConfig struct {
	Watch      bool `yaml:"watch"`
	DebounceMS int  `yaml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: SchemaVersion,
		Table: TableConfig{
			RowsOnPage: DefaultRowsOnPage,
			SortOrder:  string(datatable.SortAsc),
			Collation:  CollationLocale,
			Locale:     DefaultLocale,
			Missing:    datatable.MissingLast.String(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Browse: BrowseConfig{
			DebounceMS: DefaultDebounceMS,
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing file
// is not an error and yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from TABLECTL_* environment variables.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv("TABLECTL_LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv("TABLECTL_LOG_FORMAT"); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv("TABLECTL_LOCALE"); ok && v != "" {
		c.Table.Locale = v
	}
	if v, ok := lookupEnv("TABLECTL_ROWS_ON_PAGE"); ok && v != "" {
		rows, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TABLECTL_ROWS_ON_PAGE: %w", err)
		}
		c.Table.RowsOnPage = rows
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}
	if c.Table.RowsOnPage < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRowsOnPage, c.Table.RowsOnPage)
	}
	switch datatable.SortOrder(strings.ToLower(c.Table.SortOrder)) {
	case "", datatable.SortAsc, datatable.SortDesc:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, c.Table.SortOrder)
	}
	if _, err := c.Collation(); err != nil {
		return err
	}
	if _, err := datatable.ParseMissingPolicy(c.Table.Missing); err != nil {
		return err
	}
	return c.Logging.ToLoggingConfig().Validate()
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return err
	}
	if !constraint.Check(ver) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedVersion, v, supportedSchema)
	}
	return nil
}

// Collation builds the string collation selected by the table section.
func (c *Config) Collation() (datatable.Collation, error) {
	switch strings.ToLower(c.Table.Collation) {
	case CollationCodepoint:
		return datatable.CaseInsensitiveCollation, nil
	case "", CollationLocale:
		locale := c.Table.Locale
		if locale == "" {
			locale = DefaultLocale
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidLocale, locale, err)
		}
		return datatable.LocaleCollation(tag), nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidCollation, c.Table.Collation)
	}
}

// ControllerOptions translates the table section into controller options.
func (c *Config) ControllerOptions() ([]datatable.Option, error) {
	coll, err := c.Collation()
	if err != nil {
		return nil, err
	}
	missing, err := datatable.ParseMissingPolicy(c.Table.Missing)
	if err != nil {
		return nil, err
	}
	return []datatable.Option{
		datatable.WithRowsOnPage(c.Table.RowsOnPage),
		datatable.WithCollation(coll),
		datatable.WithMissing(missing),
	}, nil
}

// DefaultSortOrder returns the configured default direction.
func (c *Config) DefaultSortOrder() datatable.SortOrder {
	return datatable.SortOrder(strings.ToLower(c.Table.SortOrder)).Normalize()
}
