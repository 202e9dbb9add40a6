package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablectl/internal/config"
	"github.com/rshade/tablectl/internal/datatable"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.SchemaVersion, cfg.Version)
	assert.Equal(t, datatable.SortAsc, cfg.DefaultSortOrder())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()
	cfg.Table.RowsOnPage = 7
	cfg.Table.Locale = "pl"
	cfg.Browse.Watch = true

	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("table:\n  rows_on_page: 3\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Table.RowsOnPage)
	assert.Equal(t, config.CollationLocale, cfg.Table.Collation)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{"future major version", func(c *config.Config) { c.Version = "2.0.0" }, config.ErrUnsupportedVersion},
		{"not semver", func(c *config.Config) { c.Version = "latest" }, config.ErrUnsupportedVersion},
		{"minor bump accepted", func(c *config.Config) { c.Version = "1.4.0" }, nil},
		{"negative rows", func(c *config.Config) { c.Table.RowsOnPage = -1 }, config.ErrInvalidRowsOnPage},
		{"show all rows", func(c *config.Config) { c.Table.RowsOnPage = 0 }, nil},
		{"bad order", func(c *config.Config) { c.Table.SortOrder = "up" }, config.ErrInvalidSortOrder},
		{"upper case order", func(c *config.Config) { c.Table.SortOrder = "DESC" }, nil},
		{"bad collation", func(c *config.Config) { c.Table.Collation = "binary" }, config.ErrInvalidCollation},
		{"bad locale", func(c *config.Config) { c.Table.Locale = "not a locale!" }, config.ErrInvalidLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("bad missing policy", func(t *testing.T) {
		cfg := config.Default()
		cfg.Table.Missing = "middle"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad log format", func(t *testing.T) {
		cfg := config.Default()
		cfg.Logging.Format = "xml"
		assert.Error(t, cfg.Validate())
	})
}

func TestApplyEnv(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{
		"TABLECTL_LOG_LEVEL":    "debug",
		"TABLECTL_LOG_FORMAT":   "json",
		"TABLECTL_ROWS_ON_PAGE": "50",
		"TABLECTL_LOCALE":       "de",
	})))
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 50, cfg.Table.RowsOnPage)
	assert.Equal(t, "de", cfg.Table.Locale)

	err := cfg.ApplyEnv(envMap(map[string]string{"TABLECTL_ROWS_ON_PAGE": "lots"}))
	assert.Error(t, err)
}

func TestControllerOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Table.RowsOnPage = 2
	cfg.Table.Collation = config.CollationCodepoint
	cfg.Table.Missing = "first"

	opts, err := cfg.ControllerOptions()
	require.NoError(t, err)

	ctrl := datatable.New[map[string]any](opts...)
	ctrl.SetInputData([]map[string]any{{"n": "b"}, {"n": "ą"}, {}, {"n": "a"}})
	ctrl.SetSort(datatable.SortBy(datatable.SortAsc, "n"))

	assert.Equal(t, []map[string]any{{}, {"n": "a"}}, ctrl.Recompute())
	assert.Equal(t, 2, ctrl.Page().RowsOnPage)
}

func TestResolve_ProjectOverlayAndEnv(t *testing.T) {
	home := t.TempDir()
	global := config.Default()
	global.Table.RowsOnPage = 30
	global.Logging.Level = "warn"
	require.NoError(t, global.Save(filepath.Join(home, "config.yaml")))

	project := t.TempDir()
	sub := filepath.Join(project, "data", "raw")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(project, config.ProjectFileName),
		[]byte("table:\n  rows_on_page: 10\n  locale: pl\n"), 0o600))

	assert.Equal(t, filepath.Join(project, config.ProjectFileName), config.FindProjectFile(sub))

	cfg, err := config.Resolve("", sub, envMap(map[string]string{
		"TABLECTL_HOME":      home,
		"TABLECTL_LOG_LEVEL": "error",
	}))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Table.RowsOnPage)
	assert.Equal(t, "pl", cfg.Table.Locale)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestResolve_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 3.0.0\n"), 0o600))

	_, err := config.Resolve(path, "", envMap(nil))
	assert.ErrorIs(t, err, config.ErrUnsupportedVersion)
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "info", Format: "json"}
	assert.Equal(t, "stderr", lc.ToLoggingConfig().Output)

	lc.File = "/tmp/tablectl.log"
	out := lc.WithDebug(true).ToLoggingConfig()
	assert.Equal(t, "file", out.Output)
	assert.Equal(t, "debug", out.Level)
}
