package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablectl/internal/config"
)

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, `
table:
  rows_on_page: 5
  collation: codepoint
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 5, target.Table.RowsOnPage)
	assert.Equal(t, config.CollationCodepoint, target.Table.Collation)
	// Section is replaced, not merged field by field.
	assert.Empty(t, target.Table.Locale)
	// Other sections are untouched.
	assert.Equal(t, "info", target.Logging.Level)
	assert.Equal(t, config.DefaultDebounceMS, target.Browse.DebounceMS)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, `
plugins:
  foo: bar
logging:
  level: debug
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "debug", target.Logging.Level)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, "# only a comment\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, config.Default(), target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		assert.Error(t, config.ShallowMergeYAML(nil, "unused"))
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(config.Default(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		overlay := writeOverlay(t, "table: [unclosed")
		assert.Error(t, config.ShallowMergeYAML(config.Default(), overlay))
	})

	t.Run("wrong section type", func(t *testing.T) {
		overlay := writeOverlay(t, "table:\n  rows_on_page: many\n")
		assert.Error(t, config.ShallowMergeYAML(config.Default(), overlay))
	})
}
