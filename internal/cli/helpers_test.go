package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/tablectl/internal/cli"
)

const peopleJSON = `[
  {"name": "Anna", "age": 34, "city": {"zip": "31111"}},
  {"name": "bob", "age": 27, "city": {"zip": "11111"}},
  {"name": "Claire", "age": 41},
  {"name": "Dmitri", "age": 27, "city": {"zip": "21111"}},
  {"name": "Eve", "age": 19, "city": {"zip": "11111"}}
]`

// writeInput writes content to name inside a temp dir and returns its path.
func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCLI executes the root command with an isolated TABLECTL_HOME and returns
// stdout and stderr.
func runCLI(t *testing.T, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	if _, ok := env["TABLECTL_HOME"]; !ok {
		env["TABLECTL_HOME"] = t.TempDir()
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmdWithEnv("test", lookup)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
