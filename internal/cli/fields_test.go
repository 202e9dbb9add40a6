package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_Table(t *testing.T) {
	input := writeInput(t, "people.json", peopleJSON)

	stdout, _, err := runCLI(t, nil, "fields", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Field")
	assert.Regexp(t, `city\.zip\s+4/5`, stdout)
	assert.Regexp(t, `name\s+5/5`, stdout)
}

func TestFields_JSON(t *testing.T) {
	input := writeInput(t, "people.json", peopleJSON)

	stdout, _, err := runCLI(t, nil, "fields", input, "-o", "json")
	require.NoError(t, err)

	var fields []struct {
		Path    string `json:"path"`
		Records int    `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &fields))
	require.Len(t, fields, 3)
	assert.Equal(t, "age", fields[0].Path)
	assert.Equal(t, "city.zip", fields[1].Path)
	assert.Equal(t, 4, fields[1].Records)
}

func TestFields_Empty(t *testing.T) {
	input := writeInput(t, "empty.json", `[]`)

	stdout, _, err := runCLI(t, nil, "fields", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No fields found.")

	_, _, err = runCLI(t, nil, "fields", input, "-o", "yaml")
	assert.Error(t, err)
}
