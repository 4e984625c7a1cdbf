package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runValidateCommand(t *testing.T, format, path string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateValidRecords(t *testing.T) {
	for _, source := range []string{"workday.yaml", "workday.json", "workday.cue"} {
		t.Run(source, func(t *testing.T) {
			out, err := runValidateCommand(t, "text", filepath.Join(recordsDir, source))
			require.NoError(t, err)
			assert.Contains(t, out, "✓ 3 record(s) valid")
		})
	}
}

func TestValidateValidRecordsJSON(t *testing.T) {
	out, err := runValidateCommand(t, "json", filepath.Join(recordsDir, "workday.yaml"))
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 3, resp.Data.Records)
}

func TestValidateInvalidRecords(t *testing.T) {
	out, err := runValidateCommand(t, "text", filepath.Join(recordsDir, "invalid.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed with 3 error(s)")

	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "responsibilities[0].account: account is required")
	assert.Contains(t, out, "responsibilities[0].distribution")
	assert.Contains(t, out, "responsibilities[0].effort")
}

func TestValidateInvalidRecordsJSON(t *testing.T) {
	out, err := runValidateCommand(t, "json", filepath.Join(recordsDir, "invalid.yaml"))
	require.Error(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.Len(t, resp.Data.Errors, 3)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeSchema, resp.Error.Code)
}

func TestValidateNonExistentFile(t *testing.T) {
	out, err := runValidateCommand(t, "text", "/nonexistent/records.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E005")
	assert.Contains(t, out, "does not exist")
}

func TestValidateEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0644))

	_, err := runValidateCommand(t, "text", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E003")
}

func TestValidateSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"account": }]`), 0644))

	_, err := runValidateCommand(t, "text", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E004")
}

func TestValidateCUESchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cue")
	content := `responsibilities: [{
	account: "Ops"
	distribution: {type: "Weekly", alpha: "2023-01-01", omega: "2023-01-31"}
	effort: {type: "Relative", value: 1}
}]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := runValidateCommand(t, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "E006")
}
