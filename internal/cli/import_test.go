package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runImportCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewImportCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestImportThenAllocate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "workday.db")

	out, err := runImportCommand(t, "text", filepath.Join(recordsDir, "workday.cue"), dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Imported 3 record(s)")

	dayOut, err := runDayCommand(t, "json", dbPath, "2023-01-01")
	require.NoError(t, err)

	var resp dayResponse
	require.NoError(t, json.Unmarshal([]byte(dayOut), &resp))
	assert.Equal(t, 8.0, resp.Data.TotalEffort)
	require.Len(t, resp.Data.Activities, 2)
	assert.Equal(t, "Team meetings", resp.Data.Activities[0].Account)
	assert.Equal(t, "Non-billable tasks", resp.Data.Activities[1].Account)
}

func TestImportJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "workday.sqlite")

	out, err := runImportCommand(t, "json", filepath.Join(recordsDir, "workday.yaml"), dbPath)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ImportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Data.Records)
	assert.Equal(t, dbPath, resp.Data.Database)
}

func TestImportReplacesPreviousRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "workday.db")

	_, err := runImportCommand(t, "text", filepath.Join(recordsDir, "workday.yaml"), dbPath)
	require.NoError(t, err)
	_, err = runImportCommand(t, "text", filepath.Join(recordsDir, "workday.json"), dbPath)
	require.NoError(t, err)

	out, err := runValidateCommand(t, "text", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 3 record(s) valid")
}

func TestImportInvalidRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "workday.db")

	_, err := runImportCommand(t, "text", filepath.Join(recordsDir, "invalid.yaml"), dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "E006")
}

func TestImportWriteFailure(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing", "dir", "workday.db")

	out, err := runImportCommand(t, "text", filepath.Join(recordsDir, "workday.yaml"), dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E007")
	assert.Contains(t, out, "Error [E007]")
}
