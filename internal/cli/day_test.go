package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/workday/internal/workday"
)

type dayResponse struct {
	Status string            `json:"status"`
	Data   workday.DayAtWork `json:"data"`
	Error  *CLIError         `json:"error"`
}

func runDayCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewDayCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestDayText(t *testing.T) {
	out, err := runDayCommand(t, "text", filepath.Join(recordsDir, "workday.yaml"), "2023-01-01")
	require.NoError(t, err)

	assert.Contains(t, out, "2023-01-01  total 8.00")
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "Team meetings")
	assert.Contains(t, out, "7.00")
	assert.Contains(t, out, "Prepare timesheet")
	assert.NotContains(t, out, "Project Aurora")
}

func TestDayJSON(t *testing.T) {
	sources := []string{"workday.yaml", "workday.json", "workday.cue"}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			out, err := runDayCommand(t, "json", filepath.Join(recordsDir, source), "2023-01-01")
			require.NoError(t, err)

			var resp dayResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, "2023-01-01", resp.Data.Date.String())
			assert.Equal(t, 8.0, resp.Data.TotalEffort)
			require.Len(t, resp.Data.Activities, 2)
			assert.Equal(t, 1.0, resp.Data.Activities[0].AbsoluteEffort)
			assert.Equal(t, 7.0, resp.Data.Activities[1].AbsoluteEffort)
		})
	}
}

func TestDayFlags(t *testing.T) {
	out, err := runDayCommand(t, "json",
		"--hours", "6", "--resolution", "0.5", "--seed", "11", "--max-attempts", "50", "--reverse-jitter",
		filepath.Join(recordsDir, "workday.yaml"), "2023-01-01")
	require.NoError(t, err)

	var resp dayResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 6.0, resp.Data.TotalEffort)
	require.Len(t, resp.Data.Activities, 2)
	assert.Equal(t, 5.0, resp.Data.Activities[1].AbsoluteEffort)
}

func TestDaySeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	records := `- account: A
  distribution: {type: Continuous, alpha: "2023-01-01", omega: "2023-12-31"}
  effort: {type: Relative, value: 1}
- account: B
  distribution: {type: Continuous, alpha: "2023-01-01", omega: "2023-12-31"}
  effort: {type: Relative, value: 2}
- account: C
  distribution: {type: Continuous, alpha: "2023-01-01", omega: "2023-12-31"}
  effort: {type: Relative, value: 3}
`
	path := filepath.Join(dir, "records.yaml")
	require.NoError(t, os.WriteFile(path, []byte(records), 0644))

	first, err := runDayCommand(t, "json", "--seed", "99", path, "2023-06-01")
	require.NoError(t, err)
	second, err := runDayCommand(t, "json", "--seed", "99", path, "2023-06-01")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDayEmptyDay(t *testing.T) {
	out, err := runDayCommand(t, "text", filepath.Join(recordsDir, "workday.yaml"), "2024-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, "total 0.00")
	assert.Contains(t, out, "no responsibilities apply")
}

func TestDayErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
		wantExit int
	}{
		{
			name:     "bad date",
			args:     []string{filepath.Join(recordsDir, "workday.yaml"), "01/01/2023"},
			wantCode: ErrCodeBadDate,
			wantExit: ExitCommandError,
		},
		{
			name:     "missing records",
			args:     []string{filepath.Join(recordsDir, "nope.yaml"), "2023-01-01"},
			wantCode: ErrCodeNotFound,
			wantExit: ExitCommandError,
		},
		{
			name:     "unsupported source",
			args:     []string{filepath.Join(recordsDir, "..", "scenarios", "golden", "new_year.golden"), "2023-01-01"},
			wantCode: ErrCodeUnsupported,
			wantExit: ExitCommandError,
		},
		{
			name:     "invalid records",
			args:     []string{filepath.Join(recordsDir, "invalid.yaml"), "2023-01-01"},
			wantCode: ErrCodeSchema,
			wantExit: ExitFailure,
		},
		{
			name:     "zero resolution",
			args:     []string{"--resolution", "0", filepath.Join(recordsDir, "workday.yaml"), "2023-01-01"},
			wantCode: ErrCodeConfig,
			wantExit: ExitCommandError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runDayCommand(t, "json", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantCode)

			var resp dayResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestDayMissingArgs(t *testing.T) {
	_, err := runDayCommand(t, "text", filepath.Join(recordsDir, "workday.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg")
}
