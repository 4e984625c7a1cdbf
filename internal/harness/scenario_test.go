package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes a records file and a scenario next to it.
func writeScenario(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	records := `- account: "Ops"
  distribution: {type: Continuous, alpha: "2023-01-01", omega: "2023-12-31"}
  effort: {type: Relative, value: 1}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.yaml"), []byte(records), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.txt"), []byte(records), 0644))

	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: ops_day
description: "A single relative record fills the day"
records: records.yaml
date: "2023-05-02"
hours: 6.0
resolution: 0.5
seed: 3
reverse_pairing: true
expect:
  total_effort: 6.0
  activity_count: 1
  activities:
    - account: Ops
      absolute_effort: 6.0
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "ops_day", scenario.Name)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "records.yaml"), scenario.Records)
	assert.Equal(t, "2023-05-02", scenario.Date)
	require.NotNil(t, scenario.Hours)
	assert.Equal(t, 6.0, *scenario.Hours)
	require.NotNil(t, scenario.Resolution)
	assert.Equal(t, 0.5, *scenario.Resolution)
	require.NotNil(t, scenario.Seed)
	assert.Equal(t, uint64(3), *scenario.Seed)
	assert.True(t, scenario.ReversePairing)
	require.Len(t, scenario.Expect.Activities, 1)
	assert.Equal(t, "Ops", scenario.Expect.Activities[0].Account)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "Misspelt expect"
records: records.yaml
date: "2023-05-02"
expects:
  total_effort: 8.0
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "x"
records: records.yaml
date: "2023-05-02"
expect: {total_effort: 8}
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: x
records: records.yaml
date: "2023-05-02"
expect: {total_effort: 8}
`,
			wantErr: "description is required",
		},
		{
			name: "missing records",
			content: `
name: x
description: "x"
date: "2023-05-02"
expect: {total_effort: 8}
`,
			wantErr: "records is required",
		},
		{
			name: "records not found",
			content: `
name: x
description: "x"
records: other.yaml
date: "2023-05-02"
expect: {total_effort: 8}
`,
			wantErr: "records file not found",
		},
		{
			name: "unsupported records",
			content: `
name: x
description: "x"
records: records.txt
date: "2023-05-02"
expect: {total_effort: 8}
`,
			wantErr: "not a supported source",
		},
		{
			name: "bad date",
			content: `
name: x
description: "x"
records: records.yaml
date: "2023-02-30"
expect: {total_effort: 8}
`,
			wantErr: "date:",
		},
		{
			name: "empty expect",
			content: `
name: x
description: "x"
records: records.yaml
date: "2023-05-02"
expect: {}
`,
			wantErr: "expect must state",
		},
		{
			name: "negative count",
			content: `
name: x
description: "x"
records: records.yaml
date: "2023-05-02"
expect: {activity_count: -1}
`,
			wantErr: "activity_count must be non-negative",
		},
		{
			name: "activity without account",
			content: `
name: x
description: "x"
records: records.yaml
date: "2023-05-02"
expect:
  activities:
    - absolute_effort: 1
`,
			wantErr: "account is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_SeedZero(t *testing.T) {
	path := writeScenario(t, `
name: zero
description: "An explicit zero seed"
records: records.yaml
date: "2023-05-02"
seed: 0
expect: {total_effort: 8}
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	require.NotNil(t, scenario.Seed)
	assert.Equal(t, uint64(0), *scenario.Seed)

	path = writeScenario(t, `
name: unset
description: "No seed"
records: records.yaml
date: "2023-05-02"
expect: {total_effort: 8}
`)
	scenario, err = LoadScenario(path)
	require.NoError(t, err)
	assert.Nil(t, scenario.Seed)
}
