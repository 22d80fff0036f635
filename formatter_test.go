package launcher

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testinfra/suite-launcher/runner"
	"github.com/testinfra/suite-launcher/types"
)

func TestSummarize(t *testing.T) {
	results := []types.RunResult{
		{Run: types.SuiteTestRun{EnvironmentName: "singlenode"}, Duration: 1200 * time.Millisecond},
		{Run: types.SuiteTestRun{EnvironmentName: "multinode"}, Duration: 600 * time.Millisecond, Err: errors.New("boom")},
	}

	s := Summarize(results)

	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 1, s.Failed)
	require.Len(t, s.Lines, 3)
	assert.Equal(t, "Test runs summary (1 passed, 1 failed):", s.Lines[0])
	assert.Equal(t, " * 'singlenode' PASSED in 1.2s", s.Lines[1])
	assert.Equal(t, " * 'multinode' FAILED in 0.6s: boom", s.Lines[2])
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Passed)
	assert.Equal(t, 0, s.Failed)
	require.Len(t, s.Lines, 1)
	assert.Equal(t, "Test runs summary (0 passed, 0 failed):", s.Lines[0])
}

func TestSummarize_StripsAnsiFromCause(t *testing.T) {
	results := []types.RunResult{
		{Run: types.SuiteTestRun{EnvironmentName: "a"}, Err: errors.New("\x1b[31mred failure\x1b[0m")},
	}

	s := Summarize(results)
	require.Len(t, s.Lines, 2)
	assert.Contains(t, s.Lines[1], "red failure")
	assert.NotContains(t, s.Lines[1], "\x1b")
}

func TestFirstErrorLine(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "single line",
			err:      errors.New("simple error message"),
			expected: "simple error message",
		},
		{
			name:     "multiline keeps first line",
			err:      errors.New("first line\nsecond line"),
			expected: "first line",
		},
		{
			name:     "long error is truncated",
			err:      errors.New("this is a very long error message that should be truncated because it exceeds the maximum display length"),
			expected: "this is a very long error message that should be truncated because it ...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, firstErrorLine(tt.err))
		})
	}
}

func TestConsoleResultFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &ConsoleResultFormatter{out: &buf, logger: log.New()}

	result := &runner.SuiteResult{
		RunID:  "run-1",
		Suite:  "smoke",
		Config: types.EnvironmentConfig{Name: "default"},
		Results: []types.RunResult{
			{Run: types.SuiteTestRun{EnvironmentName: "singlenode", Groups: []string{"smoke"}}, Duration: time.Second},
			{Run: types.SuiteTestRun{EnvironmentName: "multinode"}, Duration: 2 * time.Second, Err: errors.New("exit status 1")},
		},
		Status:   types.RunStatusFail,
		Duration: 3 * time.Second,
		Stats:    runner.ResultStats{Total: 2, Passed: 1, Failed: 1},
	}

	require.NoError(t, f.FormatResults(result))

	out := buf.String()
	assert.Contains(t, out, "singlenode")
	assert.Contains(t, out, "multinode")
	assert.Contains(t, out, "exit status 1")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "1 passed, 1 failed")
	assert.Contains(t, out, "Test runs summary (1 passed, 1 failed):")
}
