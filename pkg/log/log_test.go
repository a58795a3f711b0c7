package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input     string
		expected  Level
		expectErr bool
	}{
		{input: "debug", expected: LevelDebug},
		{input: "DEBUG", expected: LevelDebug},
		{input: "info", expected: LevelInfo},
		{input: "warn", expected: LevelWarn},
		{input: "warning", expected: LevelWarn},
		{input: "error", expected: LevelError},
		{input: "bogus", expected: LevelInfo, expectErr: true},
		{input: "", expected: LevelInfo, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrInvalidLogLevel)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestSetLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	originalLevel := CurrentLevel()
	defer SetLevel(originalLevel)

	SetLevel(LevelWarn)
	Debug("debug message")
	Info("info message")
	Warn("warn message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
}

func TestJSONOutputIncludesAttributes(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Info("rendered manifests", "count", 7)

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "rendered manifests", entry["msg"])
	assert.Equal(t, float64(7), entry["count"])
}

func TestSetOutputRestore(t *testing.T) {
	var first bytes.Buffer
	restore := SetOutput(&first)
	Info("captured")
	restore()

	var second bytes.Buffer
	restoreSecond := SetOutput(&second)
	defer restoreSecond()
	Info("after restore")

	assert.Contains(t, first.String(), "captured")
	assert.NotContains(t, first.String(), "after restore")
	assert.Contains(t, second.String(), "after restore")
}
