package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/keepstack-chart/pkg/exitcodes"
	"github.com/example/keepstack-chart/pkg/testutil"
)

func TestValidateCommandSucceeds(t *testing.T) {
	defer testutil.SuppressLogging()()
	chartDir := writeTestChart(t, "keepstack", "0.1.0", "1.4.2")

	output, err := executeCommand(newValidateCmd(),
		"--chart-path", chartDir,
		"--release-name", "demo",
	)
	require.NoError(t, err)
	assert.Contains(t, output, "Validation succeeded")
}

func TestValidateCommandRejectsBadNameOverride(t *testing.T) {
	defer testutil.SuppressLogging()()
	chartDir := writeTestChart(t, "keepstack", "0.1.0", "1.4.2")

	tests := []struct {
		name   string
		values string
	}{
		{
			name:   "name with uppercase",
			values: "migrate:\n  name: Bad_Migrate_Name\n",
		},
		{
			name:   "name over the length limit",
			values: "migrate:\n  name: " + strings.Repeat("m", 70) + "\n",
		},
		{
			name:   "name with trailing hyphen",
			values: "serviceAccounts:\n  api:\n    name: trailing-\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valuesFile := writeTestValuesFile(t, tt.values)

			_, err := executeCommand(newValidateCmd(),
				"--chart-path", chartDir,
				"--release-name", "demo",
				"--values", valuesFile,
			)
			require.Error(t, err)

			code, ok := exitcodes.IsExitCodeError(err)
			require.True(t, ok)
			assert.Equal(t, exitcodes.ExitValidationFailed, code)
		})
	}
}

func TestValidateCommandRejectsBadImage(t *testing.T) {
	defer testutil.SuppressLogging()()
	chartDir := writeTestChart(t, "keepstack", "0.1.0", "1.4.2")
	valuesFile := writeTestValuesFile(t, "image:\n  tag: \"UPPER CASE TAG\"\n")

	_, err := executeCommand(newValidateCmd(),
		"--chart-path", chartDir,
		"--values", valuesFile,
	)
	require.Error(t, err)

	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitImageReferenceError, code)
}

func TestValidateCommandLongReleaseNameStillPasses(t *testing.T) {
	defer testutil.SuppressLogging()()
	chartDir := writeTestChart(t, "keepstack", "0.1.0", "1.4.2")

	// 60-character release name: composed names are truncated back under
	// the limit, so validation passes.
	output, err := executeCommand(newValidateCmd(),
		"--chart-path", chartDir,
		"--release-name", strings.Repeat("a", 60),
	)
	require.NoError(t, err)
	assert.Contains(t, output, "Validation succeeded")
}
