package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/keepstack-chart/pkg/exitcodes"
)

func TestRenderCommand(t *testing.T) {
	chartDir := writeTestChart(t, "keepstack", "0.1.0", "1.4.2")

	output, err := executeCommand(newRenderCmd(),
		"--chart-path", chartDir,
		"--release-name", "demo",
	)
	require.NoError(t, err)

	assert.Contains(t, output, "kind: Deployment")
	assert.Contains(t, output, "kind: Job")
	assert.Contains(t, output, "kind: CronJob")
	assert.Contains(t, output, "name: demo-keepstack-migrate")
	assert.Contains(t, output, "image: ghcr.io/example/keepstack-api:1.4.2")
	assert.NotContains(t, output, "kind: Ingress", "ingress is disabled by default")
}

func TestRenderCommandReleaseNamedAfterChart(t *testing.T) {
	chartDir := writeTestChart(t, "keepstack", "0.1.0", "1.4.2")

	output, err := executeCommand(newRenderCmd(),
		"--chart-path", chartDir,
		"--release-name", "keepstack",
	)
	require.NoError(t, err)

	assert.Contains(t, output, "name: keepstack-migrate")
	assert.NotContains(t, output, "keepstack-keepstack")
}

func TestRenderCommandValuesFile(t *testing.T) {
	chartDir := writeTestChart(t, "keepstack", "0.1.0", "1.4.2")
	valuesFile := writeTestValuesFile(t, "api:\n  replicas: 5\n  ingress:\n    enabled: true\n    host: keepstack.example.com\n")

	output, err := executeCommand(newRenderCmd(),
		"--chart-path", chartDir,
		"--release-name", "demo",
		"--values", valuesFile,
	)
	require.NoError(t, err)

	assert.Contains(t, output, "replicas: 5")
	assert.Contains(t, output, "kind: Ingress")
	assert.Contains(t, output, "host: keepstack.example.com")
}

func TestRenderCommandOutputFile(t *testing.T) {
	chartDir := writeTestChart(t, "keepstack", "0.1.0", "1.4.2")
	outputFile := filepath.Join(t.TempDir(), "manifests.yaml")

	output, err := executeCommand(newRenderCmd(),
		"--chart-path", chartDir,
		"--output-file", outputFile,
	)
	require.NoError(t, err)
	assert.Empty(t, output, "file output suppresses stdout")

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: Deployment")
}

func TestRenderCommandMissingChartPath(t *testing.T) {
	_, err := executeCommand(newRenderCmd())
	require.Error(t, err)

	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitMissingRequiredFlag, code)
}

func TestRenderCommandChartNotFound(t *testing.T) {
	_, err := executeCommand(newRenderCmd(), "--chart-path", "/nonexistent/chart")
	require.Error(t, err)

	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitChartNotFound, code)
}

func TestRenderCommandBadValuesFile(t *testing.T) {
	chartDir := writeTestChart(t, "keepstack", "0.1.0", "1.4.2")

	_, err := executeCommand(newRenderCmd(),
		"--chart-path", chartDir,
		"--values", "/nonexistent/values.yaml",
	)
	require.Error(t, err)

	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitValuesFileError, code)
}
