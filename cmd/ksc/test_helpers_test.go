package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/keepstack-chart/pkg/fileutil"
)

// writeTestChart lays out a minimal keepstack chart on disk and returns its
// directory. The chart loader reads the OS filesystem directly, so charts
// cannot live on an in-memory fs.
func writeTestChart(t *testing.T, name, version, appVersion string) string {
	t.Helper()
	dir := t.TempDir()

	chartYaml := fmt.Sprintf("apiVersion: v2\nname: %s\nversion: %s\nappVersion: %q\n", name, version, appVersion)
	err := os.WriteFile(filepath.Join(dir, "Chart.yaml"), []byte(chartYaml), fileutil.ReadWriteUserPermission)
	require.NoError(t, err)

	valuesYaml := "image:\n  registry: ghcr.io\n"
	err = os.WriteFile(filepath.Join(dir, "values.yaml"), []byte(valuesYaml), fileutil.ReadWriteUserPermission)
	require.NoError(t, err)

	return dir
}

// writeTestValuesFile writes a values file next to the test and returns its
// path.
func writeTestValuesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	err := os.WriteFile(path, []byte(content), fileutil.ReadWriteUserPermission)
	require.NoError(t, err)
	return path
}
