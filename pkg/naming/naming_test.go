package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "short name unchanged",
			input:    "demo-keepstack",
			expected: "demo-keepstack",
		},
		{
			name:     "name at limit unchanged",
			input:    strings.Repeat("a", 63),
			expected: strings.Repeat("a", 63),
		},
		{
			name:     "long name truncated",
			input:    strings.Repeat("a", 80),
			expected: strings.Repeat("a", 63),
		},
		{
			name:     "trailing separator stripped after truncation",
			input:    strings.Repeat("a", 62) + "--tail",
			expected: strings.Repeat("a", 62),
		},
		{
			name:     "trailing separator stripped without truncation",
			input:    "demo-",
			expected: "demo",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Clean(tc.input)
			assert.Equal(t, tc.expected, got)
			assert.LessOrEqual(t, len(got), MaxNameLength)
			assert.False(t, strings.HasSuffix(got, "-"))
		})
	}
}

func TestFullname(t *testing.T) {
	testCases := []struct {
		name        string
		releaseName string
		chartName   string
		override    string
		expected    string
	}{
		{
			name:        "release and chart joined",
			releaseName: "demo",
			chartName:   "keepstack",
			expected:    "demo-keepstack",
		},
		{
			name:        "release name contained in chart name",
			releaseName: "keepstack",
			chartName:   "keepstack",
			expected:    "keepstack",
		},
		{
			name:        "override wins",
			releaseName: "demo",
			chartName:   "keepstack",
			override:    "custom-name",
			expected:    "custom-name",
		},
		{
			name:        "long composition truncated without trailing separator",
			releaseName: strings.Repeat("r", 62),
			chartName:   "keepstack",
			expected:    strings.Repeat("r", 62),
		},
		{
			name:        "override also cleaned",
			releaseName: "demo",
			chartName:   "keepstack",
			override:    strings.Repeat("o", 70),
			expected:    strings.Repeat("o", 63),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fullname(tc.releaseName, tc.chartName, tc.override)
			assert.Equal(t, tc.expected, got)
			assert.LessOrEqual(t, len(got), MaxNameLength)
			assert.False(t, strings.HasSuffix(got, "-"))
		})
	}
}

func TestLabels(t *testing.T) {
	labels := Labels("keepstack", "0.3.0", "demo", "Helm")

	assert.Equal(t, map[string]string{
		"app.kubernetes.io/name":       "keepstack",
		"app.kubernetes.io/instance":   "demo",
		"app.kubernetes.io/version":    "0.3.0",
		"app.kubernetes.io/managed-by": "Helm",
	}, labels)
}

func TestSelectorLabelsAreSubsetOfLabels(t *testing.T) {
	labels := Labels("keepstack", "0.3.0", "demo", "Helm")
	selector := SelectorLabels("keepstack", "demo")

	for key, value := range selector {
		assert.Equal(t, labels[key], value, "selector label %s must match full label set", key)
	}
}

func TestNamespace(t *testing.T) {
	testCases := []struct {
		name             string
		override         string
		releaseNamespace string
		expected         string
	}{
		{
			name:             "override returned exactly",
			override:         "keepstack-prod",
			releaseNamespace: "default",
			expected:         "keepstack-prod",
		},
		{
			name:             "falls back to release namespace",
			override:         "",
			releaseNamespace: "default",
			expected:         "default",
		},
		{
			name:             "both empty",
			override:         "",
			releaseNamespace: "",
			expected:         "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Namespace(tc.override, tc.releaseNamespace))
		})
	}
}

func TestMigrateJobName(t *testing.T) {
	assert.Equal(t, "demo-keepstack-migrate", MigrateJobName("demo-keepstack", ""))
	assert.Equal(t, "my-migrations", MigrateJobName("demo-keepstack", "my-migrations"))

	// Derived names are re-cleaned after composition.
	long := MigrateJobName(strings.Repeat("f", 60), "")
	assert.LessOrEqual(t, len(long), MaxNameLength)
	assert.False(t, strings.HasSuffix(long, "-"))
}

func TestServiceAccountName(t *testing.T) {
	testCases := []struct {
		name     string
		fullname string
		role     string
		override string
		expected string
	}{
		{
			name:     "api role composed",
			fullname: "demo-keepstack",
			role:     "api",
			expected: "demo-keepstack-api",
		},
		{
			name:     "worker role composed",
			fullname: "demo-keepstack",
			role:     "worker",
			expected: "demo-keepstack-worker",
		},
		{
			name:     "override returned verbatim",
			fullname: "demo-keepstack",
			role:     "api",
			override: "pre-existing-sa",
			expected: "pre-existing-sa",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ServiceAccountName(tc.fullname, tc.role, tc.override))
		})
	}
}
