// Package values defines the typed values model for the keepstack deployment
// and the loading/merging logic that turns default and user-supplied values
// files into a single Values struct. Merging follows helm's coalescing rules:
// later files override earlier ones, and everything overrides the embedded
// defaults.
package values

import (
	_ "embed"
	"fmt"

	"github.com/spf13/afero"
	"helm.sh/helm/v3/pkg/chartutil"
	"sigs.k8s.io/yaml"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Values mirrors the keepstack chart's values structure.
type Values struct {
	// Namespace overrides the release namespace for all rendered objects
	// when non-empty.
	Namespace        string            `json:"namespace"`
	FullnameOverride string            `json:"fullnameOverride"`
	CommonLabels     map[string]string `json:"commonLabels"`
	Image            Image             `json:"image"`
	API              API               `json:"api"`
	Worker           Worker            `json:"worker"`
	Cron             Cron              `json:"cron"`
	Migrate          Migrate           `json:"migrate"`
	ServiceAccounts  ServiceAccounts   `json:"serviceAccounts"`
	Config           AppConfig         `json:"config"`
}

// Image carries the registry, tag, and pull policy shared by all keepstack
// containers. The per-role repository lives under the role's own block.
type Image struct {
	Registry   string `json:"registry"`
	Tag        string `json:"tag"`
	PullPolicy string `json:"pullPolicy"`
}

// API configures the HTTP API deployment.
type API struct {
	Repository string  `json:"repository"`
	Replicas   int32   `json:"replicas"`
	Port       int32   `json:"port"`
	Service    Service `json:"service"`
	Ingress    Ingress `json:"ingress"`
}

// Worker configures the ingest worker deployment.
type Worker struct {
	Repository  string `json:"repository"`
	Replicas    int32  `json:"replicas"`
	MetricsPort int32  `json:"metricsPort"`
	HealthPort  int32  `json:"healthPort"`
}

// Cron configures the scheduled digest job.
type Cron struct {
	Schedule string `json:"schedule"`
	Suspend  bool   `json:"suspend"`
}

// Migrate configures the schema migration job. Name, when set, overrides the
// composed job name verbatim.
type Migrate struct {
	Name          string `json:"name"`
	MigrationsDir string `json:"migrationsDir"`
}

// ServiceAccounts holds the per-role service account configuration.
type ServiceAccounts struct {
	API    ServiceAccount `json:"api"`
	Worker ServiceAccount `json:"worker"`
}

// ServiceAccount configures a single role's service account. Name, when set,
// overrides the composed account name verbatim.
type ServiceAccount struct {
	Create bool   `json:"create"`
	Name   string `json:"name"`
}

// Service configures the API's ClusterIP service.
type Service struct {
	Type string `json:"type"`
	Port int32  `json:"port"`
}

// Ingress configures external access to the API.
type Ingress struct {
	Enabled     bool              `json:"enabled"`
	ClassName   string            `json:"className"`
	Host        string            `json:"host"`
	Annotations map[string]string `json:"annotations"`
}

// AppConfig carries the application environment rendered into the config map.
type AppConfig struct {
	DatabaseURL string `json:"databaseURL"`
	NATSURL     string `json:"natsURL"`
	DevMode     bool   `json:"devMode"`
}

// Default returns the embedded default values.
func Default() (Values, error) {
	var vals Values
	if err := yaml.Unmarshal(defaultsYAML, &vals); err != nil {
		return Values{}, fmt.Errorf("unmarshal embedded defaults: %w", err)
	}
	return vals, nil
}

// Load reads the given values files through fs, merges them over the embedded
// defaults, and decodes the result. Later files override earlier ones.
func Load(fs afero.Fs, valueFiles []string) (Values, error) {
	return LoadOver(fs, nil, valueFiles)
}

// LoadOver is Load with an extra layer: base (typically a loaded chart's own
// values table) sits between the embedded defaults and the user's files, so
// files override the chart and the chart overrides the defaults.
func LoadOver(fs afero.Fs, base map[string]interface{}, valueFiles []string) (Values, error) {
	defaults, err := chartutil.ReadValues(defaultsYAML)
	if err != nil {
		return Values{}, fmt.Errorf("read embedded defaults: %w", err)
	}

	merged := map[string]interface{}{}
	for _, file := range valueFiles {
		data, err := afero.ReadFile(fs, file)
		if err != nil {
			return Values{}, fmt.Errorf("read values file %s: %w", file, err)
		}
		fileVals, err := chartutil.ReadValues(data)
		if err != nil {
			return Values{}, fmt.Errorf("parse values file %s: %w", file, err)
		}
		// The newest file wins over everything accumulated so far.
		merged = chartutil.CoalesceTables(fileVals.AsMap(), merged)
	}
	if base != nil {
		merged = chartutil.CoalesceTables(merged, base)
	}
	merged = chartutil.CoalesceTables(merged, defaults.AsMap())

	return decode(merged)
}

// MergeOver merges an untyped values table (for example, a loaded chart's
// values) over the embedded defaults and decodes the result.
func MergeOver(overrides map[string]interface{}) (Values, error) {
	defaults, err := chartutil.ReadValues(defaultsYAML)
	if err != nil {
		return Values{}, fmt.Errorf("read embedded defaults: %w", err)
	}
	merged := chartutil.CoalesceTables(overrides, defaults.AsMap())
	return decode(merged)
}

func decode(merged map[string]interface{}) (Values, error) {
	data, err := yaml.Marshal(merged)
	if err != nil {
		return Values{}, fmt.Errorf("marshal merged values: %w", err)
	}

	var vals Values
	if err := yaml.Unmarshal(data, &vals); err != nil {
		return Values{}, fmt.Errorf("decode merged values: %w", err)
	}
	return vals, nil
}
