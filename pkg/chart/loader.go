// Package chart provides loading of the keepstack chart's metadata and
// default values through the Helm SDK. The renderer only needs Chart.yaml
// metadata (name, version, appVersion) and the chart's values table; the
// templates themselves are not evaluated here.
package chart

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"

	"github.com/example/keepstack-chart/pkg/log"
)

// Loader defines the interface for loading Helm charts.
type Loader interface {
	Load(chartPath string) (*chart.Chart, error)
}

// helmLoader implements the Loader interface using the Helm library.
type helmLoader struct{}

// NewLoader creates a new Loader instance that uses the Helm library.
func NewLoader() Loader {
	return &helmLoader{}
}

// Load loads a Helm chart from a directory or .tgz file using the Helm
// library.
func (l *helmLoader) Load(chartPath string) (*chart.Chart, error) {
	log.Debug("loading chart", "path", chartPath)

	if _, err := os.Stat(chartPath); err != nil {
		return nil, &NotFoundError{Path: chartPath, Err: err}
	}

	var loaded *chart.Chart
	var err error
	if filepath.Ext(chartPath) == ".tgz" {
		loaded, err = loader.Load(chartPath)
	} else {
		// Assume directory if not .tgz. loader.LoadDir handles non-dirs.
		loaded, err = loader.LoadDir(chartPath)
	}
	if err != nil {
		return nil, &ParsingError{
			FilePath: chartPath,
			Err:      errors.Wrap(err, "helm chart load failed"),
		}
	}

	log.Debug("loaded chart", "name", loaded.Name(), "version", loaded.Metadata.Version)
	return loaded, nil
}

// Metadata describes the subset of Chart.yaml the renderer consumes.
type Metadata struct {
	Name       string
	Version    string
	AppVersion string
}

// MetadataOf extracts the renderer-facing metadata from a loaded chart.
func MetadataOf(c *chart.Chart) Metadata {
	if c == nil || c.Metadata == nil {
		return Metadata{}
	}
	return Metadata{
		Name:       c.Metadata.Name,
		Version:    c.Metadata.Version,
		AppVersion: c.Metadata.AppVersion,
	}
}
