// Package render builds the Kubernetes objects for a keepstack installation
// from chart metadata, release identity, and typed values. It is the Go
// counterpart of the chart's templates: names, labels, and namespaces all
// flow through pkg/naming so the rendered objects obey the same composition
// and truncation rules as the chart helpers.
package render

import (
	"fmt"

	"github.com/example/keepstack-chart/pkg/chart"
	"github.com/example/keepstack-chart/pkg/naming"
	"github.com/example/keepstack-chart/pkg/values"
)

// Role suffixes for derived resource names.
const (
	RoleAPI     = "api"
	RoleWorker  = "worker"
	RoleMigrate = "migrate"
	RoleDigest  = "digest"
)

// ReleaseService identifies the manager of the rendered objects in the
// app.kubernetes.io/managed-by label when the caller does not supply one.
const ReleaseService = "Helm"

// State carries everything a single render pass needs: the chart's identity,
// the release identity, and the merged values. It is immutable during a
// render.
type State struct {
	Chart            chart.Metadata
	ReleaseName      string
	ReleaseNamespace string
	ReleaseService   string
	Values           values.Values
}

// NewState assembles a State, defaulting the release service to "Helm".
func NewState(meta chart.Metadata, releaseName, releaseNamespace string, vals values.Values) *State {
	return &State{
		Chart:            meta,
		ReleaseName:      releaseName,
		ReleaseNamespace: releaseNamespace,
		ReleaseService:   ReleaseService,
		Values:           vals,
	}
}

// FullName returns the canonical name prefix for this installation.
func (s *State) FullName() string {
	return naming.Fullname(s.ReleaseName, s.Chart.Name, s.Values.FullnameOverride)
}

// Namespace resolves the namespace all objects are rendered into.
func (s *State) Namespace() string {
	return naming.Namespace(s.Values.Namespace, s.ReleaseNamespace)
}

// Labels returns the standard label set for a component, merged with any
// user-supplied common labels. Component may be empty for cluster-scoped or
// shared objects.
func (s *State) Labels(component string) map[string]string {
	labels := naming.Labels(s.Chart.Name, s.Chart.Version, s.ReleaseName, s.ReleaseService)
	if component != "" {
		labels[naming.LabelComponent] = component
	}
	for key, value := range s.Values.CommonLabels {
		labels[key] = value
	}
	return labels
}

// SelectorLabels returns the immutable selector subset for a component.
func (s *State) SelectorLabels(component string) map[string]string {
	selector := naming.SelectorLabels(s.Chart.Name, s.ReleaseName)
	if component != "" {
		selector[naming.LabelComponent] = component
	}
	return selector
}

// Tag returns the image tag for all keepstack containers: the values tag when
// set, otherwise the chart's appVersion.
func (s *State) Tag() string {
	if s.Values.Image.Tag != "" {
		return s.Values.Image.Tag
	}
	return s.Chart.AppVersion
}

// containerImage assembles the image string for a repository using the shared
// registry and tag.
func (s *State) containerImage(repository string) string {
	image := fmt.Sprintf("%s:%s", repository, s.Tag())
	if s.Values.Image.Registry != "" {
		return fmt.Sprintf("%s/%s", s.Values.Image.Registry, image)
	}
	return image
}

// APIImage returns the full image reference for the API containers. The
// migration job and digest cron reuse this image: both are entrypoints of the
// API binary set.
func (s *State) APIImage() string {
	return s.containerImage(s.Values.API.Repository)
}

// WorkerImage returns the full image reference for the worker container.
func (s *State) WorkerImage() string {
	return s.containerImage(s.Values.Worker.Repository)
}

// APIServiceAccountName resolves the API role's service account name.
func (s *State) APIServiceAccountName() string {
	return naming.ServiceAccountName(s.FullName(), RoleAPI, s.Values.ServiceAccounts.API.Name)
}

// WorkerServiceAccountName resolves the worker role's service account name.
func (s *State) WorkerServiceAccountName() string {
	return naming.ServiceAccountName(s.FullName(), RoleWorker, s.Values.ServiceAccounts.Worker.Name)
}

// MigrateJobName resolves the schema migration job name.
func (s *State) MigrateJobName() string {
	return naming.MigrateJobName(s.FullName(), s.Values.Migrate.Name)
}
