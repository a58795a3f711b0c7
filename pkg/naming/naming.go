// Package naming computes the canonical resource names and label sets for a
// keepstack installation. These are the Go counterparts of the chart's helper
// templates: every rendered object derives its metadata from the functions in
// this package so that names stay within Kubernetes limits and label sets stay
// consistent across resources.
package naming

import (
	"fmt"
	"strings"
)

const (
	// MaxNameLength is the maximum length of a Kubernetes object name that is
	// also usable as a DNS label.
	MaxNameLength = 63

	// MigrateSuffix is the role suffix appended to the fullname for the
	// schema migration job.
	MigrateSuffix = "migrate"
)

// Standard label keys emitted by Labels and SelectorLabels.
const (
	LabelName      = "app.kubernetes.io/name"
	LabelInstance  = "app.kubernetes.io/instance"
	LabelVersion   = "app.kubernetes.io/version"
	LabelManagedBy = "app.kubernetes.io/managed-by"
	LabelComponent = "app.kubernetes.io/component"
)

// Clean truncates a name to MaxNameLength and strips any trailing "-" left
// behind by the truncation. Every composed name passes through here.
func Clean(name string) string {
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	return strings.TrimSuffix(name, "-")
}

// Fullname returns the canonical name prefix for all resources of an
// installation. When override is non-empty it wins outright. Otherwise the
// release name and chart name are joined with "-", except when the release
// name already appears in the chart name, in which case the chart name is
// used alone to avoid stuttering names like "keepstack-keepstack".
func Fullname(releaseName, chartName, override string) string {
	if override != "" {
		return Clean(override)
	}
	if strings.Contains(chartName, releaseName) {
		return Clean(chartName)
	}
	return Clean(fmt.Sprintf("%s-%s", releaseName, chartName))
}

// Labels returns the standard metadata labels stamped onto every rendered
// object. The four keys and their sources mirror the chart's label helper:
// chart name, release name, chart version, and the release service.
func Labels(chartName, chartVersion, releaseName, releaseService string) map[string]string {
	return map[string]string{
		LabelName:      chartName,
		LabelInstance:  releaseName,
		LabelVersion:   chartVersion,
		LabelManagedBy: releaseService,
	}
}

// SelectorLabels returns the immutable subset of Labels used for workload
// selectors. Selectors cannot be updated in place, so this set must never
// grow version or managed-by keys.
func SelectorLabels(chartName, releaseName string) map[string]string {
	return map[string]string{
		LabelName:     chartName,
		LabelInstance: releaseName,
	}
}

// Namespace resolves the target namespace for rendered objects: the values
// override when set, otherwise the ambient release namespace. The result is
// not validated for namespace legality.
func Namespace(override, releaseNamespace string) string {
	if override != "" {
		return override
	}
	return releaseNamespace
}

// WithSuffix composes a derived resource name from the fullname and a role
// suffix, re-applying the length and separator rules.
func WithSuffix(fullname, suffix string) string {
	return Clean(fmt.Sprintf("%s-%s", fullname, suffix))
}

// MigrateJobName returns the name of the schema migration job. A configured
// override is returned verbatim, bypassing composition.
func MigrateJobName(fullname, override string) string {
	if override != "" {
		return override
	}
	return WithSuffix(fullname, MigrateSuffix)
}

// ServiceAccountName returns the service account name for a role (for
// example "api" or "worker"). A configured override is returned verbatim,
// bypassing composition.
func ServiceAccountName(fullname, role, override string) string {
	if override != "" {
		return override
	}
	return WithSuffix(fullname, role)
}
