// Package image parses, normalizes, and formats container image references.
// The render layer uses it to assemble the image strings for keepstack's pods
// from the registry/repository/tag fields in the chart values, and the
// validate command uses it to confirm that every rendered container image is
// a well-formed reference.
package image

import "fmt"

// Reference encapsulates the components of a container image reference.
type Reference struct {
	Original   string // The original string the reference was parsed from
	Registry   string // Registry domain (e.g., docker.io, ghcr.io)
	Repository string // Repository path within the registry
	Tag        string // Image tag (e.g., latest, v1.0.0)
	Digest     string // Image digest (e.g., sha256:abc123...)
}

// String returns the canonical string representation of the image reference.
func (r *Reference) String() string {
	if r.Registry != "" {
		if r.Digest != "" {
			return fmt.Sprintf("%s/%s@%s", r.Registry, r.Repository, r.Digest)
		}
		return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
	}

	if r.Digest != "" {
		return fmt.Sprintf("%s@%s", r.Repository, r.Digest)
	}
	return fmt.Sprintf("%s:%s", r.Repository, r.Tag)
}
