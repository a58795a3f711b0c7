package image

import (
	"net"
	"strings"

	"github.com/distribution/reference"

	"github.com/example/keepstack-chart/pkg/log"
)

// Constants for image reference handling.
const (
	// DefaultRegistry is the registry assumed when none is specified.
	DefaultRegistry = "docker.io"
	// LegacyDefaultRegistry is the legacy default registry domain.
	LegacyDefaultRegistry = "index.docker.io"
	// OfficialRepositoryName is the namespace for official Docker images.
	OfficialRepositoryName = "library"
	// DefaultTag is the tag assumed when neither tag nor digest is present.
	DefaultTag = "latest"
)

// ParseImageReference parses an image reference string into its components
// using the distribution/reference library.
//
// The function handles the usual reference shapes:
//   - registry/repository:tag (e.g., ghcr.io/example/keepstack-api:v0.3.0)
//   - repository:tag (e.g., nginx:1.23, implies docker.io)
//   - registry/repository@digest
//   - repository@digest
//
// For references with neither tag nor digest, the tag defaults to "latest".
// A reference carrying both a tag and a digest is rejected with
// ErrTagAndDigestPresent.
func ParseImageReference(imageRef string) (*Reference, error) {
	if imageRef == "" {
		return nil, ErrEmptyImageReference
	}

	named, err := reference.ParseAnyReference(imageRef)
	if err != nil {
		log.Debug("failed to parse image reference", "ref", imageRef, "error", err)
		return nil, ErrInvalidImageReference
	}

	result := &Reference{
		Original: imageRef,
	}

	if namedRef, ok := named.(reference.Named); ok {
		result.Registry = reference.Domain(namedRef)
		result.Repository = reference.Path(namedRef)
	}

	var hasTag, hasDigest bool
	if taggedRef, ok := named.(reference.Tagged); ok {
		result.Tag = taggedRef.Tag()
		hasTag = true
	}
	if digestedRef, ok := named.(reference.Digested); ok {
		result.Digest = digestedRef.Digest().String()
		hasDigest = true
	}

	if hasTag && hasDigest {
		return nil, ErrTagAndDigestPresent
	}

	if result.Repository == "" {
		return nil, ErrMissingRepository
	}

	if result.Tag == "" && result.Digest == "" {
		result.Tag = DefaultTag
	}

	log.Debug("parsed image reference", "ref", imageRef, "registry", result.Registry, "repository", result.Repository)
	return result, nil
}

// NormalizeRegistry standardizes registry names for comparison: lowercases,
// folds index.docker.io onto docker.io, and strips any path or port suffix.
func NormalizeRegistry(registry string) string {
	trimmed := strings.TrimSpace(registry)
	if trimmed == "" {
		return DefaultRegistry
	}

	hostname := strings.ToLower(trimmed)
	if hostname == DefaultRegistry || hostname == LegacyDefaultRegistry {
		return DefaultRegistry
	}

	if firstSlash := strings.Index(hostname, "/"); firstSlash != -1 {
		hostname = hostname[:firstSlash]
	}

	if strings.Contains(hostname, ":") {
		if host, _, err := net.SplitHostPort(hostname); err == nil {
			hostname = host
		}
	}

	return hostname
}

// NormalizeImageReference applies the default-registry, default-tag, and
// library-namespace rules to a parsed Reference in place, matching how
// container runtimes interpret short references.
func NormalizeImageReference(ref *Reference) {
	if ref == nil {
		return
	}

	if ref.Registry == "" {
		ref.Registry = DefaultRegistry
	} else {
		ref.Registry = NormalizeRegistry(ref.Registry)
	}

	if ref.Tag == "" && ref.Digest == "" {
		ref.Tag = DefaultTag
	}

	if ref.Registry == DefaultRegistry && !strings.Contains(ref.Repository, "/") {
		ref.Repository = OfficialRepositoryName + "/" + ref.Repository
	}

	if ref.Original == "" {
		ref.Original = ref.String()
	}
}
