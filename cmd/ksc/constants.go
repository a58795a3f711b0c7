package main

// BinaryVersion is the version reported by ksc. Overridden at build time via
// -ldflags "-X main.BinaryVersion=...".
var BinaryVersion = "0.1.0"

const (
	// DefaultReleaseName is used when --release-name is not provided.
	DefaultReleaseName = "keepstack"
	// DefaultNamespace is the ambient release namespace when --namespace is
	// not provided. The values file's namespace override still wins.
	DefaultNamespace = "default"
	// DefaultOutputFormat is the inspect command's output encoding.
	DefaultOutputFormat = "yaml"
)
