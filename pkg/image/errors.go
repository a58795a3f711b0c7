package image

import "errors"

// Sentinel errors related to image reference parsing and validation.
var (
	ErrEmptyImageReference   = errors.New("cannot parse empty image reference")
	ErrInvalidImageReference = errors.New("invalid image reference format")
	ErrTagAndDigestPresent   = errors.New("both tag and digest present")
	ErrMissingRepository     = errors.New("image reference has no repository")
)
