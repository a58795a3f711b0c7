package chart

import "fmt"

// NotFoundError indicates the chart path does not exist on disk.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("chart path %s not found: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParsingError indicates a failure during the loading or initial parsing of
// the chart itself (e.g., malformed Chart.yaml or values.yaml).
type ParsingError struct {
	FilePath string
	Err      error
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("chart parsing failed for %s: %v", e.FilePath, e.Err)
}

func (e *ParsingError) Unwrap() error { return e.Err }
