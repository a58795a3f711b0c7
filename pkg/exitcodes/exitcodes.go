// Package exitcodes provides centralized exit code definitions and error
// handling for the ksc tool. Exit codes are organized in ranges to categorize
// different types of failures:
//
//	0:     Success
//	1-9:   Input/Configuration Errors (e.g., missing flags, bad values files)
//	10-19: Chart/Render Errors (e.g., chart load failures, invalid manifests)
//	20-29: Runtime Errors (e.g., I/O errors, system failures)
package exitcodes

import (
	"errors"
	"fmt"
)

// Exit code constants organized by category
const (
	// Success (0)
	ExitSuccess = 0

	// Input/Configuration Errors (1-9)
	ExitMissingRequiredFlag     = 1 // Required command flag not provided
	ExitInputConfigurationError = 2 // General configuration error
	ExitValuesFileError         = 3 // Values file missing or failed to parse
	ExitChartNotFound           = 4 // Chart path not found

	// Chart/Render Errors (10-19)
	ExitChartLoadFailed     = 10 // Failed to load or parse chart
	ExitRenderFailed        = 11 // Failed to render manifests
	ExitValidationFailed    = 12 // Rendered output violated naming/label rules
	ExitImageReferenceError = 13 // Image reference failed to parse or validate

	// Runtime Errors (20-29)
	ExitGeneralRuntimeError = 20 // General runtime/system error
	ExitIOError             = 21 // IO operation error

	// Internal Errors (30-39)
	ExitInternalError = 30 // Internal error in command execution
)

// ExitCodeError wraps an error with an exit code for consistent error
// handling. This type is used throughout the codebase to propagate both error
// details and the appropriate exit code up the call stack.
type ExitCodeError struct {
	Code int   // Exit code to return
	Err  error // Underlying error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d: %v", e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// IsExitCodeError checks if an error is an ExitCodeError and returns its
// code. Returns false and 0 if the error is not an ExitCodeError.
func IsExitCodeError(err error) (int, bool) {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// CodeDescriptions maps exit codes to their human-readable descriptions
var CodeDescriptions = map[int]string{
	ExitSuccess:                 "Success",
	ExitMissingRequiredFlag:     "Required command flag not provided",
	ExitInputConfigurationError: "General configuration error",
	ExitValuesFileError:         "Values file missing or failed to parse",
	ExitChartNotFound:           "Chart path not found",
	ExitChartLoadFailed:         "Failed to load or parse chart",
	ExitRenderFailed:            "Failed to render manifests",
	ExitValidationFailed:        "Rendered output violated naming/label rules",
	ExitImageReferenceError:     "Image reference failed to parse or validate",
	ExitGeneralRuntimeError:     "General runtime/system error",
	ExitIOError:                 "IO operation error",
	ExitInternalError:           "Internal error in command execution",
}
