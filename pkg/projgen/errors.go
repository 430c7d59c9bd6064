package projgen

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := generator.Sync()
//	if errors.Is(err, projgen.ErrWriteFailed) {
//	    // a generated file could not be persisted; re-running Sync heals it
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrManifestNotFound indicates the compilation manifest does not exist.
	ErrManifestNotFound = errors.New("compilation manifest not found")

	// ErrInvalidManifest indicates the compilation manifest is malformed or inconsistent.
	ErrInvalidManifest = errors.New("invalid compilation manifest")

	// ErrWriteFailed indicates a generated file could not be written.
	ErrWriteFailed = errors.New("write failed")

	// ErrUnknownFlag indicates a generation flag name could not be resolved.
	ErrUnknownFlag = errors.New("unknown generation flag")
)

// usageErrorPrefixes are the message shapes cobra and pflag produce for
// command-line misuse.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"requires at most",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnknownFlag):
		return ExitConfigError
	case errors.Is(err, ErrManifestNotFound):
		return ExitManifestMissing
	case errors.Is(err, ErrInvalidManifest):
		return ExitManifestInvalid
	case errors.Is(err, ErrWriteFailed):
		return ExitWriteFailed
	}

	msg := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(msg, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
