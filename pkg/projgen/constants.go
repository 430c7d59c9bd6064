package projgen

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Sync completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or flag name
	ExitManifestMissing = 11 // Compilation manifest not found
	ExitManifestInvalid = 12 // Compilation manifest malformed
	ExitWriteFailed     = 13 // A generated file could not be written
)

const (
	// ProjectExtension is the extension of generated project files.
	ProjectExtension = ".csproj"

	// SolutionExtension is the extension of generated solution files.
	SolutionExtension = ".sln"

	// PlayerProjectSuffix distinguishes projects generated from the player graph.
	PlayerProjectSuffix = ".Player"

	// LibrarySuffix is stripped from assembly names reported by providers.
	LibrarySuffix = ".dll"

	// DefaultLanguageVersion is used when no response file sets /langversion.
	DefaultLanguageVersion = "latest"

	// Newline is the fixed line terminator of every generated file.
	Newline = "\r\n"

	// DefaultManifestPath is where the build pipeline writes its compilation graph.
	DefaultManifestPath = "Library/compilation.yaml"

	// DefaultSettingsDir holds the persisted generation settings.
	DefaultSettingsDir = "Library/projgen"

	// DefaultWatchDebounce batches filesystem events before an incremental sync.
	DefaultWatchDebounce = 200 * time.Millisecond
)
