// Package scanner discovers the asset paths of a project directory.
//
// The scanner package is responsible for:
//   - Recursively discovering files in a project directory tree
//   - Skipping tooling directories (Library, Temp, obj, hidden directories)
//   - Skipping the project and solution files this tool generates
//   - Returning stable, forward-slash, project-relative paths
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
