// Package files groups the filesystem-facing sub-packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Asset discovery for projects whose manifest does not list assets
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/projgen/internal/files/filesystem"
//	    "github.com/vvka-141/projgen/internal/files/scanner"
//	)
//
//	fsProvider := filesystem.NewOSFileSystem()
//	assets, err := scanner.NewScannerWithFS(fsProvider).ScanAssets(projectDir)
package files
