package scanner

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/vvka-141/projgen/internal/files/filesystem"
)

// DefaultIgnoredDirectories are build-pipeline and tooling directories that
// never contain project assets.
var DefaultIgnoredDirectories = []string{"Library", "Temp", "Logs", "obj", "UserSettings"}

// generatedExtensions are the artifacts this tool writes itself.
var generatedExtensions = []string{".csproj", ".sln"}

// Scanner discovers asset paths below a project directory.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider  filesystem.FileSystemProvider
	ignoredDirs map[string]struct{}
}

// NewScanner creates a scanner over the OS filesystem.
func NewScanner() *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a new scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	s := &Scanner{
		fsProvider:  fsProvider,
		ignoredDirs: make(map[string]struct{}),
	}
	for _, dir := range DefaultIgnoredDirectories {
		s.ignoredDirs[strings.ToLower(dir)] = struct{}{}
	}
	return s
}

// ScanAssets walks projectDir and returns every asset path relative to it,
// using forward slashes, sorted.
//
// Hidden directories (leading '.'), DefaultIgnoredDirectories at any depth
// and previously generated project/solution files are skipped.
func (s *Scanner) ScanAssets(projectDir string) ([]string, error) {
	dir, err := s.fsProvider.Open(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var assets []string
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		rel := toSlash(file.RelativePath())
		if rel == "." || rel == "" {
			return nil
		}

		name := file.Info().Name()
		if file.Info().IsDir() {
			if s.isIgnoredDir(name) {
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || isGenerated(name) {
			return nil
		}

		assets = append(assets, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(assets)
	return assets, nil
}

func (s *Scanner) isIgnoredDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := s.ignoredDirs[strings.ToLower(name)]
	return ok
}

func isGenerated(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, generated := range generatedExtensions {
		if ext == generated {
			return true
		}
	}
	return false
}

// toSlash normalizes OS separators; filepath.ToSlash is a no-op on
// non-Windows hosts, so backslashes are replaced explicitly.
func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
