package watch

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/projgen/internal/files/scanner"
)

// Batch is a debounced set of changes in sync terms.
type Batch struct {
	// Affected holds created, removed and renamed asset paths.
	Affected []string

	// Reimported holds created and modified asset paths.
	Reimported []string

	ManifestChanged bool
}

// Classify converts raw changes into project-relative, slash-separated
// asset paths. Changes outside root, in ignored directories, or to
// generated project files are dropped. Output is sorted and deduplicated.
func Classify(root, manifestPath string, changes []Change) Batch {
	var b Batch
	affected := make(map[string]struct{})
	reimported := make(map[string]struct{})

	for _, c := range changes {
		if manifestPath != "" && filepath.Clean(c.Path) == filepath.Clean(manifestPath) {
			b.ManifestChanged = true
			continue
		}
		rel, ok := assetPath(root, c.Path)
		if !ok {
			continue
		}
		switch c.Op {
		case OpCreate:
			affected[rel] = struct{}{}
			reimported[rel] = struct{}{}
		case OpWrite:
			reimported[rel] = struct{}{}
		default:
			affected[rel] = struct{}{}
		}
	}

	b.Affected = sortedKeys(affected)
	b.Reimported = sortedKeys(reimported)
	return b
}

func assetPath(root, p string) (string, bool) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}

	parts := strings.Split(rel, "/")
	for _, part := range parts[:len(parts)-1] {
		if strings.HasPrefix(part, ".") {
			return "", false
		}
		for _, ignored := range scanner.DefaultIgnoredDirectories {
			if strings.EqualFold(part, ignored) {
				return "", false
			}
		}
	}
	name := strings.ToLower(parts[len(parts)-1])
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".csproj") || strings.HasSuffix(name, ".sln") {
		return "", false
	}
	return rel, true
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
