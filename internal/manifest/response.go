package manifest

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/vvka-141/projgen/internal/files/filesystem"
	"github.com/vvka-141/projgen/pkg/projgen"
)

var (
	definePrefixes    = []string{"-define:", "/define:", "-d:", "/d:"}
	referencePrefixes = []string{"-reference:", "/reference:", "-r:", "/r:"}
)

// ParseResponseFile reads and parses one compiler response file. Relative
// paths are resolved against projectDir. An unreadable file yields data
// holding a single error.
func ParseResponseFile(fsProvider filesystem.FileSystemProvider, filePath, projectDir string, systemReferenceDirs []string) projgen.ResponseFileData {
	fullPath := ResolvePath(projectDir, filePath)
	content, err := fsProvider.ReadFile(fullPath)
	if err != nil {
		return projgen.ResponseFileData{Errors: []string{"cannot read response file " + fullPath + ": " + err.Error()}}
	}
	return ParseResponseText(fsProvider, string(content), projectDir, systemReferenceDirs)
}

// ParseResponseText parses response file content.
func ParseResponseText(fsProvider filesystem.FileSystemProvider, text, projectDir string, systemReferenceDirs []string) projgen.ResponseFileData {
	var data projgen.ResponseFileData

	for _, arg := range Tokenize(text) {
		lower := strings.ToLower(arg)
		switch {
		case lower == "-unsafe" || lower == "/unsafe" || lower == "-unsafe+" || lower == "/unsafe+":
			data.Unsafe = true
		case lower == "-unsafe-" || lower == "/unsafe-":
			data.Unsafe = false
		default:
			if v, ok := cutPrefix(arg, definePrefixes); ok {
				data.Defines = append(data.Defines, splitValues(v)...)
				continue
			}
			if v, ok := cutPrefix(arg, referencePrefixes); ok {
				values := splitValues(v)
				if len(values) == 0 {
					data.Errors = append(data.Errors, "reference argument without value: "+arg)
				}
				for _, ref := range values {
					data.FullPathReferences = append(data.FullPathReferences, resolveReference(fsProvider, ref, projectDir, systemReferenceDirs))
				}
				continue
			}
			data.OtherArguments = append(data.OtherArguments, arg)
		}
	}
	return data
}

// resolveReference keeps rooted paths, then looks ref up in the system
// reference directories, then falls back to the project directory.
func resolveReference(fsProvider filesystem.FileSystemProvider, ref, projectDir string, systemReferenceDirs []string) string {
	ref = filepath.ToSlash(ref)
	if filepath.IsAbs(ref) || path.IsAbs(ref) {
		return ref
	}
	for _, dir := range systemReferenceDirs {
		candidate := path.Join(filepath.ToSlash(dir), ref)
		if _, err := fsProvider.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path.Join(filepath.ToSlash(projectDir), ref)
}

func cutPrefix(arg string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if len(arg) >= len(p) && strings.EqualFold(arg[:len(p)], p) {
			return arg[len(p):], true
		}
	}
	return "", false
}

func splitValues(v string) []string {
	var out []string
	for _, f := range strings.FieldsFunc(v, func(r rune) bool { return r == ';' || r == ',' }) {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Tokenize splits response file text into arguments. Whitespace separates
// arguments except inside double quotes; the quotes themselves are dropped.
// Lines whose first non-blank character is '#' are comments.
func Tokenize(text string) []string {
	var args []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		var cur strings.Builder
		inQuotes, hasToken := false, false
		for _, r := range trimmed {
			switch {
			case r == '"':
				inQuotes = !inQuotes
				hasToken = true
			case !inQuotes && (r == ' ' || r == '\t'):
				if hasToken {
					args = append(args, cur.String())
					cur.Reset()
					hasToken = false
				}
			default:
				cur.WriteRune(r)
				hasToken = true
			}
		}
		if hasToken {
			args = append(args, cur.String())
		}
	}
	return args
}
