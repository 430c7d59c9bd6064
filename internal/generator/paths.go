package generator

import (
	"encoding/xml"
	"os"
	"path"
	"strings"
)

// forbiddenFileNameChars are replaced in generated file names.
const forbiddenFileNameChars = `?&*"<>|#%^;`

// SanitizeFileName replaces characters that are not allowed in generated
// file names with '_'. ':' is also replaced unless the host path separator
// is '\'.
func SanitizeFileName(name string) string {
	return sanitize(name, os.PathSeparator != '\\')
}

func sanitize(name string, forbidColon bool) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenFileNameChars, r) || (forbidColon && r == ':') {
			return '_'
		}
		return r
	}, name)
}

// ProjectFileName returns the file name of the project for assemblyName.
func ProjectFileName(assemblyName string) string {
	return SanitizeFileName(assemblyName) + ".csproj"
}

// SolutionFileName returns the file name of the solution for the group.
func SolutionFileName(projectGroupName string) string {
	return SanitizeFileName(projectGroupName) + ".sln"
}

// toSlash normalizes both separator styles to '/'.
func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func toBackslash(p string) string {
	return strings.ReplaceAll(p, "/", "\\")
}

// isRooted reports whether p is absolute on either Unix or Windows.
func isRooted(p string) bool {
	p = toSlash(p)
	if strings.HasPrefix(p, "/") {
		return true
	}
	return len(p) >= 3 && p[1] == ':' && p[2] == '/' && isLetter(p[0])
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// cleanSlash cleans p while keeping a Windows drive prefix intact.
func cleanSlash(p string) string {
	p = toSlash(p)
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

// joinProject resolves p against projectDir unless it is already rooted.
func joinProject(projectDir, p string) string {
	if isRooted(p) {
		return cleanSlash(p)
	}
	return cleanSlash(path.Join(toSlash(projectDir), toSlash(p)))
}

// relativeTo returns p relative to projectDir when p lies inside it and the
// cleaned p otherwise. Both are compared in slash form.
func relativeTo(projectDir, p string) (string, bool) {
	dir := cleanSlash(projectDir)
	p = cleanSlash(p)
	if dir == "" || dir == "." {
		return p, !isRooted(p)
	}
	if !isRooted(p) {
		return p, true
	}
	if strings.EqualFold(p, dir) {
		return ".", true
	}
	prefix := strings.TrimSuffix(dir, "/") + "/"
	if len(p) > len(prefix) && strings.EqualFold(p[:len(prefix)], prefix) {
		return p[len(prefix):], true
	}
	return p, false
}

// escapeXML escapes text for use in element content or attribute values.
func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// projectPath renders p for a project file: relative to projectDir when
// possible, backslash separated and XML-escaped.
func projectPath(projectDir, p string) string {
	rel, _ := relativeTo(projectDir, p)
	return escapeXML(toBackslash(rel))
}

// fileNameWithoutExtension returns the base name of p minus its extension.
func fileNameWithoutExtension(p string) string {
	base := path.Base(toSlash(p))
	return strings.TrimSuffix(base, path.Ext(base))
}
