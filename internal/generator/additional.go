package generator

import (
	"strings"

	"github.com/vvka-141/projgen/pkg/projgen"
)

// sourceLanguageExtensions are compiled rather than attached as None items.
var sourceLanguageExtensions = map[string]struct{}{
	"cs": {},
}

// IsSourceLanguage reports whether ext (lower case, no dot) is compiled.
func IsSourceLanguage(ext string) bool {
	_, ok := sourceLanguageExtensions[strings.ToLower(ext)]
	return ok
}

// AdditionalAssetParts builds, once per pass, the None items of every
// assembly keyed by assembly name. Assets that are internalized,
// unsupported, compiled sources, or owned by no assembly are skipped.
func (g *Generator) AdditionalAssetParts() map[string]string {
	builders := make(map[string]*textWriter)
	for _, asset := range g.provider.AllAssetPaths() {
		if g.filter.IsInternalized(asset) {
			continue
		}
		ext, ok := g.filter.SupportedExtension(asset)
		if !ok || IsSourceLanguage(ext) {
			continue
		}
		name := strings.TrimSuffix(g.provider.AssemblyNameFromPath(asset), projgen.LibrarySuffix)
		if name == "" {
			g.logger.Verbose("Asset %s belongs to no assembly, skipping", asset)
			continue
		}

		w, ok := builders[name]
		if !ok {
			w = newTextWriter()
			builders[name] = w
		}
		full, _ := g.physicalPath(asset)
		w.line(`    <None Include="` + projectPath(g.opts.ProjectDirectory, full) + `" />`)
	}

	parts := make(map[string]string, len(builders))
	for name, w := range builders {
		parts[name] = w.String()
	}
	return parts
}
