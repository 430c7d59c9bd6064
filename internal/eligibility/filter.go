// Package eligibility decides which asset paths take part in generation.
//
// A path is supported when its extension is in the effective extension set.
// A supported path belongs in the generated output unless it lives in a
// package whose origin is switched off in the active GenerationFlags.
package eligibility

import (
	"path"
	"strings"

	"github.com/vvka-141/projgen/internal/pkgcache"
	"github.com/vvka-141/projgen/pkg/projgen"
)

// BaseExtensions are always supported regardless of provider settings.
var BaseExtensions = []string{"dll", "asmdef", "additionalfile"}

const packagesPrefix = "packages/"

// Filter is built once per sync pass. It snapshots the extension policy and
// the generation flags at construction time.
type Filter struct {
	provider   projgen.MetadataProvider
	flags      projgen.GenerationFlags
	cache      *pkgcache.Cache
	extensions map[string]struct{}
}

// New builds a filter for one pass. A failing built-in extension lookup is
// logged at verbose level and leaves only the base and user extensions.
// Panics if provider, cache or logger is nil.
func New(provider projgen.MetadataProvider, flags projgen.GenerationFlags, cache *pkgcache.Cache, logger projgen.Logger) *Filter {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if cache == nil {
		panic("cache cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	exts := make(map[string]struct{})
	add := func(list []string) {
		for _, e := range list {
			e = normalizeExtension(e)
			if e != "" {
				exts[e] = struct{}{}
			}
		}
	}
	add(BaseExtensions)
	add(provider.UserExtensions())
	builtin, err := provider.BuiltinExtensions()
	if err != nil {
		logger.Verbose("Built-in extension list unavailable: %v", err)
	} else {
		add(builtin)
	}

	return &Filter{
		provider:   provider,
		flags:      flags,
		cache:      cache,
		extensions: exts,
	}
}

// Flags returns the generation flags this filter was built with.
func (f *Filter) Flags() projgen.GenerationFlags {
	return f.flags
}

// SupportedExtension returns the lower-case extension of p without the dot
// and whether it is supported.
func (f *Filter) SupportedExtension(p string) (string, bool) {
	ext := Extension(p)
	if ext == "" {
		return "", false
	}
	_, ok := f.extensions[ext]
	return ext, ok
}

// IsSupported reports whether p has a supported extension.
func (f *Filter) IsSupported(p string) bool {
	_, ok := f.SupportedExtension(p)
	return ok
}

// ShouldBePartOfProject reports whether p is supported and not internalized.
func (f *Filter) ShouldBePartOfProject(p string) bool {
	if !f.IsSupported(p) {
		return false
	}
	return !f.IsInternalized(p)
}

// IsInternalized reports whether p lives in a package whose origin flag is
// unset.
func (f *Filter) IsInternalized(p string) bool {
	info, ok := f.FindPackage(p)
	if !ok {
		return false
	}
	return !f.flags.Has(info.Source.GenerationFlag())
}

// FindPackage resolves the package that contains p, if any.
func (f *Filter) FindPackage(p string) (projgen.PackageInfo, bool) {
	root, ok := PackageRoot(p)
	if !ok {
		return projgen.PackageInfo{}, false
	}
	return f.cache.Get(root)
}

// PackageRoot returns the package root of p: the "packages/<name>" prefix
// when p starts with "packages/" in any casing, or the whole path when no
// further separator follows the name.
func PackageRoot(p string) (string, bool) {
	p = strings.ReplaceAll(p, "\\", "/")
	if len(p) < len(packagesPrefix) || !strings.EqualFold(p[:len(packagesPrefix)], packagesPrefix) {
		return "", false
	}
	rest := p[len(packagesPrefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return p[:len(packagesPrefix)+i], true
	}
	return p, true
}

// Extension returns the lower-case extension of p without the leading dot.
func Extension(p string) string {
	return normalizeExtension(path.Ext(strings.ReplaceAll(p, "\\", "/")))
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
