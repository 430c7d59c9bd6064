// Package testing holds test doubles shared across package tests.
package testing

import (
	"errors"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/vvka-141/projgen/pkg/projgen"
)

// ErrNoBuiltins is returned by FakeProvider.BuiltinExtensions when
// FailBuiltins is set.
var ErrNoBuiltins = errors.New("built-in extension list unavailable")

// FakeProvider is an in-memory projgen.MetadataProvider with a fluent
// builder API.
//
// Example usage:
//
//	util := &projgen.Assembly{Name: "Util", SourceFiles: []string{"Assets/Util/u.cs"}}
//	provider := NewFakeProvider().
//	    WithAssembly(projgen.Assembly{Name: "Core", AssemblyReferences: []*projgen.Assembly{util}}).
//	    WithAssembly(*util).
//	    WithAssets("Assets/readme.txt")
type FakeProvider struct {
	mu sync.Mutex

	Editor        []projgen.Assembly
	Player        []projgen.Assembly
	Assets        []string
	Packages      map[string]projgen.PackageInfo
	Responses     map[string]projgen.ResponseFileData
	SystemRefs    map[string][]string
	User          []string
	Builtin       []string
	FailBuiltins  bool
	Namespace     string
	PathOverrides map[string]string

	packageLookups  int
	responseLookups int
}

// NewFakeProvider returns a provider whose built-in extensions are {cs}.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		Packages:      make(map[string]projgen.PackageInfo),
		Responses:     make(map[string]projgen.ResponseFileData),
		SystemRefs:    make(map[string][]string),
		Builtin:       []string{"cs"},
		PathOverrides: make(map[string]string),
	}
}

// WithAssembly appends an editor assembly.
func (p *FakeProvider) WithAssembly(a projgen.Assembly) *FakeProvider {
	p.Editor = append(p.Editor, a)
	return p
}

// WithPlayerAssembly appends a player assembly.
func (p *FakeProvider) WithPlayerAssembly(a projgen.Assembly) *FakeProvider {
	p.Player = append(p.Player, a)
	return p
}

// WithAssets appends known asset paths.
func (p *FakeProvider) WithAssets(paths ...string) *FakeProvider {
	p.Assets = append(p.Assets, paths...)
	return p
}

// WithPackage registers a package under its asset path.
func (p *FakeProvider) WithPackage(info projgen.PackageInfo) *FakeProvider {
	p.Packages[strings.ToLower(info.AssetPath)] = info
	return p
}

// WithResponseFile registers the parse result for a response file path.
func (p *FakeProvider) WithResponseFile(filePath string, data projgen.ResponseFileData) *FakeProvider {
	p.Responses[filePath] = data
	return p
}

// WithUserExtensions sets the user extension list.
func (p *FakeProvider) WithUserExtensions(exts ...string) *FakeProvider {
	p.User = exts
	return p
}

// MapPath forces AssemblyNameFromPath(assetPath) to return name.
func (p *FakeProvider) MapPath(assetPath, name string) *FakeProvider {
	p.PathOverrides[assetPath] = name
	return p
}

// PackageLookups returns how many times FindPackage was called.
func (p *FakeProvider) PackageLookups() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.packageLookups
}

// ResponseLookups returns how many times ParseResponseFile was called.
func (p *FakeProvider) ResponseLookups() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.responseLookups
}

func (p *FakeProvider) EditorAssemblies() []projgen.Assembly { return p.Editor }
func (p *FakeProvider) PlayerAssemblies() []projgen.Assembly { return p.Player }
func (p *FakeProvider) UserExtensions() []string              { return p.User }
func (p *FakeProvider) RootNamespace() string                 { return p.Namespace }

// AllAssetPaths returns the registered assets plus every assembly source
// file, sorted.
func (p *FakeProvider) AllAssetPaths() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, a := range p.Assets {
		add(a)
	}
	for _, group := range [][]projgen.Assembly{p.Editor, p.Player} {
		for _, asm := range group {
			for _, src := range asm.SourceFiles {
				add(src)
			}
		}
	}
	sort.Strings(out)
	return out
}

// AssemblyNameFromPath returns an override when one is registered, then the
// assembly owning the exact source file, then the assembly whose source
// files share the longest directory prefix with assetPath. Editor
// assemblies win over player assemblies.
func (p *FakeProvider) AssemblyNameFromPath(assetPath string) string {
	if name, ok := p.PathOverrides[assetPath]; ok {
		return name
	}
	all := append(append([]projgen.Assembly(nil), p.Editor...), p.Player...)
	for _, asm := range all {
		for _, src := range asm.SourceFiles {
			if src == assetPath {
				return asm.Name + projgen.LibrarySuffix
			}
		}
	}
	best, bestLen := "", -1
	for _, asm := range all {
		for _, src := range asm.SourceFiles {
			dir := path.Dir(src) + "/"
			if strings.HasPrefix(assetPath, dir) && len(dir) > bestLen {
				best, bestLen = asm.Name+projgen.LibrarySuffix, len(dir)
			}
		}
	}
	return best
}

func (p *FakeProvider) FindPackage(root string) (projgen.PackageInfo, bool) {
	p.mu.Lock()
	p.packageLookups++
	p.mu.Unlock()
	info, ok := p.Packages[strings.ToLower(root)]
	return info, ok
}

func (p *FakeProvider) ParseResponseFile(filePath, _ string, _ []string) projgen.ResponseFileData {
	p.mu.Lock()
	p.responseLookups++
	p.mu.Unlock()
	if data, ok := p.Responses[filePath]; ok {
		return data
	}
	return projgen.ResponseFileData{Errors: []string{"response file not found: " + filePath}}
}

func (p *FakeProvider) SystemReferenceDirectories(level string) []string {
	return p.SystemRefs[level]
}

func (p *FakeProvider) BuiltinExtensions() ([]string, error) {
	if p.FailBuiltins {
		return nil, ErrNoBuiltins
	}
	return p.Builtin, nil
}

var _ projgen.MetadataProvider = (*FakeProvider)(nil)
