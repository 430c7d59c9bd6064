package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/projgen/internal/files/filesystem"
	"github.com/vvka-141/projgen/internal/files/scanner"
	"github.com/vvka-141/projgen/pkg/projgen"
)

// Provider serves a loaded manifest. It is immutable after Load and safe
// for concurrent reads.
type Provider struct {
	fs         filesystem.FileSystemProvider
	projectDir string
	logger     projgen.Logger
	manifest   *Manifest

	editor   []projgen.Assembly
	player   []projgen.Assembly
	assets   []string
	packages map[string]projgen.PackageInfo
	owners   map[string]string
	dirs     []dirOwner
}

// dirOwner claims every asset below dir for an assembly.
type dirOwner struct {
	dir      string
	assembly string
}

// Load reads the manifest at manifestPath (relative paths are resolved
// against projectDir) and builds a provider. A missing file yields
// projgen.ErrManifestNotFound.
// Panics if fsProvider or logger is nil.
func Load(fsProvider filesystem.FileSystemProvider, projectDir, manifestPath string, logger projgen.Logger) (*Provider, error) {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	fullPath := ResolvePath(projectDir, manifestPath)
	data, err := fsProvider.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", projgen.ErrManifestNotFound, fullPath)
		}
		return nil, fmt.Errorf("read manifest %s: %w", fullPath, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fullPath, err)
	}
	return New(fsProvider, projectDir, m, logger)
}

// New builds a provider from an already parsed manifest.
func New(fsProvider filesystem.FileSystemProvider, projectDir string, m *Manifest, logger projgen.Logger) (*Provider, error) {
	p := &Provider{
		fs:         fsProvider,
		projectDir: filepath.ToSlash(projectDir),
		logger:     logger,
		manifest:   m,
		packages:   make(map[string]projgen.PackageInfo, len(m.Packages)),
		owners:     make(map[string]string),
	}

	p.editor = buildGraph(m.Assemblies, nil)
	p.player = buildGraph(m.PlayerAssemblies, p.editor)

	for _, pkg := range m.Packages {
		p.packages[strings.ToLower(strings.TrimSuffix(pkg.AssetPath, "/"))] = projgen.PackageInfo{
			Name:         pkg.Name,
			Version:      pkg.Version,
			Source:       pkg.Source,
			AssetPath:    pkg.AssetPath,
			ResolvedPath: pkg.ResolvedPath,
		}
	}

	p.indexOwners(m.Assemblies)
	p.indexOwners(m.PlayerAssemblies)

	if m.Assets != nil {
		p.assets = append([]string(nil), m.Assets...)
	} else {
		scanned, err := scanner.NewScannerWithFS(fsProvider).ScanAssets(projectDir)
		if err != nil {
			return nil, fmt.Errorf("scan assets: %w", err)
		}
		p.assets = scanned
	}
	sort.Strings(p.assets)

	return p, nil
}

// buildGraph converts entries into assemblies whose references point into
// the returned slice, falling back to fallback for unknown names.
func buildGraph(entries []AssemblyEntry, fallback []projgen.Assembly) []projgen.Assembly {
	out := make([]projgen.Assembly, len(entries))
	byName := make(map[string]*projgen.Assembly, len(entries)+len(fallback))
	for i := range fallback {
		byName[fallback[i].Name] = &fallback[i]
	}
	for i, e := range entries {
		out[i] = projgen.Assembly{
			Name:                       e.Name,
			OutputPath:                 e.OutputPath,
			SourceFiles:                e.SourceFiles,
			Defines:                    e.Defines,
			CompiledAssemblyReferences: e.CompiledReferences,
			CompilerOptions: projgen.CompilerOptions{
				AllowUnsafeCode:       e.AllowUnsafe,
				ResponseFiles:         e.ResponseFiles,
				APICompatibilityLevel: e.APICompatibility,
			},
			RootNamespace: e.RootNamespace,
		}
		byName[e.Name] = &out[i]
	}
	for i, e := range entries {
		for _, ref := range e.References {
			if target, ok := byName[ref]; ok {
				out[i].AssemblyReferences = append(out[i].AssemblyReferences, target)
			}
		}
	}
	return out
}

func (p *Provider) indexOwners(entries []AssemblyEntry) {
	seenDir := make(map[string]struct{}, len(p.dirs))
	for _, d := range p.dirs {
		seenDir[d.dir] = struct{}{}
	}
	addDir := func(dir, name string) {
		dir = strings.TrimSuffix(filepath.ToSlash(dir), "/")
		if dir == "" || dir == "." {
			return
		}
		if _, ok := seenDir[dir]; ok {
			return
		}
		seenDir[dir] = struct{}{}
		p.dirs = append(p.dirs, dirOwner{dir: dir, assembly: name})
	}

	for _, e := range entries {
		for _, d := range e.Directories {
			addDir(d, e.Name)
		}
	}
	for _, e := range entries {
		for _, src := range e.SourceFiles {
			src = filepath.ToSlash(src)
			if _, ok := p.owners[src]; !ok {
				p.owners[src] = e.Name
			}
			addDir(path.Dir(src), e.Name)
		}
	}
	sort.SliceStable(p.dirs, func(i, j int) bool {
		return len(p.dirs[i].dir) > len(p.dirs[j].dir)
	})
}

// ResolvePath joins p to projectDir unless p is already absolute.
func ResolvePath(projectDir, p string) string {
	if filepath.IsAbs(p) || path.IsAbs(filepath.ToSlash(p)) {
		return filepath.ToSlash(p)
	}
	return path.Join(filepath.ToSlash(projectDir), filepath.ToSlash(p))
}

// Manifest returns the parsed manifest.
func (p *Provider) Manifest() *Manifest {
	return p.manifest
}

func (p *Provider) EditorAssemblies() []projgen.Assembly {
	return p.editor
}

func (p *Provider) PlayerAssemblies() []projgen.Assembly {
	return p.player
}

func (p *Provider) AllAssetPaths() []string {
	return p.assets
}

// AssemblyNameFromPath returns "<name>.dll" for the assembly owning
// assetPath: the assembly listing it as a source file, otherwise the one
// with the longest directory containing it. Editor assemblies take
// precedence; player-only paths map to their player assembly.
func (p *Provider) AssemblyNameFromPath(assetPath string) string {
	assetPath = filepath.ToSlash(assetPath)
	if name, ok := p.owners[assetPath]; ok {
		return name + projgen.LibrarySuffix
	}
	for _, d := range p.dirs {
		if strings.HasPrefix(assetPath, d.dir+"/") {
			return d.assembly + projgen.LibrarySuffix
		}
	}
	return ""
}

func (p *Provider) FindPackage(root string) (projgen.PackageInfo, bool) {
	info, ok := p.packages[strings.ToLower(strings.TrimSuffix(filepath.ToSlash(root), "/"))]
	return info, ok
}

func (p *Provider) SystemReferenceDirectories(apiCompatibilityLevel string) []string {
	if dirs, ok := p.manifest.SystemReferenceDirs[apiCompatibilityLevel]; ok {
		return dirs
	}
	return p.manifest.SystemReferenceDirs["default"]
}

func (p *Provider) UserExtensions() []string {
	return p.manifest.UserExtensions
}

func (p *Provider) BuiltinExtensions() ([]string, error) {
	if p.manifest.BuiltinExtensions == nil {
		return DefaultBuiltinExtensions, nil
	}
	return p.manifest.BuiltinExtensions, nil
}

func (p *Provider) RootNamespace() string {
	return p.manifest.RootNamespace
}

func (p *Provider) ParseResponseFile(filePath, projectDirectory string, systemReferenceDirectories []string) projgen.ResponseFileData {
	if projectDirectory == "" {
		projectDirectory = p.projectDir
	}
	return ParseResponseFile(p.fs, filePath, projectDirectory, systemReferenceDirectories)
}

var _ projgen.MetadataProvider = (*Provider)(nil)
