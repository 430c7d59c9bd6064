// Package generator renders project and solution file text from a
// compilation graph.
//
// A Generator is built for one sync pass. It knows which assemblies take
// part in the solution so it can split internal references into project
// references and plain binary references.
package generator

import (
	"path"
	"strings"

	"github.com/vvka-141/projgen/internal/eligibility"
	"github.com/vvka-141/projgen/internal/identity"
	"github.com/vvka-141/projgen/pkg/projgen"
)

// Options configures rendering.
type Options struct {
	// ProjectDirectory is the absolute directory generated files are written to.
	ProjectDirectory string

	// ProjectName is the project group name. It seeds identifiers and names
	// the solution file.
	ProjectName string

	// LanguageVersion is used when no response file sets /langversion.
	LanguageVersion string

	Flavor Flavor
}

// Generator renders the files of one pass.
type Generator struct {
	opts       Options
	provider   projgen.MetadataProvider
	filter     *eligibility.Filter
	logger     projgen.Logger
	assemblies []projgen.Assembly
	inSolution map[string]struct{}
}

// New creates a generator for one pass over assemblies, which must already
// be restricted to the eligible set.
// Panics if provider, filter or logger is nil.
func New(opts Options, provider projgen.MetadataProvider, filter *eligibility.Filter, logger projgen.Logger, assemblies []projgen.Assembly) *Generator {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if filter == nil {
		panic("filter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if opts.LanguageVersion == "" {
		opts.LanguageVersion = projgen.DefaultLanguageVersion
	}

	inSolution := make(map[string]struct{}, len(assemblies))
	for _, a := range assemblies {
		if InSolution(a) {
			inSolution[a.Name] = struct{}{}
		}
	}
	return &Generator{
		opts:       opts,
		provider:   provider,
		filter:     filter,
		logger:     logger,
		assemblies: assemblies,
		inSolution: inSolution,
	}
}

// Assemblies returns the assemblies of this pass.
func (g *Generator) Assemblies() []projgen.Assembly {
	return g.assemblies
}

// ProjectPath returns the absolute path of the project file for asm.
func (g *Generator) ProjectPath(asm projgen.Assembly) string {
	return path.Join(toSlash(g.opts.ProjectDirectory), ProjectFileName(asm.Name))
}

// SolutionPath returns the absolute path of the solution file.
func (g *Generator) SolutionPath() string {
	return path.Join(toSlash(g.opts.ProjectDirectory), SolutionFileName(g.opts.ProjectName))
}

// ProjectID returns the identifier of the project generated for name.
func (g *Generator) ProjectID(name string) string {
	return identity.ProjectIdentifier(g.opts.ProjectName, name)
}

// ResponseFiles parses the response files of asm, skipping repeated paths.
// Parse errors are logged and whatever could be parsed is kept.
func (g *Generator) ResponseFiles(asm projgen.Assembly) []projgen.ResponseFileData {
	if len(asm.CompilerOptions.ResponseFiles) == 0 {
		return nil
	}
	refDirs := g.provider.SystemReferenceDirectories(asm.CompilerOptions.APICompatibilityLevel)
	seen := make(map[string]struct{})
	var out []projgen.ResponseFileData
	for _, rsp := range asm.CompilerOptions.ResponseFiles {
		if _, ok := seen[rsp]; ok {
			continue
		}
		seen[rsp] = struct{}{}

		data := g.provider.ParseResponseFile(rsp, g.opts.ProjectDirectory, refDirs)
		for _, e := range data.Errors {
			g.logger.Error("%s: %s", rsp, e)
		}
		out = append(out, data)
	}
	return out
}

// RenderProject returns the project file text for asm.
func (g *Generator) RenderProject(asm projgen.Assembly, additionalParts map[string]string, responses []projgen.ResponseFileData) string {
	props := newProjectProperties(asm, responses, g.ProjectID(asm.Name), g.provider.RootNamespace(), g.opts.LanguageVersion, g.opts.ProjectDirectory, g.opts.Flavor)

	w := newTextWriter()
	writeProjectHeader(w, props, g.opts.ProjectDirectory)

	w.line("  <ItemGroup>")
	var dllSources []string
	for _, src := range asm.SourceFiles {
		if !g.filter.ShouldBePartOfProject(src) {
			continue
		}
		if eligibility.Extension(src) == "dll" {
			dllSources = append(dllSources, src)
			continue
		}
		g.writeCompileItem(w, src)
	}
	if part, ok := additionalParts[asm.Name]; ok {
		w.raw(part)
	}
	for _, ref := range g.references(asm, responses, dllSources) {
		full := joinProject(g.opts.ProjectDirectory, ref)
		w.line(`    <Reference Include="` + escapeXML(fileNameWithoutExtension(full)) + `">`)
		w.line("      <HintPath>" + projectPath(g.opts.ProjectDirectory, full) + "</HintPath>")
		w.line("      <Private>False</Private>")
		w.line("    </Reference>")
	}
	w.line("  </ItemGroup>")

	var projectRefs []*projgen.Assembly
	for _, ref := range asm.AssemblyReferences {
		if ref == nil {
			continue
		}
		if _, ok := g.inSolution[ref.Name]; ok {
			projectRefs = append(projectRefs, ref)
		}
	}
	if len(projectRefs) > 0 {
		w.line("  <ItemGroup>")
		for _, ref := range projectRefs {
			w.line(`    <ProjectReference Include="` + escapeXML(ProjectFileName(ref.Name)) + `">`)
			w.line("      <Project>{" + g.ProjectID(ref.Name) + "}</Project>")
			w.line("      <Name>" + escapeXML(ref.Name) + "</Name>")
			w.line("    </ProjectReference>")
		}
		w.line("  </ItemGroup>")
	}

	writeProjectFooter(w)
	return w.String()
}

// writeCompileItem emits a Compile item for src. Sources living in a
// package outside the project directory carry a Link so they appear under
// the package's logical tree.
func (g *Generator) writeCompileItem(w *textWriter, src string) {
	full, link := g.physicalPath(src)
	include := projectPath(g.opts.ProjectDirectory, full)
	if link == "" {
		w.line(`    <Compile Include="` + include + `" />`)
		return
	}
	w.line(`    <Compile Include="` + include + `">`)
	w.line("      <Link>" + escapeXML(toBackslash(link)) + "</Link>")
	w.line("    </Compile>")
}

// physicalPath maps an asset path to its location on disk. The returned
// link is non-empty when the file belongs to a package resolved outside the
// project directory.
func (g *Generator) physicalPath(assetPath string) (string, string) {
	info, ok := g.filter.FindPackage(assetPath)
	if !ok || info.ResolvedPath == "" {
		return joinProject(g.opts.ProjectDirectory, assetPath), ""
	}
	root, _ := eligibility.PackageRoot(assetPath)
	rest := strings.TrimPrefix(toSlash(assetPath)[len(root):], "/")
	full := joinProject(g.opts.ProjectDirectory, path.Join(toSlash(info.ResolvedPath), rest))
	if _, inside := relativeTo(g.opts.ProjectDirectory, full); inside {
		return full, ""
	}
	return full, rest
}

// references collects the binary references of asm, keeping the first
// reference for each file base name.
func (g *Generator) references(asm projgen.Assembly, responses []projgen.ResponseFileData, dllSources []string) []string {
	var candidates []string
	candidates = append(candidates, asm.CompiledAssemblyReferences...)
	for _, rsp := range responses {
		candidates = append(candidates, rsp.FullPathReferences...)
	}
	candidates = append(candidates, dllSources...)
	for _, ref := range asm.AssemblyReferences {
		if ref == nil {
			continue
		}
		if _, ok := g.inSolution[ref.Name]; !ok {
			candidates = append(candidates, path.Join(toSlash(ref.OutputPath), ref.Name+projgen.LibrarySuffix))
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		base := path.Base(toSlash(c))
		if _, dup := seen[base]; dup {
			continue
		}
		seen[base] = struct{}{}
		out = append(out, c)
	}
	return out
}
