package projgen

// Assembly is a named compilation unit as reported by the external build
// pipeline. Assemblies are constructed fresh by the MetadataProvider for
// every sync pass and are never mutated by the generator.
type Assembly struct {
	// Name is the assembly name without the library suffix (e.g. "Core").
	Name string

	// OutputPath is the directory the build pipeline writes the assembly to.
	OutputPath string

	// SourceFiles lists project-relative source paths in compilation order.
	SourceFiles []string

	// Defines are the preprocessor symbols passed to the compiler.
	Defines []string

	// AssemblyReferences are references to other assemblies produced by the
	// same provider. The reference graph is assumed to be acyclic.
	AssemblyReferences []*Assembly

	// CompiledAssemblyReferences are paths to external, precompiled binaries.
	CompiledAssemblyReferences []string

	CompilerOptions CompilerOptions

	// RootNamespace is optional; the provider-wide namespace is used when empty.
	RootNamespace string
}

// CompilerOptions holds the per-assembly compiler switches.
type CompilerOptions struct {
	AllowUnsafeCode       bool
	ResponseFiles         []string
	APICompatibilityLevel string
}

// ResponseFileData is the parsed content of one compiler response file.
type ResponseFileData struct {
	Defines            []string
	FullPathReferences []string
	Unsafe             bool
	OtherArguments     []string

	// Errors collects parse problems. A response file with errors still
	// contributes whatever could be parsed.
	Errors []string
}

// PackageInfo describes the on-disk origin of a package root.
type PackageInfo struct {
	Name    string
	Version string
	Source  PackageSource

	// AssetPath is the logical package root, e.g. "Packages/com.acme.tools".
	AssetPath string

	// ResolvedPath is the physical directory backing AssetPath.
	ResolvedPath string
}
