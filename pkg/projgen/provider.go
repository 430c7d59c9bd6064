package projgen

// MetadataProvider supplies the compilation graph and the project policy
// settings. It is implemented by the host build pipeline integration.
type MetadataProvider interface {
	// EditorAssemblies returns the primary compilation graph.
	EditorAssemblies() []Assembly

	// PlayerAssemblies returns the secondary graph. Only consulted when
	// FlagPlayerAssemblies is set.
	PlayerAssemblies() []Assembly

	// AllAssetPaths returns every project-relative asset path the host knows of.
	AllAssetPaths() []string

	// AssemblyNameFromPath maps an asset path to the name of the assembly it
	// belongs to, possibly with a library suffix ("Core.dll"). Returns ""
	// when the path belongs to no assembly.
	AssemblyNameFromPath(path string) string

	// FindPackage looks up a package by its root asset path
	// (e.g. "packages/com.acme.tools").
	FindPackage(root string) (PackageInfo, bool)

	// ParseResponseFile parses one compiler response file.
	ParseResponseFile(path, projectDirectory string, systemReferenceDirectories []string) ResponseFileData

	// SystemReferenceDirectories returns the directories searched for
	// framework references at the given API compatibility level.
	SystemReferenceDirectories(apiCompatibilityLevel string) []string

	// UserExtensions returns the additional extensions the project opted into.
	UserExtensions() []string

	// BuiltinExtensions returns the host's built-in extension list.
	BuiltinExtensions() ([]string, error)

	// RootNamespace is the project-wide default root namespace.
	RootNamespace() string
}
