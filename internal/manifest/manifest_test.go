package manifest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/projgen/internal/files/filesystem"
	"github.com/vvka-141/projgen/internal/logging"
	"github.com/vvka-141/projgen/pkg/projgen"
)

const projectDir = "/work/game"

const sampleManifest = `
root_namespace: Game
user_extensions: [json, txt]
system_reference_dirs:
  default: [/opt/ref/4.x]
  standard_2_1: [/opt/ref/netstandard]
packages:
  - name: com.acme.tools
    version: 1.2.0
    source: local
    asset_path: Packages/com.acme.tools
    resolved_path: /src/tools
  - name: com.acme.embedded
    source: Embedded
    asset_path: Packages/com.acme.embedded
assemblies:
  - name: Core
    output_path: Temp/Bin/Debug/
    source_files: [Assets/Core/a.cs, Assets/Core/Sub/b.cs]
    defines: [UNITY_EDITOR]
    references: [Util]
    compiled_references: [/opt/lib/lib.dll]
    response_files: [Assets/csc.rsp]
    api_compatibility: standard_2_1
    root_namespace: Acme.Core
    directories: [Assets/Core]
  - name: Util
    output_path: Temp/Bin/Debug/
    source_files: [Assets/Util/u.cs]
    allow_unsafe: true
player_assemblies:
  - name: Core
    source_files: [Assets/Core/a.cs]
    defines: [PLAYER]
    references: [Util]
  - name: Mobile
    source_files: [Assets/Mobile/m.cs]
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "Game", m.RootNamespace)
	require.Len(t, m.Packages, 2)
	assert.Equal(t, projgen.PackageSourceLocal, m.Packages[0].Source)
	assert.Equal(t, projgen.PackageSourceEmbedded, m.Packages[1].Source)
	require.Len(t, m.Assemblies, 2)
	assert.Equal(t, []string{"Util"}, m.Assemblies[0].References)
	assert.True(t, m.Assemblies[1].AllowUnsafe)
	assert.Nil(t, m.Assets)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"malformed yaml", "assemblies: [", ""},
		{"unknown package source", "packages:\n  - {name: a, source: ftp, asset_path: Packages/a}\n", "ftp"},
		{"missing assembly name", "assemblies:\n  - source_files: [a.cs]\n", "Name"},
		{"duplicate assembly", "assemblies:\n  - {name: A}\n  - {name: A}\n", "unique"},
		{"unknown reference", "assemblies:\n  - {name: A, references: [Missing]}\n", `unknown assembly "Missing"`},
		{"unknown player reference", "player_assemblies:\n  - {name: P, references: [Nope]}\n", `unknown assembly "Nope"`},
		{"package without asset path", "packages:\n  - {name: a}\n", "AssetPath"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, projgen.ErrInvalidManifest), "got %v", err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParse_PlayerMayReferenceEditor(t *testing.T) {
	_, err := Parse([]byte("assemblies:\n  - {name: Util}\nplayer_assemblies:\n  - {name: P, references: [Util]}\n"))
	assert.NoError(t, err)
}

func loadSample(t *testing.T, mfs *filesystem.MemoryFileSystem) *Provider {
	t.Helper()
	mfs.AddFile(projgen.DefaultManifestPath, sampleManifest)
	p, err := Load(mfs, projectDir, projgen.DefaultManifestPath, logging.NewNullLogger())
	require.NoError(t, err)
	return p
}

func TestLoad_NotFound(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem(projectDir)

	_, err := Load(mfs, projectDir, projgen.DefaultManifestPath, logging.NewNullLogger())

	require.Error(t, err)
	assert.True(t, errors.Is(err, projgen.ErrManifestNotFound))
	assert.Equal(t, projgen.ExitManifestMissing, projgen.ExitCodeForError(err))
}

func TestLoad_Invalid(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem(projectDir)
	mfs.AddFile("custom/graph.yaml", "assemblies:\n  - {name: A, references: [B]}\n")

	_, err := Load(mfs, projectDir, "custom/graph.yaml", logging.NewNullLogger())

	require.Error(t, err)
	assert.Equal(t, projgen.ExitManifestInvalid, projgen.ExitCodeForError(err))
	assert.Contains(t, err.Error(), "/work/game/custom/graph.yaml")
}

func TestProvider_Assemblies(t *testing.T) {
	p := loadSample(t, filesystem.NewMemoryFileSystem(projectDir))

	editor := p.EditorAssemblies()
	require.Len(t, editor, 2)
	core := editor[0]
	assert.Equal(t, "Core", core.Name)
	assert.Equal(t, "Acme.Core", core.RootNamespace)
	assert.Equal(t, []string{"/opt/lib/lib.dll"}, core.CompiledAssemblyReferences)
	assert.Equal(t, "standard_2_1", core.CompilerOptions.APICompatibilityLevel)
	require.Len(t, core.AssemblyReferences, 1)
	assert.Equal(t, "Util", core.AssemblyReferences[0].Name)
	assert.True(t, core.AssemblyReferences[0].CompilerOptions.AllowUnsafeCode)

	player := p.PlayerAssemblies()
	require.Len(t, player, 2)
	assert.Equal(t, "Core", player[0].Name)
	assert.Equal(t, []string{"PLAYER"}, player[0].Defines)
	require.Len(t, player[0].AssemblyReferences, 1)
	assert.Equal(t, "Util", player[0].AssemblyReferences[0].Name)

	assert.Equal(t, "Game", p.RootNamespace())
	assert.Equal(t, []string{"json", "txt"}, p.UserExtensions())
	builtins, err := p.BuiltinExtensions()
	require.NoError(t, err)
	assert.Equal(t, DefaultBuiltinExtensions, builtins)
}

func TestProvider_AssemblyNameFromPath(t *testing.T) {
	p := loadSample(t, filesystem.NewMemoryFileSystem(projectDir))

	tests := []struct {
		path string
		want string
	}{
		{"Assets/Core/a.cs", "Core.dll"},
		{"Assets/Core/Sub/b.cs", "Core.dll"},
		{"Assets/Core/readme.txt", "Core.dll"},
		{"Assets/Core/Sub/Deep/data.json", "Core.dll"},
		{"Assets/Util/u.cs", "Util.dll"},
		{"Assets/Util/notes.txt", "Util.dll"},
		{"Assets/Mobile/m.cs", "Mobile.dll"},
		{"Assets/Mobile/icons.json", "Mobile.dll"},
		{"Assets/Other/x.txt", ""},
		{"Assets/Corex/y.txt", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, p.AssemblyNameFromPath(tt.path))
		})
	}
}

func TestProvider_FindPackage(t *testing.T) {
	p := loadSample(t, filesystem.NewMemoryFileSystem(projectDir))

	info, ok := p.FindPackage("packages/COM.ACME.TOOLS")
	require.True(t, ok)
	assert.Equal(t, "com.acme.tools", info.Name)
	assert.Equal(t, "/src/tools", info.ResolvedPath)
	assert.Equal(t, projgen.PackageSourceLocal, info.Source)

	_, ok = p.FindPackage("Packages/com.unknown")
	assert.False(t, ok)
}

func TestProvider_SystemReferenceDirectories(t *testing.T) {
	p := loadSample(t, filesystem.NewMemoryFileSystem(projectDir))

	assert.Equal(t, []string{"/opt/ref/netstandard"}, p.SystemReferenceDirectories("standard_2_1"))
	assert.Equal(t, []string{"/opt/ref/4.x"}, p.SystemReferenceDirectories("unlisted"))
}

func TestProvider_ScansAssetsWhenNotListed(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem(projectDir)
	mfs.AddFile("Assets/Core/a.cs", "class A {}")
	mfs.AddFile("Assets/readme.txt", "hi")
	mfs.AddFile("Game.sln", "")
	mfs.AddFile("Temp/Bin/Debug/Core.dll", "")

	p := loadSample(t, mfs)

	assets := p.AllAssetPaths()
	assert.Contains(t, assets, "Assets/Core/a.cs")
	assert.Contains(t, assets, "Assets/readme.txt")
	for _, a := range assets {
		assert.False(t, strings.HasPrefix(a, "Library/"), a)
		assert.False(t, strings.HasPrefix(a, "Temp/"), a)
		assert.NotEqual(t, "Game.sln", a)
	}
}

func TestProvider_ListedAssets(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem(projectDir)
	mfs.AddFile("Assets/ignored.txt", "")
	mfs.AddFile(projgen.DefaultManifestPath, "assets: [Assets/b.txt, Assets/a.txt]\n")

	p, err := Load(mfs, projectDir, projgen.DefaultManifestPath, logging.NewNullLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"Assets/a.txt", "Assets/b.txt"}, p.AllAssetPaths())
}

func TestProvider_ParseResponseFile(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem(projectDir)
	mfs.AddFile("Assets/csc.rsp", "-define:FOO;BAR\n-unsafe\n")
	p := loadSample(t, mfs)

	data := p.ParseResponseFile("Assets/csc.rsp", "", nil)

	assert.Equal(t, []string{"FOO", "BAR"}, data.Defines)
	assert.True(t, data.Unsafe)
	assert.Empty(t, data.Errors)
}
