package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/projgen/internal/files/filesystem"
	"github.com/vvka-141/projgen/internal/generator"
	"github.com/vvka-141/projgen/internal/hooks"
	"github.com/vvka-141/projgen/internal/logging"
	"github.com/vvka-141/projgen/internal/settings"
	testhelpers "github.com/vvka-141/projgen/internal/testing"
	"github.com/vvka-141/projgen/pkg/projgen"
)

const projectDir = "/work/game"

type fixture struct {
	provider *testhelpers.FakeProvider
	fs       *filesystem.MemoryFileSystem
	store    *settings.Store
	svc      *ProjectGenerationService
}

func newFixture(t *testing.T, processors ...projgen.PostProcessor) *fixture {
	t.Helper()
	util := projgen.Assembly{Name: "Util", OutputPath: "Temp/Bin/Debug/", SourceFiles: []string{"Assets/Util/u.cs"}}
	core := projgen.Assembly{
		Name:                       "Core",
		OutputPath:                 "Temp/Bin/Debug/",
		SourceFiles:                []string{"Assets/Core/a.cs"},
		AssemblyReferences:         []*projgen.Assembly{&util},
		CompiledAssemblyReferences: []string{"/opt/lib/lib.dll"},
	}
	provider := testhelpers.NewFakeProvider().
		WithUserExtensions("txt").
		WithAssembly(core).
		WithAssembly(util).
		WithAssets("Assets/Core/notes.txt", "Assets/image.png")

	f := &fixture{
		provider: provider,
		fs:       filesystem.NewMemoryFileSystem(projectDir),
		store:    settings.NewStore(settings.NewMemoryKVStore()),
	}
	opts := generator.Options{ProjectDirectory: projectDir, ProjectName: "Game"}
	f.svc = NewProjectGenerationService(opts, provider, f.store, f.fs, hooks.NewRegistry(processors...), logging.NewNullLogger())
	return f
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	content, err := f.fs.ReadFile(projectDir + "/" + name)
	require.NoError(t, err)
	return string(content)
}

func (f *fixture) exists(name string) bool {
	_, err := f.fs.ReadFile(projectDir + "/" + name)
	return err == nil
}

func TestSync_WritesSolutionAndProjects(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Sync())

	assert.Equal(t, 3, f.fs.WriteCount())
	assert.Contains(t, f.read(t, "Game.sln"), `"Core", "Core.csproj"`)
	assert.Contains(t, f.read(t, "Core.csproj"), `<None Include="Assets\Core\notes.txt" />`)
	assert.Contains(t, f.read(t, "Util.csproj"), "<AssemblyName>Util</AssemblyName>")

	report := f.svc.LastReport()
	assert.ElementsMatch(t, []string{projectDir + "/Game.sln", projectDir + "/Core.csproj", projectDir + "/Util.csproj"}, report.Written())
	assert.Empty(t, report.Unchanged())
}

func TestSync_Idempotent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Sync())
	first := map[string]string{}
	for _, name := range []string{"Game.sln", "Core.csproj", "Util.csproj"} {
		first[name] = f.read(t, name)
	}
	writes := f.fs.WriteCount()

	require.NoError(t, f.svc.Sync())

	assert.Equal(t, writes, f.fs.WriteCount(), "second Sync must not write")
	for name, content := range first {
		assert.Equal(t, content, f.read(t, name))
	}
	assert.Empty(t, f.svc.LastReport().Written())
	assert.Len(t, f.svc.LastReport().Unchanged(), 3)
}

func TestSyncIfNeeded_NothingRelevant(t *testing.T) {
	f := newFixture(t)

	regenerated, err := f.svc.SyncIfNeeded(
		[]string{"Assets/image.png", "Docs/readme.md"},
		[]string{"Assets/image.png", "Assets/Core/notes.txt"},
	)

	require.NoError(t, err)
	assert.False(t, regenerated)
	assert.Equal(t, 0, f.fs.WriteCount())
	assert.Empty(t, f.svc.LastReport().Outcomes)
}

func TestSyncIfNeeded_RewritesOnlyImplicatedProjects(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Sync())
	utilBefore := f.read(t, "Util.csproj")

	f.provider.Editor[0].Defines = []string{"NEW_SYMBOL"}
	f.provider.Editor[1].Defines = []string{"IGNORED_UNTIL_UTIL_CHANGES"}

	regenerated, err := f.svc.SyncIfNeeded([]string{"Assets/Core/a.cs"}, nil)

	require.NoError(t, err)
	assert.True(t, regenerated)
	assert.Contains(t, f.read(t, "Core.csproj"), "NEW_SYMBOL")
	assert.Equal(t, utilBefore, f.read(t, "Util.csproj"))

	report := f.svc.LastReport()
	assert.Equal(t, []string{projectDir + "/Core.csproj"}, report.Written())
	assert.Equal(t, []string{projectDir + "/Game.sln"}, report.Unchanged())
}

func TestSyncIfNeeded_ReimportedLibraryTriggers(t *testing.T) {
	tests := []struct {
		name       string
		reimported string
	}{
		{"dll", "Assets/Plugins/Vendor.dll"},
		{"upper-case dll", "Assets/Plugins/Vendor.DLL"},
		{"asmdef", "Assets/Core/Core.asmdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			regenerated, err := f.svc.SyncIfNeeded(nil, []string{tt.reimported})

			require.NoError(t, err)
			assert.True(t, regenerated)
			assert.True(t, f.exists("Game.sln"), "solution is always regenerated")
		})
	}
}

func TestSyncIfNeeded_AsmdefRewritesOwningProject(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SyncIfNeeded(nil, []string{"Assets/Core/Core.asmdef"})

	require.NoError(t, err)
	assert.True(t, f.exists("Core.csproj"))
	assert.False(t, f.exists("Util.csproj"))
}

type recordingProcessor struct {
	projgen.NopPostProcessor
	skip bool
	pre  int
	post int
}

func (p *recordingProcessor) PreGenerate() bool {
	p.pre++
	return p.skip
}

func (p *recordingProcessor) PostGenerate() {
	p.post++
}

func (p *recordingProcessor) OnProjectTextGenerated(_, text string) string {
	return text + "<!-- processed -->\r\n"
}

func TestSync_PreGenerateSkips(t *testing.T) {
	skipper := &recordingProcessor{skip: true}
	other := &recordingProcessor{}
	f := newFixture(t, other, skipper)

	require.NoError(t, f.svc.Sync())

	assert.Equal(t, 0, f.fs.WriteCount())
	assert.Equal(t, 1, skipper.pre)
	assert.Equal(t, 1, other.pre)
	assert.Equal(t, 1, skipper.post, "post-generate pairs with pre-generate")
	assert.Equal(t, 1, other.post)
}

func TestSync_HooksRun(t *testing.T) {
	p := &recordingProcessor{}
	f := newFixture(t, p)

	require.NoError(t, f.svc.Sync())

	assert.Equal(t, 1, p.pre)
	assert.Equal(t, 1, p.post)
	assert.Contains(t, f.read(t, "Core.csproj"), "<!-- processed -->")
	assert.NotContains(t, f.read(t, "Game.sln"), "<!-- processed -->")

	require.NoError(t, f.svc.Sync())
	assert.Equal(t, 3, f.fs.WriteCount(), "processed text compares equal on the next pass")
}

func TestSync_PlayerAssembliesGatedByFlag(t *testing.T) {
	f := newFixture(t)
	f.provider.WithPlayerAssembly(projgen.Assembly{Name: "Core", OutputPath: "Temp/Bin/Player/", SourceFiles: []string{"Assets/Core/a.cs"}, Defines: []string{"PLAYER"}})

	require.NoError(t, f.svc.Sync())
	assert.False(t, f.exists("Core.Player.csproj"))

	_, err := f.store.Toggle(projgen.FlagPlayerAssemblies)
	require.NoError(t, err)
	require.NoError(t, f.svc.Sync())

	assert.NotContains(t, f.read(t, "Core.csproj"), "PLAYER", "editor twin keeps its own defines")
	player := f.read(t, "Core.Player.csproj")
	assert.Contains(t, player, "PLAYER")
	assert.Contains(t, player, "<AssemblyName>Core.Player</AssemblyName>")
	assert.Contains(t, f.read(t, "Game.sln"), `"Core.Player", "Core.Player.csproj"`)
	assert.Contains(t, f.svc.LastReport().Written(), projectDir+"/Core.Player.csproj")
}

func TestSync_PlayerReferencesFollowRename(t *testing.T) {
	f := newFixture(t)
	f.provider.WithPlayerAssembly(projgen.Assembly{Name: "Util", SourceFiles: []string{"Assets/Util/u.cs"}})
	f.provider.WithPlayerAssembly(projgen.Assembly{Name: "Core", SourceFiles: []string{"Assets/Core/a.cs"}})
	f.provider.WithAssembly(projgen.Assembly{Name: "Shared", OutputPath: "Temp/Bin/Debug/", SourceFiles: []string{"Assets/Shared/s.cs"}})
	f.provider.Player[1].AssemblyReferences = []*projgen.Assembly{&f.provider.Player[0], &f.provider.Editor[2]}
	_, err := f.store.Toggle(projgen.FlagPlayerAssemblies)
	require.NoError(t, err)

	require.NoError(t, f.svc.Sync())

	core := f.read(t, "Core.Player.csproj")
	assert.Contains(t, core, `<ProjectReference Include="Util.Player.csproj">`)
	assert.Contains(t, core, `<ProjectReference Include="Shared.csproj">`)
	assert.NotContains(t, core, `<ProjectReference Include="Util.csproj">`)
}

func TestSyncIfNeeded_ImplicatesPlayerTwin(t *testing.T) {
	f := newFixture(t)
	f.provider.WithPlayerAssembly(projgen.Assembly{Name: "Core", SourceFiles: []string{"Assets/Core/a.cs"}})
	f.provider.WithPlayerAssembly(projgen.Assembly{Name: "Mobile", SourceFiles: []string{"Assets/Mobile/m.cs"}})
	_, err := f.store.Toggle(projgen.FlagPlayerAssemblies)
	require.NoError(t, err)

	_, err = f.svc.SyncIfNeeded([]string{"Assets/Core/a.cs", "Assets/Mobile/m.cs"}, nil)
	require.NoError(t, err)

	assert.True(t, f.exists("Core.csproj"))
	assert.True(t, f.exists("Core.Player.csproj"))
	assert.True(t, f.exists("Mobile.Player.csproj"), "player-only sources map to their player project")
	assert.False(t, f.exists("Util.csproj"))
}

func TestSync_EmbeddedPackageExcludedWhenFlagCleared(t *testing.T) {
	f := newFixture(t)
	f.provider.
		WithPackage(projgen.PackageInfo{Name: "com.acme.embedded", AssetPath: "Packages/com.acme.embedded", Source: projgen.PackageSourceEmbedded}).
		WithAssembly(projgen.Assembly{Name: "Embedded", SourceFiles: []string{"Packages/com.acme.embedded/e.cs"}})

	require.NoError(t, f.svc.Sync())
	assert.True(t, f.exists("Embedded.csproj"))

	_, err := f.store.Toggle(projgen.FlagEmbedded)
	require.NoError(t, err)
	require.NoError(t, f.svc.Sync())

	assert.NotContains(t, f.read(t, "Game.sln"), "Embedded")
	assert.NotContains(t, f.svc.LastReport().Written(), projectDir+"/Embedded.csproj")
	assert.NotContains(t, f.svc.LastReport().Unchanged(), projectDir+"/Embedded.csproj")
}

func TestSync_WriteFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.fs.FailWrites(projectDir+"/Core.csproj", errors.New("disk full"))

	err := f.svc.Sync()

	require.Error(t, err)
	assert.ErrorIs(t, err, projgen.ErrWriteFailed)
	assert.True(t, f.exists("Util.csproj"), "other files are still written")
	assert.Equal(t, projgen.ExitWriteFailed, projgen.ExitCodeForError(err))
}

type failingFlags struct{}

func (failingFlags) Flags() (projgen.GenerationFlags, error) {
	return projgen.FlagNone, errors.New("store unavailable")
}

func TestSync_FlagReadFailureUsesDefaults(t *testing.T) {
	f := newFixture(t)
	logger := &testhelpers.RecordingLogger{}
	svc := NewProjectGenerationService(
		generator.Options{ProjectDirectory: projectDir, ProjectName: "Game"},
		f.provider, failingFlags{}, f.fs, nil, logger)

	require.NoError(t, svc.Sync())

	assert.True(t, f.exists("Core.csproj"))
	assert.NotEmpty(t, logger.VerboseMessages())
	assert.Empty(t, logger.ErrorMessages())
}

func TestSync_DryRun(t *testing.T) {
	f := newFixture(t)
	f.svc.SetDryRun(true)

	require.NoError(t, f.svc.Sync())

	assert.Equal(t, 0, f.fs.WriteCount())
	assert.Len(t, f.svc.LastReport().Written(), 3)
}

func TestSetProvider(t *testing.T) {
	f := newFixture(t)
	replacement := testhelpers.NewFakeProvider().
		WithAssembly(projgen.Assembly{Name: "Other", SourceFiles: []string{"Assets/Other/o.cs"}})

	f.svc.SetProvider(replacement)
	require.NoError(t, f.svc.Sync())

	assert.True(t, f.exists("Other.csproj"))
	assert.False(t, f.exists("Core.csproj"))
}

func TestNewProjectGenerationService_NilArgs(t *testing.T) {
	provider := testhelpers.NewFakeProvider()
	store := settings.NewStore(settings.NewMemoryKVStore())
	mfs := filesystem.NewMemoryFileSystem(projectDir)
	logger := logging.NewNullLogger()
	opts := generator.Options{}

	assert.Panics(t, func() { NewProjectGenerationService(opts, nil, store, mfs, nil, logger) })
	assert.Panics(t, func() { NewProjectGenerationService(opts, provider, nil, mfs, nil, logger) })
	assert.Panics(t, func() { NewProjectGenerationService(opts, provider, store, nil, nil, logger) })
	assert.Panics(t, func() { NewProjectGenerationService(opts, provider, store, mfs, nil, nil) })
}
