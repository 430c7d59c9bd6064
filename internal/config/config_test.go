package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/projgen/pkg/projgen"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvProjectName, EnvManifest, EnvSettingsDir, EnvLangVersion} {
		t.Setenv(key, "")
	}
}

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `project_name: Game
manifest: build/graph.yaml
settings_dir: .projgen
lang_version: "9.0"
flavor:
  build_target: StandaloneLinux64
  host_version: "2022.3"
watch:
  debounce: 500ms
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Game", cfg.ProjectName)
	assert.Equal(t, "build/graph.yaml", cfg.Manifest)
	assert.Equal(t, ".projgen", cfg.SettingsDir)
	assert.Equal(t, "9.0", cfg.LangVersion)
	assert.Equal(t, "StandaloneLinux64", cfg.Flavor.BuildTarget)
	assert.Equal(t, "2022.3", cfg.Flavor.HostVersion)
	assert.Equal(t, "500ms", cfg.Watch.Debounce)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.True(t, errors.Is(err, projgen.ErrInvalidConfig))
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(""), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{}, *cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProjectConfig
		wantErr bool
	}{
		{"empty", ProjectConfig{}, false},
		{"good debounce", ProjectConfig{Watch: WatchConfig{Debounce: "1s"}}, false},
		{"bad debounce", ProjectConfig{Watch: WatchConfig{Debounce: "soon"}}, true},
		{"negative debounce", ProjectConfig{Watch: WatchConfig{Debounce: "-1s"}}, true},
		{"lang version with space", ProjectConfig{LangVersion: "9 0"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, projgen.ErrInvalidConfig), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := ProjectConfig{ProjectName: "FromFile", Manifest: "file.yaml"}
	env := map[string]string{
		EnvProjectName: "FromEnv",
		EnvLangVersion: "preview",
		EnvSettingsDir: "",
	}

	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "FromEnv", cfg.ProjectName)
	assert.Equal(t, "file.yaml", cfg.Manifest)
	assert.Equal(t, "", cfg.SettingsDir)
	assert.Equal(t, "preview", cfg.LangVersion)
}

func TestResolve_Defaults(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "MyGame")
	require.NoError(t, os.MkdirAll(dir, 0755))

	eff, err := Resolve(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, eff.ProjectDir)
	assert.Equal(t, "MyGame", eff.ProjectName)
	assert.Equal(t, filepath.Join(dir, "Library", "compilation.yaml"), eff.ManifestPath)
	assert.Equal(t, filepath.Join(dir, "Library", "projgen"), eff.SettingsDir)
	assert.Equal(t, projgen.DefaultLanguageVersion, eff.LangVersion)
	assert.Equal(t, projgen.DefaultWatchDebounce, eff.WatchDebounce)
}

func TestResolve_FileEnvAndDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("project_name: FromFile\nmanifest: /abs/graph.yaml\nwatch:\n  debounce: 1s\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PROJGEN_LANG_VERSION=10.0\n"), 0644))
	t.Setenv(EnvProjectName, "FromEnv")
	require.NoError(t, os.Unsetenv(EnvLangVersion))

	eff, err := Resolve(dir)
	require.NoError(t, err)

	assert.Equal(t, "FromEnv", eff.ProjectName)
	assert.Equal(t, "/abs/graph.yaml", eff.ManifestPath)
	assert.Equal(t, time.Second, eff.WatchDebounce)
	assert.Equal(t, "10.0", eff.LangVersion)
}

func TestResolve_InvalidConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("watch:\n  debounce: never\n"), 0644))

	_, err := Resolve(dir)
	require.Error(t, err)
	assert.Equal(t, projgen.ExitConfigError, projgen.ExitCodeForError(err))
}
