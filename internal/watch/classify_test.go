package watch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	root := filepath.FromSlash("/work/game")
	manifest := filepath.Join(root, "Library", "compilation.yaml")
	abs := func(rel string) string { return filepath.Join(root, filepath.FromSlash(rel)) }

	tests := []struct {
		name           string
		changes        []Change
		wantAffected   []string
		wantReimported []string
		wantManifest   bool
	}{
		{
			name:           "create is affected and reimported",
			changes:        []Change{{Path: abs("Assets/a.cs"), Op: OpCreate}},
			wantAffected:   []string{"Assets/a.cs"},
			wantReimported: []string{"Assets/a.cs"},
		},
		{
			name:           "write is reimported only",
			changes:        []Change{{Path: abs("Assets/lib.dll"), Op: OpWrite}},
			wantReimported: []string{"Assets/lib.dll"},
		},
		{
			name: "remove and rename are affected",
			changes: []Change{
				{Path: abs("Assets/b.cs"), Op: OpRemove},
				{Path: abs("Assets/c.cs"), Op: OpRename},
			},
			wantAffected: []string{"Assets/b.cs", "Assets/c.cs"},
		},
		{
			name: "duplicates collapse",
			changes: []Change{
				{Path: abs("Assets/a.cs"), Op: OpWrite},
				{Path: abs("Assets/a.cs"), Op: OpWrite},
			},
			wantReimported: []string{"Assets/a.cs"},
		},
		{
			name: "ignored directories and generated files are dropped",
			changes: []Change{
				{Path: abs("Library/ScriptAssemblies/x.dll"), Op: OpWrite},
				{Path: abs("Temp/t.cs"), Op: OpCreate},
				{Path: abs(".git/index"), Op: OpWrite},
				{Path: abs("Core.csproj"), Op: OpWrite},
				{Path: abs("game.sln"), Op: OpWrite},
			},
		},
		{
			name:    "paths outside root are dropped",
			changes: []Change{{Path: filepath.FromSlash("/elsewhere/a.cs"), Op: OpCreate}},
		},
		{
			name: "manifest change is flagged",
			changes: []Change{
				{Path: manifest, Op: OpWrite},
				{Path: abs("Assets/a.cs"), Op: OpWrite},
			},
			wantReimported: []string{"Assets/a.cs"},
			wantManifest:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(root, manifest, tt.changes)
			assert.Equal(t, tt.wantAffected, got.Affected)
			assert.Equal(t, tt.wantReimported, got.Reimported)
			assert.Equal(t, tt.wantManifest, got.ManifestChanged)
		})
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "write", OpWrite.String())
	assert.Equal(t, "remove", OpRemove.String())
	assert.Equal(t, "rename", OpRename.String())
	assert.Equal(t, "unknown", Op(99).String())
}
