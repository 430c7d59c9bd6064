// Package manifest implements projgen.MetadataProvider over a YAML
// compilation manifest written by the external build pipeline.
package manifest

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/projgen/pkg/projgen"
)

// DefaultBuiltinExtensions apply when the manifest does not list any.
var DefaultBuiltinExtensions = []string{
	"cs", "uxml", "uss", "shader", "compute", "cginc", "hlsl", "glslinc", "template", "raytrace",
}

// Manifest is the on-disk compilation graph.
type Manifest struct {
	RootNamespace       string              `yaml:"root_namespace"`
	BuiltinExtensions   []string            `yaml:"builtin_extensions"`
	UserExtensions      []string            `yaml:"user_extensions"`
	SystemReferenceDirs map[string][]string `yaml:"system_reference_dirs"`
	Packages            []PackageEntry      `yaml:"packages" validate:"unique=AssetPath,dive"`

	// Assets lists every known asset path. When nil the project directory
	// is scanned instead.
	Assets []string `yaml:"assets" validate:"dive,required"`

	Assemblies       []AssemblyEntry `yaml:"assemblies" validate:"unique=Name,dive"`
	PlayerAssemblies []AssemblyEntry `yaml:"player_assemblies" validate:"unique=Name,dive"`
}

// PackageEntry describes one package root.
type PackageEntry struct {
	Name         string                `yaml:"name" validate:"required"`
	Version      string                `yaml:"version"`
	Source       projgen.PackageSource `yaml:"source"`
	AssetPath    string                `yaml:"asset_path" validate:"required"`
	ResolvedPath string                `yaml:"resolved_path"`
}

// AssemblyEntry describes one compilation unit. References name other
// assemblies of the same graph.
type AssemblyEntry struct {
	Name               string   `yaml:"name" validate:"required"`
	OutputPath         string   `yaml:"output_path"`
	SourceFiles        []string `yaml:"source_files" validate:"dive,required"`
	Defines            []string `yaml:"defines"`
	References         []string `yaml:"references" validate:"unique,dive,required"`
	CompiledReferences []string `yaml:"compiled_references" validate:"dive,required"`
	AllowUnsafe        bool     `yaml:"allow_unsafe"`
	ResponseFiles      []string `yaml:"response_files" validate:"unique,dive,required"`
	APICompatibility   string   `yaml:"api_compatibility"`
	RootNamespace      string   `yaml:"root_namespace"`

	// Directories claim asset paths for this assembly in addition to the
	// directories of its source files.
	Directories []string `yaml:"directories" validate:"dive,required"`
}

var validate = validator.New()

// Parse decodes and validates manifest YAML. Every problem found is
// reported, each wrapped in projgen.ErrInvalidManifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", projgen.ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks field constraints and that every reference resolves.
func (m *Manifest) Validate() error {
	var errs []error

	if err := validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%w: %s failed %q", projgen.ErrInvalidManifest, fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, fmt.Errorf("%w: %v", projgen.ErrInvalidManifest, err))
		}
	}

	editor := namesOf(m.Assemblies)
	errs = append(errs, checkReferences("assemblies", m.Assemblies, editor, nil)...)
	errs = append(errs, checkReferences("player_assemblies", m.PlayerAssemblies, namesOf(m.PlayerAssemblies), editor)...)

	return errors.Join(errs...)
}

func namesOf(entries []AssemblyEntry) map[string]struct{} {
	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Name] = struct{}{}
	}
	return names
}

func checkReferences(group string, entries []AssemblyEntry, own, fallback map[string]struct{}) []error {
	var errs []error
	for _, e := range entries {
		for _, ref := range e.References {
			if _, ok := own[ref]; ok {
				continue
			}
			if _, ok := fallback[ref]; ok {
				continue
			}
			errs = append(errs, fmt.Errorf("%w: %s: %s references unknown assembly %q", projgen.ErrInvalidManifest, group, e.Name, ref))
		}
	}
	return errs
}
