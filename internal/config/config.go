// Package config loads the per-project projgen.yaml and resolves the
// effective settings from the file, a .env file and PROJGEN_* variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/projgen/pkg/projgen"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "projgen.yaml"

// Environment variables that override file values.
const (
	EnvProjectName = "PROJGEN_PROJECT_NAME"
	EnvManifest    = "PROJGEN_MANIFEST"
	EnvSettingsDir = "PROJGEN_SETTINGS_DIR"
	EnvLangVersion = "PROJGEN_LANG_VERSION"
)

type FlavorConfig struct {
	BuildTarget string `yaml:"build_target,omitempty"`
	HostVersion string `yaml:"host_version,omitempty"`
}

type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty" validate:"omitempty,duration"`
}

type ProjectConfig struct {
	ProjectName string       `yaml:"project_name,omitempty" validate:"omitempty,max=255"`
	Manifest    string       `yaml:"manifest,omitempty"`
	SettingsDir string       `yaml:"settings_dir,omitempty"`
	LangVersion string       `yaml:"lang_version,omitempty" validate:"omitempty,max=32,printascii,nospace"`
	Flavor      FlavorConfig `yaml:"flavor,omitempty"`
	Watch       WatchConfig  `yaml:"watch,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})
	_ = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), " \t\r\n")
	})
	return v
}

func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", projgen.ErrInvalidConfig, ConfigFileName, err)
	}
	return &cfg, nil
}

// Validate checks field constraints. Every violation is wrapped in
// projgen.ErrInvalidConfig.
func (c *ProjectConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", projgen.ErrInvalidConfig, err)
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%w: %s: %q failed %s", projgen.ErrInvalidConfig, fe.Namespace(), fe.Value(), fe.Tag()))
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides file values with any PROJGEN_* variable lookup finds.
func (c *ProjectConfig) ApplyEnv(lookup func(string) (string, bool)) {
	override := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	override(EnvProjectName, &c.ProjectName)
	override(EnvManifest, &c.Manifest)
	override(EnvSettingsDir, &c.SettingsDir)
	override(EnvLangVersion, &c.LangVersion)
}

// Effective holds fully resolved settings with absolute paths.
type Effective struct {
	ProjectDir    string
	ProjectName   string
	ManifestPath  string
	SettingsDir   string
	LangVersion   string
	BuildTarget   string
	HostVersion   string
	WatchDebounce time.Duration
}

// Resolve loads .env and projgen.yaml from projectDir, applies environment
// overrides and defaults, and validates the result. A missing projgen.yaml
// is not an error.
func Resolve(projectDir string) (*Effective, error) {
	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolve project directory: %w", err)
	}

	_ = godotenv.Load(filepath.Join(absDir, ".env"))

	cfg, err := Load(absDir)
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
		cfg = &ProjectConfig{}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.effective(absDir), nil
}

func (c *ProjectConfig) effective(absDir string) *Effective {
	eff := &Effective{
		ProjectDir:    absDir,
		ProjectName:   c.ProjectName,
		ManifestPath:  absPath(absDir, c.Manifest, projgen.DefaultManifestPath),
		SettingsDir:   absPath(absDir, c.SettingsDir, projgen.DefaultSettingsDir),
		LangVersion:   c.LangVersion,
		BuildTarget:   c.Flavor.BuildTarget,
		HostVersion:   c.Flavor.HostVersion,
		WatchDebounce: projgen.DefaultWatchDebounce,
	}
	if eff.ProjectName == "" {
		eff.ProjectName = filepath.Base(absDir)
	}
	if eff.LangVersion == "" {
		eff.LangVersion = projgen.DefaultLanguageVersion
	}
	if d, err := time.ParseDuration(c.Watch.Debounce); err == nil && d > 0 {
		eff.WatchDebounce = d
	}
	return eff
}

func absPath(base, p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
