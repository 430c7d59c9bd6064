package projgen

import (
	"fmt"
	"strings"
)

// PackageSource classifies where a package came from.
type PackageSource int

const (
	PackageSourceUnknown PackageSource = iota
	PackageSourceEmbedded
	PackageSourceRegistry
	PackageSourceBuiltIn
	PackageSourceLocal
	PackageSourceGit
	PackageSourceLocalTarball
)

var packageSourceNames = map[PackageSource]string{
	PackageSourceUnknown:      "unknown",
	PackageSourceEmbedded:     "embedded",
	PackageSourceRegistry:     "registry",
	PackageSourceBuiltIn:      "builtin",
	PackageSourceLocal:        "local",
	PackageSourceGit:          "git",
	PackageSourceLocalTarball: "localtarball",
}

func (s PackageSource) String() string {
	if name, ok := packageSourceNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParsePackageSource converts a manifest spelling into a PackageSource.
// Matching is case-insensitive and ignores '-' and '_'.
func ParsePackageSource(s string) (PackageSource, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return PackageSourceUnknown, nil
	}
	for source, name := range packageSourceNames {
		if name == key {
			return source, nil
		}
	}
	return PackageSourceUnknown, fmt.Errorf("unknown package source %q", s)
}

// UnmarshalYAML lets manifests spell sources as strings.
func (s *PackageSource) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParsePackageSource(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// GenerationFlag returns the flag bit that controls inclusion of packages
// with this source.
func (s PackageSource) GenerationFlag() GenerationFlags {
	switch s {
	case PackageSourceEmbedded:
		return FlagEmbedded
	case PackageSourceRegistry:
		return FlagRegistry
	case PackageSourceBuiltIn:
		return FlagBuiltIn
	case PackageSourceLocal:
		return FlagLocal
	case PackageSourceGit:
		return FlagGit
	case PackageSourceLocalTarball:
		return FlagLocalTarBall
	default:
		return FlagUnknown
	}
}
