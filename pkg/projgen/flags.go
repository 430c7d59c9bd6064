package projgen

import (
	"fmt"
	"strings"
)

// GenerationFlags selects which package origins take part in generation and
// whether the player compilation graph is included.
type GenerationFlags uint32

const (
	FlagNone             GenerationFlags = 0
	FlagEmbedded         GenerationFlags = 1 << 0
	FlagLocal            GenerationFlags = 1 << 1
	FlagRegistry         GenerationFlags = 1 << 2
	FlagGit              GenerationFlags = 1 << 3
	FlagBuiltIn          GenerationFlags = 1 << 4
	FlagUnknown          GenerationFlags = 1 << 5
	FlagPlayerAssemblies GenerationFlags = 1 << 6
	FlagLocalTarBall     GenerationFlags = 1 << 7
)

// DefaultGenerationFlags is used when no value has been persisted yet.
const DefaultGenerationFlags = FlagLocal | FlagEmbedded

// AllGenerationFlags lists every flag in display order.
var AllGenerationFlags = []GenerationFlags{
	FlagEmbedded,
	FlagLocal,
	FlagRegistry,
	FlagGit,
	FlagBuiltIn,
	FlagLocalTarBall,
	FlagUnknown,
	FlagPlayerAssemblies,
}

var flagNames = map[GenerationFlags]string{
	FlagEmbedded:         "embedded",
	FlagLocal:            "local",
	FlagRegistry:         "registry",
	FlagGit:              "git",
	FlagBuiltIn:          "builtin",
	FlagUnknown:          "unknown",
	FlagPlayerAssemblies: "player",
	FlagLocalTarBall:     "localtarball",
}

// Has reports whether every bit of flag is set.
func (f GenerationFlags) Has(flag GenerationFlags) bool {
	return flag != FlagNone && f&flag == flag
}

// Toggle flips the bits of flag and leaves every other bit untouched.
func (f GenerationFlags) Toggle(flag GenerationFlags) GenerationFlags {
	return f ^ flag
}

// Name returns the CLI spelling of a single flag.
func (f GenerationFlags) Name() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint32(f))
}

// String renders the set as "embedded|local", or "none".
func (f GenerationFlags) String() string {
	if f == FlagNone {
		return "none"
	}
	var parts []string
	for _, flag := range AllGenerationFlags {
		if f.Has(flag) {
			parts = append(parts, flag.Name())
		}
	}
	if rest := f &^ allFlagsMask(); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

func allFlagsMask() GenerationFlags {
	var mask GenerationFlags
	for _, flag := range AllGenerationFlags {
		mask |= flag
	}
	return mask
}

// ParseGenerationFlag resolves a single flag name (case-insensitive).
// "player-assemblies" and "local-tarball" are accepted as aliases.
func ParseGenerationFlag(name string) (GenerationFlags, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	if key == "playerassemblies" {
		return FlagPlayerAssemblies, nil
	}
	for flag, flagName := range flagNames {
		if flagName == key {
			return flag, nil
		}
	}
	return FlagNone, fmt.Errorf("%q: %w", name, ErrUnknownFlag)
}
