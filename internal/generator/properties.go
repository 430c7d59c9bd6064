package generator

import (
	"strings"

	"github.com/vvka-141/projgen/pkg/projgen"
)

// baseDefines lead every DefineConstants list.
var baseDefines = []string{"DEBUG", "TRACE"}

// Flavor carries informational tags written into every project header.
type Flavor struct {
	BuildTarget      string
	HostVersion      string
	GeneratorVersion string
}

// ProjectProperties is the header data of one rendered project.
type ProjectProperties struct {
	ProjectID       string
	LanguageVersion string
	AssemblyName    string
	RootNamespace   string
	OutputPath      string
	Defines         []string
	Unsafe          bool
	Analyzers       []string
	RuleSet         string
	Flavor          Flavor
}

// argument prefixes recognized among response-file other arguments
var (
	langVersionPrefixes = []string{"/langversion:", "-langversion:"}
	analyzerPrefixes    = []string{"/analyzer:", "-analyzer:", "-a:", "/a:"}
	ruleSetPrefixes     = []string{"/ruleset:", "-ruleset:"}
)

// newProjectProperties merges assembly settings with parsed response files.
func newProjectProperties(asm projgen.Assembly, responses []projgen.ResponseFileData, projectID, defaultNamespace, defaultLangVersion, projectDir string, flavor Flavor) ProjectProperties {
	props := ProjectProperties{
		ProjectID:       projectID,
		LanguageVersion: defaultLangVersion,
		AssemblyName:    asm.Name,
		RootNamespace:   asm.RootNamespace,
		OutputPath:      asm.OutputPath,
		Unsafe:          asm.CompilerOptions.AllowUnsafeCode,
		Flavor:          flavor,
	}
	if props.RootNamespace == "" {
		props.RootNamespace = defaultNamespace
	}
	if props.LanguageVersion == "" {
		props.LanguageVersion = projgen.DefaultLanguageVersion
	}

	defines := newOrderedSet()
	defines.addAll(baseDefines)
	defines.addAll(asm.Defines)

	langVersionSet := false
	analyzers := newOrderedSet()
	for _, rsp := range responses {
		defines.addAll(rsp.Defines)
		props.Unsafe = props.Unsafe || rsp.Unsafe

		for _, arg := range rsp.OtherArguments {
			if v, ok := valueAfterPrefix(arg, langVersionPrefixes); ok {
				if !langVersionSet && v != "" {
					props.LanguageVersion = v
					langVersionSet = true
				}
				continue
			}
			if v, ok := valueAfterPrefix(arg, ruleSetPrefixes); ok {
				if v != "" {
					props.RuleSet = joinProject(projectDir, v)
				}
				continue
			}
			if v, ok := valueAfterPrefix(arg, analyzerPrefixes); ok {
				for _, a := range splitList(v) {
					analyzers.add(joinProject(projectDir, a))
				}
			}
		}
	}

	props.Defines = defines.items
	props.Analyzers = analyzers.items
	return props
}

// valueAfterPrefix returns the unquoted value of arg when it starts with any
// of prefixes (case-insensitive).
func valueAfterPrefix(arg string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if len(arg) >= len(p) && strings.EqualFold(arg[:len(p)], p) {
			return strings.Trim(strings.TrimSpace(arg[len(p):]), `"'`), true
		}
	}
	return "", false
}

func splitList(v string) []string {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ';' || r == ',' })
	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(strings.TrimSpace(f), `"'`); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// orderedSet keeps the first occurrence of each string.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) bool {
	if v == "" {
		return false
	}
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet) addAll(vs []string) {
	for _, v := range vs {
		s.add(v)
	}
}
