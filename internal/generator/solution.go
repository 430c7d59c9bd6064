package generator

import (
	"github.com/vvka-141/projgen/internal/eligibility"
	"github.com/vvka-141/projgen/internal/identity"
	"github.com/vvka-141/projgen/pkg/projgen"
)

const (
	solutionFormatVersion = "11.00"
	solutionVisualStudio  = "2010"
)

var solutionConfigurations = []string{"Debug|Any CPU", "Release|Any CPU"}

// InSolution reports whether asm gets an entry in the solution. Only the
// extension of the first source file is checked.
func InSolution(asm projgen.Assembly) bool {
	if len(asm.SourceFiles) == 0 {
		return false
	}
	return IsSourceLanguage(eligibility.Extension(asm.SourceFiles[0]))
}

// RenderSolution returns the solution text listing the relevant assemblies
// of this pass.
func (g *Generator) RenderSolution() string {
	var relevant []projgen.Assembly
	for _, asm := range g.assemblies {
		if InSolution(asm) {
			relevant = append(relevant, asm)
		}
	}

	w := newTextWriter()
	w.line("")
	w.line("Microsoft Visual Studio Solution File, Format Version " + solutionFormatVersion)
	w.line("# Visual Studio " + solutionVisualStudio)
	for _, asm := range relevant {
		typeID := identity.SolutionIdentifier(g.opts.ProjectName, eligibility.Extension(asm.SourceFiles[0]))
		w.line(`Project("{` + typeID + `}") = "` + asm.Name + `", "` + ProjectFileName(asm.Name) + `", "{` + g.ProjectID(asm.Name) + `}"`)
		w.line("EndProject")
	}
	w.line("Global")
	w.line("\tGlobalSection(SolutionConfigurationPlatforms) = preSolution")
	for _, cfg := range solutionConfigurations {
		w.line("\t\t" + cfg + " = " + cfg)
	}
	w.line("\tEndGlobalSection")
	w.line("\tGlobalSection(ProjectConfigurationPlatforms) = postSolution")
	for _, asm := range relevant {
		id := g.ProjectID(asm.Name)
		for _, cfg := range solutionConfigurations {
			w.line("\t\t{" + id + "}." + cfg + ".ActiveCfg = " + cfg)
			w.line("\t\t{" + id + "}." + cfg + ".Build.0 = " + cfg)
		}
	}
	w.line("\tEndGlobalSection")
	w.line("\tGlobalSection(SolutionProperties) = preSolution")
	w.line("\t\tHideSolutionNode = FALSE")
	w.line("\tEndGlobalSection")
	w.line("EndGlobal")
	return w.String()
}
