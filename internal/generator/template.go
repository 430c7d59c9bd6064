package generator

import (
	"strings"

	"github.com/vvka-141/projgen/pkg/projgen"
)

// textWriter accumulates lines terminated by projgen.Newline.
type textWriter struct {
	b strings.Builder
}

func newTextWriter() *textWriter {
	return &textWriter{}
}

func (w *textWriter) line(s string) {
	w.b.WriteString(s)
	w.b.WriteString(projgen.Newline)
}

func (w *textWriter) raw(s string) {
	w.b.WriteString(s)
}

func (w *textWriter) String() string {
	return w.b.String()
}

func boolText(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func writeProjectHeader(w *textWriter, p ProjectProperties, projectDir string) {
	w.line(`<?xml version="1.0" encoding="utf-8"?>`)
	w.line(`<Project ToolsVersion="4.0" DefaultTargets="Build" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">`)
	w.line("  <PropertyGroup>")
	w.line("    <LangVersion>" + escapeXML(p.LanguageVersion) + "</LangVersion>")
	w.line("  </PropertyGroup>")
	w.line("  <PropertyGroup>")
	w.line(`    <Configuration Condition=" '$(Configuration)' == '' ">Debug</Configuration>`)
	w.line(`    <Platform Condition=" '$(Platform)' == '' ">AnyCPU</Platform>`)
	w.line("    <ProductVersion>10.0.20506</ProductVersion>")
	w.line("    <SchemaVersion>2.0</SchemaVersion>")
	w.line("    <RootNamespace>" + escapeXML(p.RootNamespace) + "</RootNamespace>")
	w.line("    <ProjectGuid>{" + p.ProjectID + "}</ProjectGuid>")
	w.line("    <OutputType>Library</OutputType>")
	w.line("    <AppDesignerFolder>Properties</AppDesignerFolder>")
	w.line("    <AssemblyName>" + escapeXML(p.AssemblyName) + "</AssemblyName>")
	w.line("    <TargetFrameworkVersion>v4.7.1</TargetFrameworkVersion>")
	w.line("    <FileAlignment>512</FileAlignment>")
	w.line("    <BaseDirectory>.</BaseDirectory>")
	w.line("  </PropertyGroup>")
	w.line(`  <PropertyGroup Condition=" '$(Configuration)|$(Platform)' == 'Debug|AnyCPU' ">`)
	w.line("    <DebugSymbols>true</DebugSymbols>")
	w.line("    <DebugType>full</DebugType>")
	w.line("    <Optimize>false</Optimize>")
	w.line("    <OutputPath>" + escapeXML(toBackslash(p.OutputPath)) + "</OutputPath>")
	w.line("    <DefineConstants>" + escapeXML(strings.Join(p.Defines, ";")) + "</DefineConstants>")
	w.line("    <ErrorReport>prompt</ErrorReport>")
	w.line("    <WarningLevel>4</WarningLevel>")
	w.line("    <NoWarn>0169</NoWarn>")
	w.line("    <AllowUnsafeBlocks>" + boolText(p.Unsafe) + "</AllowUnsafeBlocks>")
	w.line("  </PropertyGroup>")
	w.line("  <PropertyGroup>")
	w.line("    <NoConfig>true</NoConfig>")
	w.line("    <NoStdLib>true</NoStdLib>")
	w.line("    <AddAdditionalExplicitAssemblyReferences>false</AddAdditionalExplicitAssemblyReferences>")
	w.line("    <ImplicitlyExpandNETStandardFacades>false</ImplicitlyExpandNETStandardFacades>")
	w.line("    <ImplicitlyExpandDesignTimeFacades>false</ImplicitlyExpandDesignTimeFacades>")
	w.line("  </PropertyGroup>")
	w.line("  <PropertyGroup>")
	w.line("    <ProjGenBuildTarget>" + escapeXML(p.Flavor.BuildTarget) + "</ProjGenBuildTarget>")
	w.line("    <ProjGenHostVersion>" + escapeXML(p.Flavor.HostVersion) + "</ProjGenHostVersion>")
	w.line("    <ProjGenVersion>" + escapeXML(p.Flavor.GeneratorVersion) + "</ProjGenVersion>")
	w.line("  </PropertyGroup>")
	if p.RuleSet != "" {
		w.line("  <PropertyGroup>")
		w.line("    <CodeAnalysisRuleSet>" + projectPath(projectDir, p.RuleSet) + "</CodeAnalysisRuleSet>")
		w.line("  </PropertyGroup>")
	}
	if len(p.Analyzers) > 0 {
		w.line("  <ItemGroup>")
		for _, a := range p.Analyzers {
			w.line(`    <Analyzer Include="` + projectPath(projectDir, a) + `" />`)
		}
		w.line("  </ItemGroup>")
	}
}

func writeProjectFooter(w *textWriter) {
	w.line(`  <Import Project="$(MSBuildToolsPath)\Microsoft.CSharp.targets" />`)
	w.line("  <!-- To modify your build process, add your task inside one of the targets below and uncomment it.")
	w.line("       Other similar extension points exist, see Microsoft.Common.targets.")
	w.line(`  <Target Name="BeforeBuild">`)
	w.line("  </Target>")
	w.line(`  <Target Name="AfterBuild">`)
	w.line("  </Target>")
	w.line("  -->")
	w.line("</Project>")
}
