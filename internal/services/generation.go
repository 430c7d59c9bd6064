package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/vvka-141/projgen/internal/eligibility"
	"github.com/vvka-141/projgen/internal/files/filesystem"
	"github.com/vvka-141/projgen/internal/filesync"
	"github.com/vvka-141/projgen/internal/generator"
	"github.com/vvka-141/projgen/internal/hooks"
	"github.com/vvka-141/projgen/internal/pkgcache"
	"github.com/vvka-141/projgen/pkg/projgen"
)

// FlagSource supplies the active GenerationFlags. settings.Store
// implements it.
type FlagSource interface {
	Flags() (projgen.GenerationFlags, error)
}

// reimportTriggers are extensions whose reimport changes the reference graph.
var reimportTriggers = []string{".dll", ".asmdef"}

// ProjectGenerationService keeps the generated project and solution files
// in step with the compilation graph.
// Thread-Safety: passes are serialized by an internal mutex.
type ProjectGenerationService struct {
	mu           sync.Mutex
	opts         generator.Options
	provider     projgen.MetadataProvider
	flags        FlagSource
	hooks        *hooks.Registry
	synchronizer *filesync.Synchronizer
	logger       projgen.Logger
	lastReport   filesync.Report
}

// NewProjectGenerationService creates the service with all dependencies
// injected. A nil registry means no post-processors.
// Panics if provider, flags, fsProvider or logger is nil.
func NewProjectGenerationService(
	opts generator.Options,
	provider projgen.MetadataProvider,
	flags FlagSource,
	fsProvider filesystem.FileSystemProvider,
	registry *hooks.Registry,
	logger projgen.Logger,
) *ProjectGenerationService {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if flags == nil {
		panic("flags cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if registry == nil {
		registry = hooks.NewRegistry()
	}

	return &ProjectGenerationService{
		opts:         opts,
		provider:     provider,
		flags:        flags,
		hooks:        registry,
		synchronizer: filesync.New(fsProvider, registry, logger),
		logger:       logger,
	}
}

// SetDryRun reports writes without performing them.
func (s *ProjectGenerationService) SetDryRun(dryRun bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synchronizer.SetDryRun(dryRun)
}

// SetProvider swaps the metadata provider used by subsequent passes.
func (s *ProjectGenerationService) SetProvider(provider projgen.MetadataProvider) {
	if provider == nil {
		panic("provider cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = provider
}

// LastReport returns the outcomes of the most recent pass.
func (s *ProjectGenerationService) LastReport() filesync.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filesync.Report{Outcomes: append([]filesync.Outcome(nil), s.lastReport.Outcomes...)}
}

// Sync regenerates the solution and every eligible project. If any
// post-processor's PreGenerate returns true the pass writes nothing.
func (s *ProjectGenerationService) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report filesync.Report
	defer func() { s.lastReport = report }()

	filter, err := s.newFilter()
	if err != nil {
		return err
	}

	if s.hooks.PreGenerate() {
		s.logger.Verbose("Generation skipped by a post-processor")
		s.hooks.PostGenerate()
		return nil
	}

	gen := s.newGenerator(filter)
	s.logger.Verbose("Generating %d project(s)", len(gen.Assemblies()))

	var errs []error
	if err := s.writeSolution(gen, &report); err != nil {
		errs = append(errs, err)
	}
	parts := gen.AdditionalAssetParts()
	for _, asm := range gen.Assemblies() {
		if err := s.writeProject(gen, asm, parts, &report); err != nil {
			errs = append(errs, err)
		}
	}

	s.hooks.PostGenerate()
	return errors.Join(errs...)
}

// SyncIfNeeded regenerates only what affected and reimported implicate.
// It returns false without touching the disk when nothing relevant changed.
func (s *ProjectGenerationService) SyncIfNeeded(affected, reimported []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report filesync.Report
	defer func() { s.lastReport = report }()

	filter, err := s.newFilter()
	if err != nil {
		return false, err
	}
	if !needsRegeneration(filter, affected, reimported) {
		s.logger.Verbose("No relevant changes among %d affected and %d reimported path(s)", len(affected), len(reimported))
		return false, nil
	}

	gen := s.newGenerator(filter)

	var errs []error
	if err := s.writeSolution(gen, &report); err != nil {
		errs = append(errs, err)
	}

	implicated := s.implicatedAssemblies(affected, reimported)
	var parts map[string]string
	for _, asm := range gen.Assemblies() {
		if _, ok := implicated[asm.Name]; !ok {
			continue
		}
		if parts == nil {
			parts = gen.AdditionalAssetParts()
		}
		if err := s.writeProject(gen, asm, parts, &report); err != nil {
			errs = append(errs, err)
		}
	}

	return true, errors.Join(errs...)
}

// needsRegeneration is true when an affected path is eligible or a
// reimported path changes the reference graph.
func needsRegeneration(filter *eligibility.Filter, affected, reimported []string) bool {
	for _, p := range affected {
		if filter.ShouldBePartOfProject(p) {
			return true
		}
	}
	for _, p := range reimported {
		lower := strings.ToLower(p)
		for _, ext := range reimportTriggers {
			if strings.HasSuffix(lower, ext) {
				return true
			}
		}
	}
	return false
}

func (s *ProjectGenerationService) implicatedAssemblies(affected, reimported []string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, group := range [][]string{affected, reimported} {
		for _, p := range group {
			name := strings.TrimSuffix(s.provider.AssemblyNameFromPath(p), projgen.LibrarySuffix)
			if name != "" {
				names[name] = struct{}{}
				names[name+projgen.PlayerProjectSuffix] = struct{}{}
			}
		}
	}
	return names
}

// newFilter starts a pass: it reads the current flags and creates a fresh
// package cache. A flags read failure falls back to the defaults.
func (s *ProjectGenerationService) newFilter() (*eligibility.Filter, error) {
	flags, err := s.flags.Flags()
	if err != nil {
		s.logger.Verbose("Using default generation flags: %v", err)
		flags = projgen.DefaultGenerationFlags
	}
	cache, err := pkgcache.New(s.provider.FindPackage)
	if err != nil {
		return nil, err
	}
	return eligibility.New(s.provider, flags, cache, s.logger), nil
}

func (s *ProjectGenerationService) newGenerator(filter *eligibility.Filter) *generator.Generator {
	return generator.New(s.opts, s.provider, filter, s.logger, eligibleAssemblies(s.provider, filter))
}

// eligibleAssemblies returns the editor assemblies, plus the player
// assemblies when enabled, that own at least one eligible source file.
// Player assemblies are renamed with projgen.PlayerProjectSuffix so they
// sit next to their editor twins.
func eligibleAssemblies(provider projgen.MetadataProvider, filter *eligibility.Filter) []projgen.Assembly {
	candidates := provider.EditorAssemblies()
	if filter.Flags().Has(projgen.FlagPlayerAssemblies) {
		candidates = append(append([]projgen.Assembly(nil), candidates...), playerProjects(provider.PlayerAssemblies())...)
	}

	seen := make(map[string]struct{}, len(candidates))
	var out []projgen.Assembly
	for _, asm := range candidates {
		if asm.Name == "" {
			continue
		}
		if _, dup := seen[asm.Name]; dup {
			continue
		}
		for _, src := range asm.SourceFiles {
			if filter.ShouldBePartOfProject(src) {
				seen[asm.Name] = struct{}{}
				out = append(out, asm)
				break
			}
		}
	}
	return out
}

// playerProjects copies the player graph under suffixed names. References
// into the player graph follow the rename; references that fell back to
// editor assemblies keep pointing at them.
func playerProjects(players []projgen.Assembly) []projgen.Assembly {
	renamed := make(map[string]*projgen.Assembly, len(players))
	out := make([]projgen.Assembly, len(players))
	for i, asm := range players {
		out[i] = asm
		out[i].Name = asm.Name + projgen.PlayerProjectSuffix
		renamed[asm.Name] = &out[i]
	}
	for i, asm := range players {
		refs := make([]*projgen.Assembly, 0, len(asm.AssemblyReferences))
		for _, ref := range asm.AssemblyReferences {
			if ref == nil {
				continue
			}
			if twin, ok := renamed[ref.Name]; ok && isPlayerReference(players, ref) {
				refs = append(refs, twin)
				continue
			}
			refs = append(refs, ref)
		}
		out[i].AssemblyReferences = refs
	}
	return out
}

// isPlayerReference reports whether ref points into players rather than at
// an editor assembly of the same name.
func isPlayerReference(players []projgen.Assembly, ref *projgen.Assembly) bool {
	for i := range players {
		if &players[i] == ref {
			return true
		}
	}
	return false
}

func (s *ProjectGenerationService) writeSolution(gen *generator.Generator, report *filesync.Report) error {
	outcome, err := s.synchronizer.SyncSolution(gen.SolutionPath(), gen.RenderSolution())
	report.Add(outcome)
	return err
}

func (s *ProjectGenerationService) writeProject(gen *generator.Generator, asm projgen.Assembly, parts map[string]string, report *filesync.Report) error {
	text := gen.RenderProject(asm, parts, gen.ResponseFiles(asm))
	outcome, err := s.synchronizer.SyncProject(gen.ProjectPath(asm), text)
	report.Add(outcome)
	return err
}
