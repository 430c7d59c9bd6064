package cli

import (
	"errors"
	"fmt"

	"github.com/vvka-141/projgen/internal/config"
	"github.com/vvka-141/projgen/internal/files/filesystem"
	"github.com/vvka-141/projgen/internal/generator"
	"github.com/vvka-141/projgen/internal/hooks"
	"github.com/vvka-141/projgen/internal/manifest"
	"github.com/vvka-141/projgen/internal/services"
	"github.com/vvka-141/projgen/internal/settings"
	"github.com/vvka-141/projgen/pkg/projgen"
)

// openStore opens the persisted generation settings of a project.
func openStore(cfg *config.Effective, logger projgen.Logger) (*settings.Store, error) {
	badgerCfg := settings.DefaultBadgerConfig(cfg.SettingsDir)
	badgerCfg.Logger = logger
	kv, err := settings.OpenBadger(badgerCfg)
	if err != nil {
		return nil, fmt.Errorf("open settings at %s: %w", cfg.SettingsDir, err)
	}
	return settings.NewStore(kv), nil
}

// projectSession bundles everything one command needs to generate files.
type projectSession struct {
	cfg     *config.Effective
	fs      filesystem.FileSystemProvider
	store   *settings.Store
	service *services.ProjectGenerationService
	logger  projgen.Logger
}

func openProjectSession(projectDir string, logger projgen.Logger) (*projectSession, error) {
	cfg, err := config.Resolve(projectDir)
	if err != nil {
		return nil, err
	}
	logger.Verbose("Project directory: %s", cfg.ProjectDir)
	logger.Verbose("Manifest: %s", cfg.ManifestPath)

	fsProvider := filesystem.NewOSFileSystem()
	provider, err := manifest.Load(fsProvider, cfg.ProjectDir, cfg.ManifestPath, logger)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := generator.Options{
		ProjectDirectory: cfg.ProjectDir,
		ProjectName:      cfg.ProjectName,
		LanguageVersion:  cfg.LangVersion,
		Flavor: generator.Flavor{
			BuildTarget:      cfg.BuildTarget,
			HostVersion:      cfg.HostVersion,
			GeneratorVersion: currentBuild().Version,
		},
	}
	service := services.NewProjectGenerationService(opts, provider, store, fsProvider, hooks.NewRegistry(), logger)

	return &projectSession{
		cfg:     cfg,
		fs:      fsProvider,
		store:   store,
		service: service,
		logger:  logger,
	}, nil
}

// reloadManifest re-reads the manifest and swaps it into the service.
func (s *projectSession) reloadManifest() error {
	provider, err := manifest.Load(s.fs, s.cfg.ProjectDir, s.cfg.ManifestPath, s.logger)
	if err != nil {
		return err
	}
	s.service.SetProvider(provider)
	return nil
}

func (s *projectSession) Close() error {
	if err := s.store.Close(); err != nil && !errors.Is(err, settings.ErrClosed) {
		return err
	}
	return nil
}
