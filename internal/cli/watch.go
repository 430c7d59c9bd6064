package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/projgen/internal/logging"
	"github.com/vvka-141/projgen/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [project_path]",
	Short: "Regenerate files as assets change",
	Long: `Watch performs a full sync, then keeps running and applies incremental
syncs for batches of filesystem changes. A change to the compilation
manifest reloads it and triggers a full sync. Stop with Ctrl+C.

Examples:
  projgen watch ./game
  projgen watch --debounce 500ms`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var watchDebounce time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before a batch of changes is synced (default from projgen.yaml or 200ms)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	session, err := openProjectSession(projectDirFromArgs(args), logger)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.service.Sync(); err != nil {
		return err
	}
	printReport(os.Stdout, logger, session.service.LastReport(), false)

	debounce := session.cfg.WatchDebounce
	if watchDebounce > 0 {
		debounce = watchDebounce
	}
	w, err := watch.New(session.cfg.ProjectDir, session.service, logger.With("watch"), watch.Options{
		Debounce:         debounce,
		ManifestPath:     session.cfg.ManifestPath,
		OnManifestChange: session.reloadManifest,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}
