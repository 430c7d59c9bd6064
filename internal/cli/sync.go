package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/projgen/internal/filesync"
	"github.com/vvka-141/projgen/internal/logging"
	"github.com/vvka-141/projgen/internal/tui"
	"github.com/vvka-141/projgen/pkg/projgen"
)

var syncCmd = &cobra.Command{
	Use:   "sync [project_path]",
	Short: "Generate project and solution files",
	Long: `Sync regenerates the solution and one project per eligible assembly.
Files whose content is unchanged are left untouched.

With --if-needed only the projects implicated by the given asset changes
are rewritten, and nothing is written when none of the changes matter.

Examples:
  # Full regeneration of the current directory
  projgen sync

  # Incremental update after the build pipeline imported assets
  projgen sync ./game --if-needed \
    --affected Assets/Player/Move.cs \
    --reimported Assets/Plugins/Physics.dll

  # Show what would change without writing
  projgen sync --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

type syncFlagValues struct {
	ifNeeded   bool
	affected   []string
	reimported []string
	dryRun     bool
}

var syncFlags syncFlagValues

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncFlags.ifNeeded, "if-needed", false, "Only regenerate projects implicated by --affected/--reimported")
	syncCmd.Flags().StringSliceVar(&syncFlags.affected, "affected", nil, "Asset path that was added, removed or moved (repeatable)")
	syncCmd.Flags().StringSliceVar(&syncFlags.reimported, "reimported", nil, "Asset path that was reimported (repeatable)")
	syncCmd.Flags().BoolVar(&syncFlags.dryRun, "dry-run", false, "Report changes without writing files")
}

func runSync(cmd *cobra.Command, args []string) error {
	if !syncFlags.ifNeeded && (len(syncFlags.affected) > 0 || len(syncFlags.reimported) > 0) {
		return fmt.Errorf("%w: --affected and --reimported require --if-needed", errUsage)
	}

	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	session, err := openProjectSession(projectDirFromArgs(args), logger)
	if err != nil {
		return err
	}
	defer session.Close()

	session.service.SetDryRun(syncFlags.dryRun)

	if syncFlags.ifNeeded {
		regenerated, err := session.service.SyncIfNeeded(syncFlags.affected, syncFlags.reimported)
		printReport(os.Stdout, logger, session.service.LastReport(), syncFlags.dryRun)
		if err != nil {
			return err
		}
		if !regenerated {
			logger.Info("No relevant changes")
		}
		return nil
	}

	err = session.service.Sync()
	printReport(os.Stdout, logger, session.service.LastReport(), syncFlags.dryRun)
	return err
}

// printReport lists written files on w and logs a summary.
func printReport(w io.Writer, logger projgen.Logger, report filesync.Report, dryRun bool) {
	written := report.Written()
	verb := "wrote"
	if dryRun {
		verb = "would write"
	}
	for _, path := range written {
		fmt.Fprintf(w, "%s %s\n", tui.Styled(tui.WrittenStyle, tui.SymbolCheck), path)
	}
	logger.Info("%s", tui.Styled(tui.UnchangedStyle, fmt.Sprintf("%s %d file(s), %d unchanged", verb, len(written), len(report.Unchanged()))))
}
