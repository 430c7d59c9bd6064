package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/projgen/internal/config"
	"github.com/vvka-141/projgen/internal/logging"
	"github.com/vvka-141/projgen/internal/settings"
	"github.com/vvka-141/projgen/internal/tui"
	"github.com/vvka-141/projgen/pkg/projgen"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Inspect and change generation flags",
	Long: `Generation flags select which package origins get projects and whether
player assemblies are included. They are stored per project under the
settings directory. The default is embedded|local.

Flags: embedded, local, registry, git, builtin, localtarball, unknown, player`,
}

var flagsListCmd = &cobra.Command{
	Use:   "list [project_path]",
	Short: "Show the current generation flags",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFlagsList,
}

var flagsToggleCmd = &cobra.Command{
	Use:   "toggle <flag>...",
	Short: "Flip one or more generation flags",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFlagsToggle,
}

var flagsResetCmd = &cobra.Command{
	Use:   "reset [project_path]",
	Short: "Restore the default generation flags",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFlagsReset,
}

var flagsEditCmd = &cobra.Command{
	Use:   "edit [project_path]",
	Short: "Edit generation flags interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFlagsEdit,
}

var flagsProjectDir string

func init() {
	rootCmd.AddCommand(flagsCmd)
	flagsCmd.AddCommand(flagsListCmd, flagsToggleCmd, flagsResetCmd, flagsEditCmd)
	flagsToggleCmd.Flags().StringVarP(&flagsProjectDir, "project", "p", ".", "Project directory")
	flagsToggleCmd.ValidArgs = flagNames()
}

func flagNames() []string {
	names := make([]string, 0, len(projgen.AllGenerationFlags))
	for _, flag := range projgen.AllGenerationFlags {
		names = append(names, flag.Name())
	}
	return names
}

func withStore(cmd *cobra.Command, projectDir string, fn func(*settings.Store) error) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	cfg, err := config.Resolve(projectDir)
	if err != nil {
		return err
	}
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func runFlagsList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, projectDirFromArgs(args), func(store *settings.Store) error {
		flags, err := store.Flags()
		if err != nil {
			return err
		}
		printFlags(flags)
		return nil
	})
}

func runFlagsToggle(cmd *cobra.Command, args []string) error {
	toToggle := make([]projgen.GenerationFlags, 0, len(args))
	for _, name := range args {
		flag, err := projgen.ParseGenerationFlag(name)
		if err != nil {
			return err
		}
		toToggle = append(toToggle, flag)
	}

	return withStore(cmd, flagsProjectDir, func(store *settings.Store) error {
		var flags projgen.GenerationFlags
		for _, flag := range toToggle {
			var err error
			if flags, err = store.Toggle(flag); err != nil {
				return err
			}
		}
		printFlags(flags)
		return nil
	})
}

func runFlagsReset(cmd *cobra.Command, args []string) error {
	return withStore(cmd, projectDirFromArgs(args), func(store *settings.Store) error {
		if err := store.Reset(); err != nil {
			return err
		}
		printFlags(projgen.DefaultGenerationFlags)
		return nil
	})
}

func runFlagsEdit(cmd *cobra.Command, args []string) error {
	return withStore(cmd, projectDirFromArgs(args), func(store *settings.Store) error {
		current, err := store.Flags()
		if err != nil {
			return err
		}
		edited, saved, err := tui.EditFlags(current)
		if err != nil {
			if errors.Is(err, tui.ErrNotInteractive) {
				return fmt.Errorf("%w; use 'projgen flags toggle' in scripts", err)
			}
			return err
		}
		if !saved {
			fmt.Fprintln(os.Stderr, "Cancelled, flags unchanged")
			return nil
		}
		if err := store.Set(edited); err != nil {
			return err
		}
		printFlags(edited)
		return nil
	})
}

// printFlags writes one line per flag to stdout and the compact form to stderr.
func printFlags(flags projgen.GenerationFlags) {
	for _, flag := range projgen.AllGenerationFlags {
		if flags.Has(flag) {
			fmt.Printf("%s %s\n", tui.Styled(tui.EnabledStyle, tui.SymbolEnabled), flag.Name())
		} else {
			fmt.Printf("%s %s\n", tui.Styled(tui.DisabledStyle, tui.SymbolDisabled), flag.Name())
		}
	}
	fmt.Fprintln(os.Stderr, flags.String())
}
