package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errUsage marks command-line misuse detected after flag parsing.
var errUsage = errors.New("invalid argument")

var rootCmd = &cobra.Command{
	Use:   "projgen",
	Short: "IDE project and solution file generator",
	Long: `projgen keeps .csproj and .sln files in step with a game project's
compilation graph.

The graph is read from a YAML manifest written by the build pipeline
(Library/compilation.yaml by default). One project is generated per
assembly and one solution ties them together. Files are only rewritten
when their content changes, so IDEs do not reload needlessly.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or unknown generation flag
  11 - Compilation manifest not found
  12 - Compilation manifest malformed
  13 - A generated file could not be written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// projectDirFromArgs returns the optional path argument, defaulting to
// the working directory.
func projectDirFromArgs(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}
