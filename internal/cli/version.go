package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersionInfo()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// buildInfo identifies the projgen binary. Its version is also stamped
// into every generated project.
type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// currentBuild prefers ldflags values and falls back to the module build
// info for `go install` builds.
func currentBuild() buildInfo {
	b := buildInfo{Version: version, Commit: commit, Date: date}
	if b.Version != "dev" {
		return b
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	return b.fromModule(info)
}

func (b buildInfo) fromModule(info *debug.BuildInfo) buildInfo {
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Commit = s.Value
			if len(b.Commit) > 12 {
				b.Commit = b.Commit[:12]
			}
		case "vcs.time":
			b.Date = s.Value
		}
	}
	return b
}

func (b buildInfo) String() string {
	return fmt.Sprintf("projgen %s (%s, %s) %s/%s", b.Version, b.Commit, b.Date, runtime.GOOS, runtime.GOARCH)
}

// printVersionInfo writes the version line to stdout for scripts and the
// banner to stderr.
func printVersionInfo() {
	fmt.Println(currentBuild())
	fmt.Fprintln(os.Stderr, "IDE project and solution file generator")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Repository: https://github.com/vvka-141/projgen")
}
