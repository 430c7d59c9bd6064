package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/projgen/internal/cli"
	"github.com/vvka-141/projgen/pkg/projgen"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(projgen.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(projgen.ExitCodeForError(err))
	}
}
