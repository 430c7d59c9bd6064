package tui

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// EnvNonInteractive forces plain output and disables the flag editor.
const EnvNonInteractive = "PROJGEN_NON_INTERACTIVE"

// Mode is how projgen talks to the user.
type Mode int

const (
	// ModeNonInteractive prints plain text and never prompts.
	ModeNonInteractive Mode = iota
	// ModeInteractive styles output and may open the flag editor.
	ModeInteractive
)

// environment holds what mode detection depends on.
type environment struct {
	getenv   func(string) string
	terminal func() bool
}

func systemEnvironment() environment {
	return environment{
		getenv: os.Getenv,
		terminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// detect returns the mode and, when non-interactive, why.
func (e environment) detect() (Mode, string) {
	if forced, err := strconv.ParseBool(e.getenv(EnvNonInteractive)); err == nil && forced {
		return ModeNonInteractive, EnvNonInteractive + " is set"
	}
	if e.getenv("CI") != "" {
		return ModeNonInteractive, "running under CI"
	}
	if e.getenv("NO_COLOR") != "" {
		return ModeNonInteractive, "NO_COLOR is set"
	}
	if e.getenv("TERM") == "dumb" {
		return ModeNonInteractive, "TERM is dumb"
	}
	if !e.terminal() {
		return ModeNonInteractive, "stdin or stdout is not a terminal"
	}
	return ModeInteractive, ""
}

// DetectMode reports whether output may be styled and prompts shown.
func DetectMode() Mode {
	mode, _ := systemEnvironment().detect()
	return mode
}

// IsInteractive reports whether DetectMode returns ModeInteractive.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
