package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/projgen/internal/tui/components"
	"github.com/vvka-141/projgen/pkg/projgen"
)

// ErrNotInteractive is returned when an editor is requested without a terminal.
var ErrNotInteractive = errors.New("interactive terminal required")

// EditFlags runs the flag checklist. The second result is false when the
// user cancelled.
func EditFlags(current projgen.GenerationFlags) (projgen.GenerationFlags, bool, error) {
	if mode, reason := systemEnvironment().detect(); mode != ModeInteractive {
		return current, false, fmt.Errorf("%w: %s", ErrNotInteractive, reason)
	}

	model, err := tea.NewProgram(components.NewFlagToggle("Generation flags", current)).Run()
	if err != nil {
		return current, false, fmt.Errorf("flag editor: %w", err)
	}
	toggle, ok := model.(components.FlagToggle)
	if !ok || !toggle.Submitted() {
		return current, false, nil
	}
	return toggle.Flags(), true, nil
}
