package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/projgen/pkg/projgen"
)

var flagDescriptions = map[projgen.GenerationFlags]string{
	projgen.FlagEmbedded:         "Packages embedded in the project's Packages folder",
	projgen.FlagLocal:            "Packages referenced from a local folder",
	projgen.FlagRegistry:         "Packages downloaded from a registry",
	projgen.FlagGit:              "Packages fetched from a Git repository",
	projgen.FlagBuiltIn:          "Packages bundled with the host",
	projgen.FlagLocalTarBall:     "Packages installed from a local tarball",
	projgen.FlagUnknown:          "Packages with an unrecognized origin",
	projgen.FlagPlayerAssemblies: "Also generate projects for player assemblies",
}

// FlagToggle is a checklist over every generation flag.
type FlagToggle struct {
	title     string
	flags     projgen.GenerationFlags
	cursor    int
	showHelp  bool
	keyMap    toggleKeyMap
	styles    toggleStyles
	submitted bool
	cancelled bool
}

type toggleKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Save   key.Binding
	Quit   key.Binding
}

type toggleStyles struct {
	Title       lipgloss.Style
	Cursor      lipgloss.Style
	Enabled     lipgloss.Style
	Disabled    lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
}

func defaultToggleStyles() toggleStyles {
	return toggleStyles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Enabled:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(6),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}

func defaultToggleKeyMap() toggleKeyMap {
	return toggleKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "x"),
			key.WithHelp("space", "toggle"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "defaults"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q/esc", "cancel"),
		),
	}
}

// NewFlagToggle creates a checklist starting from flags.
func NewFlagToggle(title string, flags projgen.GenerationFlags) FlagToggle {
	return FlagToggle{
		title:    title,
		flags:    flags,
		showHelp: true,
		keyMap:   defaultToggleKeyMap(),
		styles:   defaultToggleStyles(),
	}
}

// WithShowHelp enables or disables the help text.
func (t FlagToggle) WithShowHelp(show bool) FlagToggle {
	t.showHelp = show
	return t
}

// Init implements tea.Model.
func (t FlagToggle) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (t FlagToggle) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	switch {
	case key.Matches(keyMsg, t.keyMap.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(keyMsg, t.keyMap.Down):
		if t.cursor < len(projgen.AllGenerationFlags)-1 {
			t.cursor++
		}
	case key.Matches(keyMsg, t.keyMap.Toggle):
		t.flags = t.flags.Toggle(projgen.AllGenerationFlags[t.cursor])
	case key.Matches(keyMsg, t.keyMap.Reset):
		t.flags = projgen.DefaultGenerationFlags
	case key.Matches(keyMsg, t.keyMap.Save):
		t.submitted = true
		return t, tea.Quit
	case key.Matches(keyMsg, t.keyMap.Quit):
		t.cancelled = true
		return t, tea.Quit
	}
	return t, nil
}

// View implements tea.Model.
func (t FlagToggle) View() string {
	var b strings.Builder

	b.WriteString(t.styles.Title.Render(t.title))
	b.WriteString("\n\n")

	for i, flag := range projgen.AllGenerationFlags {
		cursor := "  "
		if i == t.cursor {
			cursor = t.styles.Cursor.Render("> ")
		}
		box, style := "[ ]", t.styles.Disabled
		if t.flags.Has(flag) {
			box, style = "[x]", t.styles.Enabled
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(box + " " + flag.Name()))
		b.WriteString("\n")
		if i == t.cursor {
			b.WriteString(t.styles.Description.Render(flagDescriptions[flag]))
			b.WriteString("\n")
		}
	}

	if t.showHelp {
		b.WriteString(t.styles.Help.Render("\n↑/↓ navigate • space toggle • r defaults • enter save • q cancel"))
	}

	return b.String()
}

// Flags returns the current selection.
func (t FlagToggle) Flags() projgen.GenerationFlags {
	return t.flags
}

// Cursor returns the index into projgen.AllGenerationFlags under the cursor.
func (t FlagToggle) Cursor() int {
	return t.cursor
}

// Cancelled returns true if the user left without saving.
func (t FlagToggle) Cancelled() bool {
	return t.cancelled
}

// Submitted returns true if the user saved.
func (t FlagToggle) Submitted() bool {
	return t.submitted
}
