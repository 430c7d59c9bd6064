package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// Generated files that changed on disk
	WrittenStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	UnchangedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	EnabledStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// Symbols for visual feedback.
const (
	SymbolCheck    = "✓"
	SymbolCross    = "✗"
	SymbolBullet   = "•"
	SymbolEnabled  = "[x]"
	SymbolDisabled = "[ ]"
)

// Styled applies style only in interactive mode, so piped output stays plain.
func Styled(style lipgloss.Style, text string) string {
	if !IsInteractive() {
		return text
	}
	return style.Render(text)
}
