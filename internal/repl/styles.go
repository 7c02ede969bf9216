package repl

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Transcript styles
	InputEchoStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	OutputStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	InfoStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	DiagnosticStyle = lipgloss.NewStyle().
			Foreground(colorError)

	ModeStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// RenderResult styles a result by its kind
func RenderResult(r Result) string {
	switch r.Kind {
	case ResultDiagnostics:
		return DiagnosticStyle.Render(r.Text)
	case ResultInfo:
		return InfoStyle.Render(r.Text)
	default:
		return OutputStyle.Render(r.Text)
	}
}
