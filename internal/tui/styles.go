package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette.
const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)

	labelStyle        = lipgloss.NewStyle().Foreground(colorSubtext0)
	valueStyle        = lipgloss.NewStyle().Foreground(colorText)
	focusedValueStyle = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(colorOverlay1)
	metaStyle         = lipgloss.NewStyle().Foreground(colorSubtext0)
	pinnedStyle       = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	searchStyle       = lipgloss.NewStyle().Foreground(colorTeal)
	errorStyle        = lipgloss.NewStyle().Foreground(colorRed)
	hintKeyStyle      = lipgloss.NewStyle().Foreground(colorPeach)

	cursorRowStyle = lipgloss.NewStyle().Background(colorSurface0).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(colorLavender)
)
