package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
)

// Canvas layers, lowest first.
var (
	cutXStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#404000"))
	cutYStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#004040"))
	segmentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BF0000"))
	nearestStyle = lipgloss.NewStyle().Foreground(accentFg)
	hitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	needleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BF00"))
	constructPen = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	collidePen   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
)
