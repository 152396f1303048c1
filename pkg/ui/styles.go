package ui

import "github.com/charmbracelet/lipgloss"

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

// Pane borders for the split layout.
var (
	// PanelStyle is the default style for unfocused panes
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"}).
			Padding(0, 1)

	// PanelFocusStyle highlights the focused pane
	PanelFocusStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}).
			Padding(0, 1)

	// StatusBarStyle renders the one-line status/footer bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"})
)
