package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// Theme bundles the adaptive colors and precomputed styles used by the
// explorer. Styles are created once at startup instead of per-frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor

	// Semantic
	Selected   lipgloss.AdaptiveColor
	Computable lipgloss.AdaptiveColor
	Partial    lipgloss.AdaptiveColor
	Danger     lipgloss.AdaptiveColor

	// UI elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	// Styles
	Base        lipgloss.Style
	Header      lipgloss.Style
	PaneTitle   lipgloss.Style
	Cursor      lipgloss.Style
	SelectedRow lipgloss.Style
	MutedText   lipgloss.Style
	SubtleText  lipgloss.Style
	OKText      lipgloss.Style
	WarnText    lipgloss.Style
	ErrorText   lipgloss.Style
}

// DefaultTheme returns the standard adaptive theme. Light mode colors are
// tuned for contrast on white backgrounds.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary: lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Subtext: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"},
		Muted:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"},

		Selected:   lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"},
		Computable: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		Partial:    lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		Danger:     lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})
	t.Header = r.NewStyle().Bold(true).Foreground(t.Primary)
	t.PaneTitle = r.NewStyle().Bold(true).Foreground(t.Subtext)
	t.Cursor = r.NewStyle().Bold(true).Foreground(t.Primary)
	t.SelectedRow = r.NewStyle().Foreground(t.Selected).Bold(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SubtleText = r.NewStyle().Foreground(t.Subtext)
	t.OKText = r.NewStyle().Foreground(t.Computable)
	t.WarnText = r.NewStyle().Foreground(t.Partial)
	t.ErrorText = r.NewStyle().Foreground(t.Danger)

	return t
}

// ThemeForName returns the theme forced to the requested background.
// "auto" leaves lipgloss adaptive detection in charge.
func ThemeForName(r *lipgloss.Renderer, name string) Theme {
	switch name {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
	return DefaultTheme(r)
}
