package vlist

import "github.com/charmbracelet/lipgloss"

// Scrollbar glyphs.
const (
	scrollbarThumb = "┃"
	scrollbarTrack = "│"
)

// Styles hold the lipgloss styles for the list chrome. Row content itself
// is styled by the host's render function; the component only paints the
// scrollbar and the empty-state placeholder.
type Styles struct {
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style
	NoItems        lipgloss.Style
}

// DefaultStyles returns the default chrome styling.
func DefaultStyles() Styles {
	return Styles{
		ScrollbarThumb: lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")),
		ScrollbarTrack: lipgloss.NewStyle().Foreground(lipgloss.Color("#383838")),
		NoItems:        lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true),
	}
}
