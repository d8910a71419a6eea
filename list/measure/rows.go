// Package measure provides Measurer implementations for terminal hosts,
// where an item's extent is the number of rendered rows it occupies at the
// current column width.
package measure

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Rows measures items by rendering them and counting the terminal rows the
// output occupies when wrapped to the host width. It satisfies the engine's
// Measurer interface.
//
// A zero width means the host has not finished layout: Measure reports 0 so
// the engine falls back to its estimate, and the host should call SetWidth
// followed by Engine.Remeasure once the real width arrives.
type Rows[T any] struct {
	render func(position int, item T) string
	width  int
	wrap   lipgloss.Style
}

// NewRows returns a row measurer wrapping render output at width columns.
func NewRows[T any](width int, render func(position int, item T) string) *Rows[T] {
	r := &Rows[T]{render: render}
	r.SetWidth(width)
	return r
}

// SetWidth updates the wrap width. Extents already cached by the engine are
// untouched; follow a width change with Engine.Remeasure.
func (r *Rows[T]) SetWidth(width int) {
	r.width = width
	if width > 0 {
		r.wrap = lipgloss.NewStyle().Width(width)
	}
}

// Width reports the current wrap width.
func (r *Rows[T]) Width() int { return r.width }

// Measure renders the item and counts the rows it occupies at the current
// width, or reports 0 while no width is known.
func (r *Rows[T]) Measure(position int, item T) int {
	if r.width <= 0 {
		return 0
	}
	return lipgloss.Height(r.wrap.Render(r.render(position, item)))
}

// CellWidth reports the display width of s in terminal cells, with ANSI
// escape sequences stripped and wide runes counted at their cell width.
func CellWidth(s string) int { return ansi.StringWidth(s) }
