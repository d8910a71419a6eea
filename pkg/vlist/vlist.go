// Package vlist is a position-stable virtualized list component for Bubble
// Tea programs. It renders only the rows inside the viewport plus a small
// prefetch margin, recycles row renderings through an LRU cache, and keeps
// the viewport still when the host re-sorts its data: rows are keyed by
// position, so a data tick that permutes the sequence repaints changed rows
// in place instead of scrolling or remounting anything.
//
// The host owns the data and the row rendering; the model owns scrolling,
// cursor movement, slot bookkeeping and clipping:
//
//	m := vlist.New(func(position int, q Quote, cursor bool, width int) string {
//		return renderQuote(q, cursor, width)
//	}, vlist.Options[Quote]{})
//	m.SetSize(80, 24)
//	m.SetItems(quotes)
//
// Forward Update messages while the list is focused and compose View into
// the program's output.
package vlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/joshuapare/listkit/internal/geom"
	"github.com/joshuapare/listkit/list"
	"github.com/joshuapare/listkit/list/measure"
)

const (
	// DefaultPrefetchRows is the prefetch margin above and below the
	// viewport when Options leaves it unset.
	DefaultPrefetchRows = 2

	// DefaultWheelRows is how many rows one mouse wheel tick scrolls.
	DefaultWheelRows = 3

	// DefaultCacheSize bounds the rendered-row cache.
	DefaultCacheSize = 512
)

// RenderFunc renders the item bound at position into row content. cursor
// reports whether the row is under the cursor and the list is focused;
// width is the content width in cells. Output may span several lines; the
// row's extent is its rendered height, so cursor styling must not change
// how tall the row renders.
type RenderFunc[T any] func(position int, item T, cursor bool, width int) string

// Options configures a Model at construction. The zero value works: keys,
// styles, margins and cache sizing all have defaults, and rows are measured
// by rendering them at the current width.
type Options[T any] struct {
	// PrefetchRows is the extra rows rendered beyond each viewport edge.
	// 0 means DefaultPrefetchRows; negative disables prefetch.
	PrefetchRows int

	// WheelRows is the scroll distance of one mouse wheel tick.
	// Values <= 0 mean DefaultWheelRows.
	WheelRows int

	// CacheSize bounds the rendered-row LRU. 0 means DefaultCacheSize;
	// negative disables render caching.
	CacheSize int

	// EstimatedRows is the provisional row height used before an item is
	// measured. Values <= 0 mean single-row items.
	EstimatedRows int

	// Measurer overrides how row heights are obtained. When nil, rows are
	// measured by rendering them cursorless at the current width.
	Measurer list.Measurer[T]

	// HideScrollbar drops the right-hand scrollbar column.
	HideScrollbar bool
}

// row is the rendering state mounted in one slot.
type row[T any] struct {
	position int
	item     T
	offset   int
	extent   int
}

// Model is the Bubble Tea list component. Create one with New or
// NewEqualFunc, size it with SetSize, feed it with SetItems, forward
// Update messages and compose View.
//
// KeyMap and Styles are assignable after construction, the way bubbles
// components expose theirs.
type Model[T any] struct {
	KeyMap KeyMap
	Styles Styles

	// EmptyMessage is shown when the sequence has no items.
	EmptyMessage string

	engine *list.Engine[T]
	render RenderFunc[T]
	meas   *measure.Rows[T] // nil when Options supplied a custom Measurer
	cache  *renderCache

	rows      map[list.SlotID]row[T]
	lastStats list.PassStats
	cursor    int
	width     int
	height    int
	wheelRows int
	hideBar   bool
	focused   bool
}

// New returns a list over comparable items, diffing content with ==.
func New[T comparable](render RenderFunc[T], opts Options[T]) *Model[T] {
	return NewEqualFunc(func(a, b T) bool { return a == b }, render, opts)
}

// NewEqualFunc returns a list that diffs item content with eq. Use it for
// item types that are not comparable or whose rendering depends on fewer
// fields than ==. A nil render function panics.
func NewEqualFunc[T any](eq func(a, b T) bool, render RenderFunc[T], opts Options[T]) *Model[T] {
	if render == nil {
		panic("vlist: nil render function")
	}

	margin := opts.PrefetchRows
	switch {
	case margin < 0:
		margin = 0
	case margin == 0:
		margin = DefaultPrefetchRows
	}
	wheel := opts.WheelRows
	if wheel <= 0 {
		wheel = DefaultWheelRows
	}
	cacheSize := opts.CacheSize
	switch {
	case cacheSize < 0:
		cacheSize = 0
	case cacheSize == 0:
		cacheSize = DefaultCacheSize
	}

	m := &Model[T]{
		KeyMap:       DefaultKeyMap(),
		Styles:       DefaultStyles(),
		EmptyMessage: "No items.",
		render:       render,
		cache:        newRenderCache(cacheSize),
		rows:         make(map[list.SlotID]row[T]),
		wheelRows:    wheel,
		hideBar:      opts.HideScrollbar,
		focused:      true,
	}

	meas := opts.Measurer
	if meas == nil {
		m.meas = measure.NewRows(0, func(position int, item T) string {
			return render(position, item, false, m.meas.Width())
		})
		meas = m.meas
	}

	m.engine = list.NewEqualFunc(eq, list.Options[T]{
		Measurer:        meas,
		EstimatedExtent: opts.EstimatedRows,
		PrefetchMargin:  margin,
	})
	return m
}

// SetItems replaces the sequence and applies the resulting ops to the
// mounted rows. The viewport and the cursor keep their positions; only a
// shorter sequence clamps them.
func (m *Model[T]) SetItems(items []T) error {
	ops, err := m.engine.SetSequence(items)
	if err != nil {
		return err
	}
	if n := m.engine.Len(); n == 0 {
		m.cursor = 0
	} else if m.cursor >= n {
		m.setCursorInternal(n - 1)
	}
	m.apply(ops)
	return nil
}

// SetSize sets the width and height of the list's screen area in cells.
// A width change re-measures every row, since wrapped heights depend on it.
func (m *Model[T]) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	oldContent := m.contentWidth()
	m.width = width
	m.height = height

	if cw := m.contentWidth(); cw != oldContent {
		m.cache.clear()
		if m.meas != nil {
			m.meas.SetWidth(cw)
			m.apply(m.engine.Remeasure())
		}
	}
	m.apply(m.engine.SetViewport(height))
}

// Update handles key, mouse and resize messages. The parent forwards
// messages while the list is focused; the returned command is currently
// always nil and exists for interface symmetry with other components.
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.MouseMsg:
		if !m.focused {
			return nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.apply(m.engine.UserScroll(-m.wheelRows))
		case tea.MouseButtonWheelDown:
			m.apply(m.engine.UserScroll(m.wheelRows))
		}
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		switch {
		case key.Matches(msg, m.KeyMap.Up):
			m.CursorUp()
		case key.Matches(msg, m.KeyMap.Down):
			m.CursorDown()
		case key.Matches(msg, m.KeyMap.PageUp):
			m.PageUp()
		case key.Matches(msg, m.KeyMap.PageDown):
			m.PageDown()
		case key.Matches(msg, m.KeyMap.GotoTop):
			m.GotoTop()
		case key.Matches(msg, m.KeyMap.GotoEnd):
			m.GotoEnd()
		}
	}
	return nil
}

// View renders the visible rows into a height-tall block, hard-clipped to
// the content width, with the scrollbar joined on the right.
func (m *Model[T]) View() string {
	if m.height <= 0 {
		return ""
	}
	if m.engine.Len() == 0 {
		return m.Styles.NoItems.Render(m.EmptyMessage)
	}

	cw := m.contentWidth()
	lines := make([]string, m.height)
	for _, r := range m.rows {
		rendered := m.renderRow(r)
		for i, line := range strings.Split(rendered, "\n") {
			if i >= r.extent {
				break // clip output taller than the measured extent
			}
			y := r.offset + i
			if y < 0 || y >= m.height {
				continue
			}
			lines[y] = ansi.Truncate(line, cw, "")
		}
	}
	content := strings.Join(lines, "\n")

	if m.hideBar {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, content, m.scrollbar())
}

// --- cursor movement ---

// CursorUp moves the cursor one position up, scrolling when it leaves the
// viewport.
func (m *Model[T]) CursorUp() { m.SetCursor(m.cursor - 1) }

// CursorDown moves the cursor one position down, scrolling when it leaves
// the viewport.
func (m *Model[T]) CursorDown() { m.SetCursor(m.cursor + 1) }

// SetCursor moves the cursor to position, clamped into the sequence, and
// scrolls the minimum distance that brings the row fully into view.
func (m *Model[T]) SetCursor(position int) {
	n := m.engine.Len()
	if n == 0 {
		m.cursor = 0
		return
	}
	m.setCursorInternal(geom.Clamp(position, 0, n-1))
	m.ensureVisible(m.cursor)
}

// Cursor returns the cursor position.
func (m *Model[T]) Cursor() int { return m.cursor }

// SelectedItem returns the item under the cursor.
func (m *Model[T]) SelectedItem() (T, bool) { return m.engine.ItemAt(m.cursor) }

// PageDown scrolls one viewport forward and pulls the cursor along into
// the rows now visible.
func (m *Model[T]) PageDown() {
	m.apply(m.engine.UserScroll(m.engine.Viewport()))
	m.snapCursorIntoView()
}

// PageUp scrolls one viewport backward and pulls the cursor along.
func (m *Model[T]) PageUp() {
	m.apply(m.engine.UserScroll(-m.engine.Viewport()))
	m.snapCursorIntoView()
}

// GotoTop jumps to the first position.
func (m *Model[T]) GotoTop() {
	m.apply(m.engine.ScrollTo(0))
	m.SetCursor(0)
}

// GotoEnd jumps to the last position with the viewport resting against the
// end of the sequence.
func (m *Model[T]) GotoEnd() {
	m.apply(m.engine.ScrollToEnd())
	m.SetCursor(m.engine.Len() - 1)
}

// --- focus ---

// Focus makes the list respond to input and highlights the cursor row.
func (m *Model[T]) Focus() {
	m.focused = true
	m.cache.invalidatePosition(m.cursor)
}

// Blur stops input handling and drops the cursor highlight.
func (m *Model[T]) Blur() {
	m.focused = false
	m.cache.invalidatePosition(m.cursor)
}

// Focused reports whether the list is receiving input.
func (m *Model[T]) Focused() bool { return m.focused }

// --- queries ---

// Width returns the total width last given to SetSize.
func (m *Model[T]) Width() int { return m.width }

// Height returns the height last given to SetSize.
func (m *Model[T]) Height() int { return m.height }

// ContentWidth returns the width rows render at: Width minus the scrollbar
// column when one is shown. Hosts that draw column headings above the list
// align them against this.
func (m *Model[T]) ContentWidth() int { return m.contentWidth() }

// Engine exposes the underlying engine for read queries such as
// VisibleRange and ScrollOffset. Mutations should go through the model so
// mounted rows and the render cache stay in sync.
func (m *Model[T]) Engine() *list.Engine[T] { return m.engine }

// ScrollPercent reports how far the viewport has scrolled, from 0 at the
// top to 1 resting against the end. Content that fits entirely reports 1.
func (m *Model[T]) ScrollPercent() float64 {
	total := m.engine.TotalExtent()
	vp := m.engine.Viewport()
	if total <= vp {
		return 1
	}
	p := float64(m.engine.ScrollOffset()) / float64(total-vp)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// CacheStats reports render cache effectiveness.
func (m *Model[T]) CacheStats() CacheStats { return m.cache.stats }

// LastStats reports the op counts of the most recent pass applied to the
// mounted rows. A pass that changed nothing reports zeros.
func (m *Model[T]) LastStats() list.PassStats { return m.lastStats }

// --- internals ---

// apply folds one pass's ops into the mounted rows, invalidating cached
// renderings for positions whose content may have changed.
func (m *Model[T]) apply(ops []list.Op[T]) {
	m.lastStats = list.CountOps(ops)
	for _, op := range ops {
		switch op.Kind {
		case list.OpMount:
			m.rows[op.Slot] = row[T]{
				position: op.Position,
				item:     op.Item,
				offset:   op.Offset,
				extent:   op.Extent,
			}
			m.cache.invalidatePosition(op.Position)
		case list.OpUpdate:
			r := m.rows[op.Slot]
			r.item = op.Item
			m.rows[op.Slot] = r
			m.cache.invalidatePosition(op.Position)
		case list.OpReposition:
			r := m.rows[op.Slot]
			r.offset = op.Offset
			r.extent = op.Extent
			m.rows[op.Slot] = r
		case list.OpUnmount:
			delete(m.rows, op.Slot)
		}
	}
}

func (m *Model[T]) renderRow(r row[T]) string {
	isCursor := m.focused && r.position == m.cursor
	ck := cacheKey{position: r.position, cursor: isCursor}
	if cached, ok := m.cache.get(ck); ok {
		return cached
	}
	rendered := m.render(r.position, r.item, isCursor, m.contentWidth())
	m.cache.put(ck, rendered)
	return rendered
}

// setCursorInternal moves the cursor and invalidates the highlight cache
// entries on both ends of the move.
func (m *Model[T]) setCursorInternal(position int) {
	if position == m.cursor {
		return
	}
	m.cache.invalidatePosition(m.cursor)
	m.cache.invalidatePosition(position)
	m.cursor = position
}

// ensureVisible scrolls the minimum distance that brings position fully
// into the viewport. Positions outside the window jump the anchor there,
// bottom-aligned when the jump goes forward.
func (m *Model[T]) ensureVisible(position int) {
	vp := m.engine.Viewport()
	if vp <= 0 {
		return
	}
	w := m.engine.Window()
	for _, p := range w.Placements {
		if p.Position != position {
			continue
		}
		if p.Offset < 0 {
			m.apply(m.engine.UserScroll(p.Offset))
		} else if bottom := p.Offset + p.Extent; bottom > vp {
			m.apply(m.engine.UserScroll(bottom - vp))
		}
		return
	}

	below := !w.Empty() && position > w.Last
	m.apply(m.engine.ScrollTo(position))
	if !below {
		return
	}
	for _, p := range m.engine.Window().Placements {
		if p.Position == position && p.Extent < vp {
			m.apply(m.engine.UserScroll(p.Extent - vp))
			return
		}
	}
}

// snapCursorIntoView clamps the cursor into the rows the viewport shows,
// used after whole-viewport jumps where the cursor follows the view.
func (m *Model[T]) snapCursorIntoView() {
	w := m.engine.Window()
	if w.Empty() {
		return
	}
	vp := m.engine.Viewport()
	lo, hi := -1, -1
	for _, p := range w.Placements {
		if p.Offset+p.Extent <= 0 || p.Offset >= vp {
			continue
		}
		if lo == -1 {
			lo = p.Position
		}
		hi = p.Position
	}
	if lo == -1 {
		return
	}
	switch {
	case m.cursor < lo:
		m.SetCursor(lo)
	case m.cursor > hi:
		m.SetCursor(hi)
	}
}

func (m *Model[T]) contentWidth() int {
	cw := m.width
	if !m.hideBar {
		cw--
	}
	if cw < 0 {
		return 0
	}
	return cw
}

// scrollbar renders the right-hand column: a track with a proportional
// thumb placed from the engine's scroll offset and total extent.
func (m *Model[T]) scrollbar() string {
	total := m.engine.TotalExtent()
	thumbH := m.height
	thumbY := 0
	if total > m.height && m.height > 0 {
		thumbH = m.height * m.height / total
		if thumbH < 1 {
			thumbH = 1
		}
		maxY := m.height - thumbH
		if denom := total - m.height; denom > 0 {
			thumbY = geom.Clamp(m.engine.ScrollOffset()*maxY/denom, 0, maxY)
		}
	}

	var b strings.Builder
	for y := 0; y < m.height; y++ {
		if y >= thumbY && y < thumbY+thumbH {
			b.WriteString(m.Styles.ScrollbarThumb.Render(scrollbarThumb))
		} else {
			b.WriteString(m.Styles.ScrollbarTrack.Render(scrollbarTrack))
		}
		if y < m.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
