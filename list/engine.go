package list

import (
	"github.com/joshuapare/listkit/internal/geom"
)

// Engine is the list controller: the single entry point for data changes,
// scrolling and host queries. It owns the scroll state, the slot pool and
// the measured-extent cache, and mutates them only inside an update pass.
//
// Engines are not safe for concurrent use. All operations run to completion
// on the caller's goroutine, the way a UI loop drives a component; the ops
// returned by one call are superseded by the next (last write wins, partial
// results are never retained).
type Engine[T any] struct {
	eq       func(a, b T) bool
	measurer Measurer[T]
	estimate int
	margin   int
	viewport int
	shapeOf  func(position int, item T) Shape

	items  []T
	scroll ScrollState
	pool   *SlotPool[T]
	window Window
	cache  extentCache
}

// New returns an Engine for comparable items, diffing with ==.
func New[T comparable](opts Options[T]) *Engine[T] {
	return NewEqualFunc(func(a, b T) bool { return a == b }, opts)
}

// NewEqualFunc returns an Engine that diffs items with eq. Use this for item
// types that are not comparable or whose equality is narrower than ==.
// A nil eq panics: the diff protocol is meaningless without equality.
func NewEqualFunc[T any](eq func(a, b T) bool, opts Options[T]) *Engine[T] {
	if eq == nil {
		panic("list: nil equality function")
	}
	opts.fill()
	return &Engine[T]{
		eq:       eq,
		measurer: opts.Measurer,
		estimate: opts.EstimatedExtent,
		margin:   opts.PrefetchMargin,
		viewport: opts.ViewportExtent,
		shapeOf:  opts.SlotShape,
		pool:     NewSlotPool[T](),
		window:   Window{Last: -1},
		cache:    newExtentCache(),
	}
}

// SetSequence replaces the whole ordered sequence and runs one update pass:
// anchor bookkeeping, window computation, slot reconciliation, then content
// diffing. It is the only entry point for data changes; the engine never
// mutates the slice it is handed.
//
// The viewport does not move: the anchor survives every replacement
// untouched unless the new sequence is shorter than the anchored position,
// in which case it clamps to the last position. No slot is recreated for a
// position that stays in the window, even when its content changed.
//
// A nil sequence is rejected with ErrNilSequence and leaves the engine
// untouched; pass an empty slice to show no rows.
func (e *Engine[T]) SetSequence(items []T) ([]Op[T], error) {
	if items == nil {
		return nil, ErrNilSequence
	}
	e.sweepExtents(items)
	e.items = items
	e.scroll.SequenceReplaced(len(items))
	return e.updatePass(true), nil
}

// UserScroll moves the viewport by delta extent units, positive toward the
// end, and recomputes the window. No content diffing happens: items cannot
// have changed, so retained slots emit at most a reposition.
func (e *Engine[T]) UserScroll(delta int) []Op[T] {
	if delta == 0 || len(e.items) == 0 {
		return nil
	}
	e.scroll.UserScroll(delta, e.view())
	return e.updatePass(false)
}

// ScrollTo anchors the viewport at the leading edge of position, clamped
// into the sequence. Out-of-range positions are not an error.
func (e *Engine[T]) ScrollTo(position int) []Op[T] {
	e.scroll.ScrollToPosition(position, len(e.items))
	return e.updatePass(false)
}

// ScrollToEnd rests the viewport against the end of the sequence.
func (e *Engine[T]) ScrollToEnd() []Op[T] {
	e.scroll.ScrollToEnd(e.view())
	return e.updatePass(false)
}

// SetViewport records the viewport extent supplied by the host layout and
// recomputes the window. A negative extent is treated as zero; zero is a
// valid collapsed state with an empty window.
func (e *Engine[T]) SetViewport(extent int) []Op[T] {
	if extent < 0 {
		extent = 0
	}
	if extent == e.viewport {
		return nil
	}
	e.viewport = extent
	return e.updatePass(false)
}

// Remeasure drops cached extents for the given positions, or for every
// position when called with none, and re-enters the regular update pass.
// This is the single re-entry path for measurements that resolve after
// their pass used the estimate: no separate reconciliation code runs for
// them.
func (e *Engine[T]) Remeasure(positions ...int) []Op[T] {
	if len(positions) == 0 {
		e.cache.clear()
	} else {
		for _, pos := range positions {
			e.cache.drop(pos)
		}
	}
	return e.updatePass(false)
}

// --- queries (pure reads, no measuring) ---

// VisibleRange reports the window bounds [first, last], prefetch included.
// last < first when nothing is rendered.
func (e *Engine[T]) VisibleRange() (first, last int) {
	return e.window.First, e.window.Last
}

// Window returns a copy of the current window with its placements.
func (e *Engine[T]) Window() Window {
	w := e.window
	if len(e.window.Placements) > 0 {
		w.Placements = make([]Placement, len(e.window.Placements))
		copy(w.Placements, e.window.Placements)
	}
	return w
}

// Anchor returns the current scroll anchor.
func (e *Engine[T]) Anchor() Anchor { return e.scroll.Anchor() }

// Len is the current sequence length.
func (e *Engine[T]) Len() int { return len(e.items) }

// ItemAt returns the item currently occupying position, or false when the
// position is outside the sequence.
func (e *Engine[T]) ItemAt(position int) (T, bool) {
	if position < 0 || position >= len(e.items) {
		var zero T
		return zero, false
	}
	return e.items[position], true
}

// Viewport is the viewport extent last supplied by the host.
func (e *Engine[T]) Viewport() int { return e.viewport }

// ScrollOffset reports the distance from the start of the content to the
// viewport's leading edge, derived from the anchor: the summed extents of
// every position before it plus the anchor offset. Cached measurements are
// used where present and the estimate elsewhere; nothing is measured by a
// query. Cost is proportional to the anchor position.
func (e *Engine[T]) ScrollOffset() int {
	a := e.scroll.Anchor()
	off := 0
	for pos := 0; pos < a.Position && pos < len(e.items); pos++ {
		off = geom.SatAdd(off, e.extentCached(pos))
	}
	return geom.SatAdd(off, a.Offset)
}

// TotalExtent reports the extent of the whole content: measured extents
// where known, the estimate for everything not yet measured. O(1).
func (e *Engine[T]) TotalExtent() int {
	unmeasured := len(e.items) - e.cache.size()
	return geom.SatAdd(e.cache.sum, geom.SatMul(unmeasured, e.estimate))
}

// --- update pass internals ---

// updatePass recomputes the window from the current anchor, reconciles the
// slot pool against it and emits the resulting ops. This is the one
// reconciliation algorithm; every trigger (data change, scroll, viewport
// change, measurement resolution) funnels through it.
func (e *Engine[T]) updatePass(compareContent bool) []Op[T] {
	next := ComputeWindow(len(e.items), e.scroll.Anchor(), e.viewport, e.margin, e.extentAt)
	rec := e.pool.Reconcile(e.window, next, e.shapeAt)
	ops := buildOps(e.pool, rec, next, e.items, e.eq, compareContent)
	e.window = next
	return ops
}

// extentAt measures position on demand during a pass, caching real results.
// When the measurer cannot complete, the stale last-known extent for the
// position stands in, or the configured estimate if there is none; either
// way the position stays marked until a later pass measures it for real or
// the host calls Remeasure.
func (e *Engine[T]) extentAt(position int) int {
	if ext, ok := e.cache.get(position); ok {
		return ext
	}
	ext := e.measurer.Measure(position, e.items[position])
	if ext <= 0 {
		e.cache.markPending(position)
		if last, ok := e.cache.lastKnown(position); ok {
			return last
		}
		return e.estimate
	}
	e.cache.put(position, ext)
	return ext
}

// extentCached is the query-side read: last known value, measured or stale,
// or the estimate. Never measures.
func (e *Engine[T]) extentCached(position int) int {
	if ext, ok := e.cache.lastKnown(position); ok {
		return ext
	}
	return e.estimate
}

// sweepExtents reconciles the extent cache with the incoming sequence.
// Positions beyond the new length lose their entries. Positions whose item
// is no longer structurally equal to the one measured are demoted to stale:
// the next pass re-measures them where windowed, while queries keep reading
// the last-known extent. A permutation that only moves equal-extent items
// therefore leaves ScrollOffset and TotalExtent unchanged, and extents of
// untouched positions survive outright. Cost is proportional to the number
// of cached positions.
func (e *Engine[T]) sweepExtents(next []T) {
	for pos := range e.cache.measured {
		if pos >= len(next) {
			e.cache.drop(pos)
			continue
		}
		if pos >= len(e.items) || !e.eq(e.items[pos], next[pos]) {
			e.cache.demote(pos)
		}
	}
	for pos := range e.cache.stale {
		if pos >= len(next) {
			e.cache.drop(pos)
		}
	}
	for pos := range e.cache.pending {
		if pos >= len(next) {
			delete(e.cache.pending, pos)
		}
	}
}

func (e *Engine[T]) shapeAt(position int) Shape {
	if e.shapeOf == nil {
		return ""
	}
	return e.shapeOf(position, e.items[position])
}

// view adapts the engine to the ScrollView interface for anchor walks.
func (e *Engine[T]) view() ScrollView { return engineView[T]{e} }

type engineView[T any] struct{ e *Engine[T] }

func (v engineView[T]) Len() int                  { return len(v.e.items) }
func (v engineView[T]) ViewportExtent() int       { return v.e.viewport }
func (v engineView[T]) ExtentAt(position int) int { return v.e.extentAt(position) }
