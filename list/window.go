package list

import "github.com/joshuapare/listkit/internal/geom"

// Placement locates one windowed position on screen. Offset is relative to
// the viewport's leading edge; it is negative for the part of the anchor row
// scrolled past and for prefetch rows above the viewport.
type Placement struct {
	Position int
	Offset   int
	Extent   int
}

// Window is the contiguous range of positions [First, Last] currently
// rendered, visible rows plus the prefetch margin on both sides. An empty
// window has First = 0, Last = -1 and nil Placements.
type Window struct {
	First      int
	Last       int
	Placements []Placement
}

// Empty reports whether the window contains no positions.
func (w Window) Empty() bool { return w.Last < w.First }

// Size is the number of positions in the window.
func (w Window) Size() int {
	if w.Empty() {
		return 0
	}
	return w.Last - w.First + 1
}

// Contains reports whether position is inside the window.
func (w Window) Contains(position int) bool {
	return position >= w.First && position <= w.Last
}

// ComputeWindow derives the window and its placements for one update pass.
//
// Starting from the anchor, the walk accumulates extents forward until
// viewportExtent plus prefetchMargin is covered, and backward until
// prefetchMargin before the viewport's leading edge is covered, clipping to
// [0, length-1]. Placements are derived from the anchor and measured extents
// alone; nothing is stored per position, so replacing the sequence never
// recomputes placements for positions far off screen.
//
// An empty sequence or a non-positive viewport yields an empty window: both
// are valid states, not errors. extentAt is called only for positions inside
// the window and must return a positive extent (the engine sanitizes
// measurer output before it gets here).
func ComputeWindow(length int, anchor Anchor, viewportExtent, prefetchMargin int, extentAt func(position int) int) Window {
	if length <= 0 || viewportExtent <= 0 {
		return Window{Last: -1}
	}
	if prefetchMargin < 0 {
		prefetchMargin = 0
	}

	pos := geom.Clamp(anchor.Position, 0, length-1)
	off := anchor.Offset
	if off < 0 {
		off = 0
	}

	// The anchor row's leading edge sits at -off. Walk backward while the
	// topmost row's leading edge is still below the margin boundary.
	first := pos
	firstOff := -off
	for first > 0 && firstOff > -prefetchMargin {
		first--
		firstOff -= extentAt(first)
	}

	// Walk forward until the viewport plus trailing margin is covered.
	last := pos
	covered := extentAt(pos) - off
	for last < length-1 && covered < viewportExtent+prefetchMargin {
		last++
		covered += extentAt(last)
	}

	placements := make([]Placement, 0, last-first+1)
	running := firstOff
	for p := first; p <= last; p++ {
		ext := extentAt(p)
		placements = append(placements, Placement{Position: p, Offset: running, Extent: ext})
		running += ext
	}
	return Window{First: first, Last: last, Placements: placements}
}
