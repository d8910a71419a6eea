package list

import "github.com/joshuapare/listkit/internal/geom"

// Anchor is the scroll location: a position plus an offset from that
// position's leading edge, in extent units. The anchor is defined purely in
// terms of position, never item identity, which is what keeps the viewport
// still when the sequence is re-sorted: whatever item lands at the anchored
// position is rendered at the same place on screen.
type Anchor struct {
	Position int
	Offset   int
}

// ScrollView supplies the geometry UserScroll needs to re-resolve the anchor
// across item boundaries. Implementations are expected to be cheap; the
// walks touch O(window) positions, never the whole sequence.
type ScrollView interface {
	// Len is the sequence length.
	Len() int
	// ViewportExtent is the current viewport size along the scroll axis.
	ViewportExtent() int
	// ExtentAt reports the extent of the given position. Called only with
	// positions inside [0, Len()-1].
	ExtentAt(position int) int
}

// ScrollState holds the scroll anchor for the lifetime of an Engine. It is
// mutated only by user scrolling and explicit scroll-to commands; replacing
// the sequence never moves it except to clamp against a shorter length.
type ScrollState struct {
	anchor Anchor
}

// Anchor returns the current anchor. Never fails.
func (s *ScrollState) Anchor() Anchor { return s.anchor }

// UserScroll moves the anchor by delta extent units, positive toward the end
// of the sequence. The offset is re-resolved across item boundaries using
// measured extents, then clamped: the viewport can neither move before the
// first position's leading edge nor past the point where the last position's
// trailing edge meets the viewport's trailing edge.
func (s *ScrollState) UserScroll(delta int, view ScrollView) {
	n := view.Len()
	if n == 0 {
		s.anchor = Anchor{}
		return
	}

	pos := geom.Clamp(s.anchor.Position, 0, n-1)
	off := geom.SatAdd(s.anchor.Offset, delta)

	// Borrow extents from preceding positions while the offset is negative.
	for off < 0 && pos > 0 {
		pos--
		off += view.ExtentAt(pos)
	}
	if off < 0 {
		off = 0
	}

	// Carry the offset into following positions while it spills past the
	// current one.
	for pos < n-1 {
		ext := view.ExtentAt(pos)
		if off < ext {
			break
		}
		off -= ext
		pos++
	}

	maxPos, maxOff := maxAnchor(view)
	if pos > maxPos || (pos == maxPos && off > maxOff) {
		pos, off = maxPos, maxOff
	}
	s.anchor = Anchor{Position: pos, Offset: off}
}

// SequenceReplaced accounts for the sequence being swapped out. When the
// anchored position survives in the new sequence the anchor is left exactly
// as it was; only a sequence shorter than the anchor clamps it, to the last
// position with a zero offset.
func (s *ScrollState) SequenceReplaced(newLen int) {
	if newLen <= 0 {
		s.anchor = Anchor{}
		return
	}
	if s.anchor.Position >= newLen {
		s.anchor = Anchor{Position: newLen - 1}
	}
}

// ScrollToPosition sets the anchor to (position, 0), clamping position into
// [0, length-1]. Out-of-range positions are not an error.
func (s *ScrollState) ScrollToPosition(position, length int) {
	if length <= 0 {
		s.anchor = Anchor{}
		return
	}
	s.anchor = Anchor{Position: geom.Clamp(position, 0, length-1)}
}

// ScrollToEnd rests the viewport against the end of the sequence, walking
// backward from the last position rather than carrying a huge delta forward.
func (s *ScrollState) ScrollToEnd(view ScrollView) {
	pos, off := maxAnchor(view)
	s.anchor = Anchor{Position: pos, Offset: off}
}

// maxAnchor returns the greatest anchor the viewport may rest at: walking
// from it to the end of the sequence covers exactly one viewport. Walks
// backward from the last position, so the cost is proportional to the
// viewport, not the sequence. A sequence shorter than the viewport pins the
// anchor to the very top.
func maxAnchor(view ScrollView) (int, int) {
	n := view.Len()
	if n == 0 {
		return 0, 0
	}
	vp := view.ViewportExtent()
	if vp <= 0 {
		return n - 1, 0
	}
	rem := vp
	for pos := n - 1; pos >= 0; pos-- {
		ext := view.ExtentAt(pos)
		if ext >= rem {
			return pos, ext - rem
		}
		rem -= ext
	}
	return 0, 0
}
