// Package list implements a position-stable virtualized list engine: it
// renders a windowed subset of a large, frequently re-sorted sequence while
// guaranteeing that the viewport does not move when the order changes. Only
// the content of the visible slots changes.
//
// # Overview
//
// Most list reconcilers are identity-keyed: they track where each item moved
// and animate or re-mount accordingly, which costs at least O(N log N) on a
// full re-sort and moves the user's viewport around. This engine is
// position-keyed instead. Positions (integer indexes into the sequence) are
// the unit of identity; the scroll anchor, the rendering slots and the diff
// all speak in positions. Replacing the sequence with any permutation leaves
// the anchor untouched, so whatever items land inside the window are simply
// rendered into the slots already standing there. The cost of any update is
// O(window), independent of sequence length and reorder distance.
//
// # Key Types
//
//   - Engine: the controller façade; the only mutation entry points are
//     SetSequence, UserScroll, ScrollTo, ScrollToEnd, SetViewport and
//     Remeasure, each running one atomic update pass.
//   - Anchor: the scroll location, a (position, offset) pair.
//   - ScrollState: owns the anchor and its clamping rules.
//   - Window, Placement: the contiguous positions currently rendered and
//     their viewport-relative offsets, recomputed every pass from the anchor
//     and measured extents, never stored per item.
//   - SlotPool, SlotID: reusable rendering resources bound to one position
//     at a time and recycled through a shape-keyed free list.
//   - Op: the slot operations (mount, update, unmount, reposition) a pass
//     emits for the host renderer.
//   - Measurer: per-item extent measurement with estimate fallback.
//
// # Update Passes
//
// Every trigger funnels through the same pass: compute the window from the
// anchor, reconcile slots against it, diff content per position. A pass runs
// to completion on the caller's goroutine; the engine is single-threaded by
// contract and holds no locks. Ops from a superseded pass are simply
// discarded by the host in favor of the next pass's ops.
//
// # Usage
//
//	eng := list.New[string](list.Options[string]{
//		ViewportExtent: 10,
//		PrefetchMargin: 2,
//	})
//	ops, err := eng.SetSequence(rows)
//	if err != nil {
//		return err
//	}
//	apply(ops)                  // host renders mounts/updates
//	apply(eng.UserScroll(3))    // wheel, keys, ...
//	first, last := eng.VisibleRange()
//
// Hosts that render styled terminal rows can use the measure subpackage for
// width-aware row measurement, or pkg/vlist for a complete Bubble Tea
// component built on this engine.
package list
