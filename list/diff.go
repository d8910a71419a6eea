package list

import "fmt"

// Content reconciliation is position-keyed: for every position in the new
// window, the question is "is the item now at this position the same as what
// its slot already shows", answered with structural equality. Nothing ever
// asks where an item moved to, so a full re-sort of a million rows costs one
// comparison per windowed position, the same as a one-row touch-up.
//
// Extent changes discovered by a pass do not need a second windowing step:
// cached extents for changed positions are dropped before the window walk
// runs (Engine.sweepExtents), so the placements handed to this step already
// reflect the new content, and every slot whose placement moved picks up a
// reposition below. Positions before the anchor keep their placements
// relative to the anchor; re-flow only ever propagates away from it.

// buildOps translates one window transition into the slot operations the
// host applies. compareContent is false for scroll-driven passes, where
// items cannot have changed and retained slots need at most a reposition.
func buildOps[T any](pool *SlotPool[T], rec ReconcileResult, next Window, items []T, eq func(a, b T) bool, compareContent bool) []Op[T] {
	ops := make([]Op[T], 0, len(next.Placements)+len(rec.Recycled))

	rebound := make(map[SlotID]struct{}, len(rec.Mounted))
	mountedAt := make(map[int]struct{}, len(rec.Mounted))
	for _, m := range rec.Mounted {
		rebound[m.Slot] = struct{}{}
		mountedAt[m.Position] = struct{}{}
	}

	for _, id := range rec.Recycled {
		if _, ok := rebound[id]; ok {
			continue
		}
		ops = append(ops, Op[T]{Kind: OpUnmount, Slot: id, Position: -1})
	}

	for _, pl := range next.Placements {
		id, ok := pool.Bound(pl.Position)
		if !ok {
			panic(fmt.Sprintf("list: window position %d has no slot after reconcile", pl.Position))
		}
		s := &pool.slots[id]
		item := items[pl.Position]

		if _, entered := mountedAt[pl.Position]; entered {
			ops = append(ops, Op[T]{
				Kind:     OpMount,
				Slot:     id,
				Position: pl.Position,
				Item:     item,
				Offset:   pl.Offset,
				Extent:   pl.Extent,
			})
			s.item = item
			s.offset = pl.Offset
			s.extent = pl.Extent
			continue
		}

		if compareContent && !eq(s.item, item) {
			ops = append(ops, Op[T]{
				Kind:     OpUpdate,
				Slot:     id,
				Position: pl.Position,
				Item:     item,
				Offset:   pl.Offset,
				Extent:   pl.Extent,
			})
			s.item = item
			s.offset = pl.Offset
			s.extent = pl.Extent
			continue
		}

		if s.offset != pl.Offset || s.extent != pl.Extent {
			ops = append(ops, Op[T]{
				Kind:     OpReposition,
				Slot:     id,
				Position: pl.Position,
				Offset:   pl.Offset,
				Extent:   pl.Extent,
			})
			s.offset = pl.Offset
			s.extent = pl.Extent
		}
	}
	return ops
}
