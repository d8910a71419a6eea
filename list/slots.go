package list

import "fmt"

// SlotID is a stable handle to one rendering slot. IDs are small dense
// integers assigned at slot creation and never reused for a different slot,
// so hosts can index their own per-slot state by it.
type SlotID int

// Shape keys the recycle pool. Slots are only rebound to positions of the
// same shape, so hosts with heterogeneous row resources (a header row, a
// data row) never receive a mismatched slot. The zero value is the shape of
// everything when the host does not differentiate.
type Shape string

// slot is one reusable rendering resource. It owns the transient rendering
// state for whichever position it is currently bound to: the item last
// rendered into it and the placement last announced to the host.
type slot[T any] struct {
	id     SlotID
	shape  Shape
	pos    int // -1 while free
	item   T
	bound  bool
	offset int
	extent int
}

// Rebind pairs a slot with the position it was just bound to.
type Rebind struct {
	Slot     SlotID
	Position int
}

// ReconcileResult reports what one window transition did to the pool.
type ReconcileResult struct {
	// Mounted lists every position that entered the window with the slot it
	// received, in window order.
	Mounted []Rebind
	// Recycled lists the slots released by positions that left the window,
	// whether or not they were rebound within the same transition.
	Recycled []SlotID
	// Created lists the slots newly allocated because the free list had none
	// of the right shape. Always a subset of the slots in Mounted.
	Created []SlotID
}

// SlotPool owns every slot for the lifetime of an Engine. Slots are created
// lazily as the window grows and recycled, never destroyed, as it shifts.
type SlotPool[T any] struct {
	slots []slot[T]
	byPos map[int]SlotID
	free  map[Shape][]SlotID
}

// NewSlotPool returns an empty pool.
func NewSlotPool[T any]() *SlotPool[T] {
	return &SlotPool[T]{
		byPos: make(map[int]SlotID),
		free:  make(map[Shape][]SlotID),
	}
}

// Bound returns the slot bound to position, if any.
func (p *SlotPool[T]) Bound(position int) (SlotID, bool) {
	id, ok := p.byPos[position]
	return id, ok
}

// Count is the total number of slots ever created, free or bound.
func (p *SlotPool[T]) Count() int { return len(p.slots) }

// FreeCount is the number of slots of the given shape sitting in the
// recycle pool.
func (p *SlotPool[T]) FreeCount(shape Shape) int { return len(p.free[shape]) }

// Reconcile rebinds slots for the transition from the prev window to the
// next one. Positions present in both windows keep their slot untouched.
// Positions that left release their slot into the shape-keyed free list;
// positions that entered take a free slot of their shape, or a new one.
//
// Releases happen before binds so that a window shift reuses the slots it
// just released instead of growing the pool.
func (p *SlotPool[T]) Reconcile(prev, next Window, shapeOf func(position int) Shape) ReconcileResult {
	var res ReconcileResult

	if !prev.Empty() {
		for pos := prev.First; pos <= prev.Last; pos++ {
			if next.Contains(pos) {
				continue
			}
			id, ok := p.byPos[pos]
			if !ok {
				continue
			}
			p.release(id)
			res.Recycled = append(res.Recycled, id)
		}
	}

	if !next.Empty() {
		for pos := next.First; pos <= next.Last; pos++ {
			if _, ok := p.byPos[pos]; ok {
				continue
			}
			id, created := p.take(shapeOf(pos))
			p.bind(id, pos)
			res.Mounted = append(res.Mounted, Rebind{Slot: id, Position: pos})
			if created {
				res.Created = append(res.Created, id)
			}
		}
	}
	return res
}

func (p *SlotPool[T]) release(id SlotID) {
	s := &p.slots[id]
	if !s.bound {
		panic(fmt.Sprintf("list: releasing unbound slot %d", id))
	}
	delete(p.byPos, s.pos)
	var zero T
	s.pos = -1
	s.bound = false
	s.item = zero
	s.offset = 0
	s.extent = 0
	p.free[s.shape] = append(p.free[s.shape], id)
}

func (p *SlotPool[T]) take(shape Shape) (SlotID, bool) {
	if ids := p.free[shape]; len(ids) > 0 {
		id := ids[len(ids)-1]
		p.free[shape] = ids[:len(ids)-1]
		return id, false
	}
	id := SlotID(len(p.slots))
	p.slots = append(p.slots, slot[T]{id: id, shape: shape, pos: -1})
	return id, true
}

func (p *SlotPool[T]) bind(id SlotID, position int) {
	s := &p.slots[id]
	if s.bound {
		panic(fmt.Sprintf("list: slot %d already bound to position %d", id, s.pos))
	}
	if other, ok := p.byPos[position]; ok {
		panic(fmt.Sprintf("list: position %d already held by slot %d", position, other))
	}
	s.pos = position
	s.bound = true
	p.byPos[position] = id
}
