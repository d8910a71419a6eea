package list

import "fmt"

// OpKind enumerates the slot operations emitted by an update pass.
type OpKind int

const (
	// OpMount binds a slot to a position and renders Item into it. A slot
	// that was released and immediately rebound within the same pass emits a
	// single mount at its new position, no unmount.
	OpMount OpKind = iota

	// OpUpdate re-renders the content of a slot that stays bound to its
	// position but whose item changed.
	OpUpdate

	// OpUnmount releases a slot whose position left the window and that was
	// not rebound within the same pass.
	OpUnmount

	// OpReposition moves a mounted slot to a new viewport offset or extent
	// without touching its content.
	OpReposition
)

func (k OpKind) String() string {
	switch k {
	case OpMount:
		return "mount"
	case OpUpdate:
		return "update"
	case OpUnmount:
		return "unmount"
	case OpReposition:
		return "reposition"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one slot operation. Ops within a pass carry no inter-op ordering
// dependency; the host may apply them in any order.
//
// Field validity by kind:
//
//   - OpMount: Slot, Position, Item, Offset, Extent
//   - OpUpdate: Slot, Position, Item, Offset, Extent
//   - OpUnmount: Slot only (Position is -1, Item is the zero value)
//   - OpReposition: Slot, Position, Offset, Extent (Item is the zero value)
//
// Offset is relative to the viewport's leading edge and may be negative for
// a row partially scrolled above it or for prefetch rows.
type Op[T any] struct {
	Kind     OpKind
	Slot     SlotID
	Position int
	Item     T
	Offset   int
	Extent   int
}

// PassStats summarizes one update pass. Handy for status lines and tests;
// derived entirely from the returned ops.
type PassStats struct {
	Mounted      int
	Updated      int
	Unmounted    int
	Repositioned int
}

// CountOps tallies ops by kind.
func CountOps[T any](ops []Op[T]) PassStats {
	var s PassStats
	for _, op := range ops {
		switch op.Kind {
		case OpMount:
			s.Mounted++
		case OpUpdate:
			s.Updated++
		case OpUnmount:
			s.Unmounted++
		case OpReposition:
			s.Repositioned++
		}
	}
	return s
}
