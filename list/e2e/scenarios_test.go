// Package e2e drives the engine through its public API the way a rendering
// host would: every op stream is applied to a slot mirror, and the mirror is
// checked against the window after each pass. Divergence between the two is
// the bug class this suite exists to catch.
package e2e

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/listkit/list"
)

// hostRow is what a renderer keeps per slot: the bound position, the content
// it last painted, and where the row sits.
type hostRow struct {
	position int
	item     string
	offset   int
	extent   int
}

type host struct {
	t    *testing.T
	rows map[list.SlotID]hostRow
}

func newHost(t *testing.T) *host {
	return &host{t: t, rows: make(map[list.SlotID]hostRow)}
}

func (h *host) apply(ops []list.Op[string]) {
	h.t.Helper()
	for _, op := range ops {
		switch op.Kind {
		case list.OpMount:
			h.rows[op.Slot] = hostRow{
				position: op.Position,
				item:     op.Item,
				offset:   op.Offset,
				extent:   op.Extent,
			}
		case list.OpUpdate:
			row, ok := h.rows[op.Slot]
			require.True(h.t, ok, "update for slot %d the host never mounted", op.Slot)
			require.Equal(h.t, op.Position, row.position, "update crossed positions")
			row.item = op.Item
			h.rows[op.Slot] = row
		case list.OpReposition:
			row, ok := h.rows[op.Slot]
			require.True(h.t, ok, "reposition for slot %d the host never mounted", op.Slot)
			require.Equal(h.t, op.Position, row.position, "reposition crossed positions")
			row.offset = op.Offset
			row.extent = op.Extent
			h.rows[op.Slot] = row
		case list.OpUnmount:
			_, ok := h.rows[op.Slot]
			require.True(h.t, ok, "unmount for slot %d the host never mounted", op.Slot)
			delete(h.rows, op.Slot)
		default:
			h.t.Fatalf("unknown op kind %v", op.Kind)
		}
	}
}

// check verifies the mirror agrees with the engine's window: same positions,
// same geometry, and content matching the current sequence.
func (h *host) check(e *list.Engine[string], items []string) {
	h.t.Helper()
	w := e.Window()
	require.Len(h.t, h.rows, w.Size(), "host renders a different row count than the window")

	byPos := make(map[int]hostRow, len(h.rows))
	for _, row := range h.rows {
		_, dup := byPos[row.position]
		require.False(h.t, dup, "two slots rendering position %d", row.position)
		byPos[row.position] = row
	}
	for _, p := range w.Placements {
		row, ok := byPos[p.Position]
		require.True(h.t, ok, "window position %d missing from host", p.Position)
		require.Equal(h.t, p.Offset, row.offset, "offset drift at position %d", p.Position)
		require.Equal(h.t, p.Extent, row.extent, "extent drift at position %d", p.Position)
		require.Equal(h.t, items[p.Position], row.item, "stale content at position %d", p.Position)
	}
}

// auditWindow checks the geometric invariants every pass must uphold.
func auditWindow(t *testing.T, e *list.Engine[string], margin int) {
	t.Helper()
	w := e.Window()
	if w.Empty() {
		return
	}
	require.GreaterOrEqual(t, w.First, 0)
	require.Less(t, w.Last, e.Len())
	require.True(t, w.Contains(e.Anchor().Position), "anchor fell out of its own window")
	require.LessOrEqual(t, w.Size(), e.Viewport()+2*margin+2, "window grew beyond its bound")

	for i, p := range w.Placements {
		if i == 0 {
			require.Equal(t, w.First, p.Position)
			require.LessOrEqual(t, p.Offset, 0, "topmost row must start at or above the viewport edge")
			continue
		}
		prev := w.Placements[i-1]
		require.Equal(t, prev.Position+1, p.Position, "window positions must be contiguous")
		require.Equal(t, prev.Offset+prev.Extent, p.Offset, "rows must tile without gaps")
	}

	covered := w.Placements[len(w.Placements)-1]
	if w.Last < e.Len()-1 {
		require.GreaterOrEqual(t, covered.Offset+covered.Extent, e.Viewport()+margin,
			"window stopped short of covering the viewport")
	}
}

// --- scenarios ---

// TestScenario_ResortKeepsViewportStill is the canonical re-sort: five rows,
// the viewport anchored one row down, then the whole sequence reverses. The
// anchor, the window bounds and the scroll offset must not move; only the
// rows whose content changed under their position repaint.
func TestScenario_ResortKeepsViewportStill(t *testing.T) {
	e := list.New[string](list.Options[string]{ViewportExtent: 3})
	h := newHost(t)

	items := []string{"A", "B", "C", "D", "E"}
	ops, err := e.SetSequence(items)
	require.NoError(t, err)
	h.apply(ops)
	h.apply(e.UserScroll(1))
	require.Equal(t, list.Anchor{Position: 1}, e.Anchor())

	reversed := []string{"E", "D", "C", "B", "A"}
	ops, err = e.SetSequence(reversed)
	require.NoError(t, err)
	h.apply(ops)

	stats := list.CountOps(ops)
	require.Equal(t, 2, stats.Updated, "B and D swapped under positions 1 and 3")
	require.Zero(t, stats.Mounted)
	require.Zero(t, stats.Unmounted)
	require.Zero(t, stats.Repositioned)
	for _, op := range ops {
		require.NotEqual(t, 2, op.Position, "C kept its position and content, nothing may touch it")
	}

	require.Equal(t, list.Anchor{Position: 1}, e.Anchor())
	first, last := e.VisibleRange()
	require.Equal(t, 1, first)
	require.Equal(t, 3, last)
	require.Equal(t, 1, e.ScrollOffset())
	require.Equal(t, 5, e.TotalExtent())
	h.check(e, reversed)
}

// TestScenario_SwapEqualExtentsKeepsGeometry permutes content while keeping
// the per-position extents identical: the stronger stability case where even
// row offsets must come out byte-for-byte the same.
func TestScenario_SwapEqualExtentsKeepsGeometry(t *testing.T) {
	extentOf := map[string]int{"aa": 2, "b": 1, "ccc": 3, "d": 1, "ee": 2}
	m := list.MeasureFunc[string](func(_ int, item string) int { return extentOf[item] })
	e := list.New[string](list.Options[string]{ViewportExtent: 4, Measurer: m})
	h := newHost(t)

	items := []string{"aa", "b", "ccc", "d", "ee"}
	ops, err := e.SetSequence(items)
	require.NoError(t, err)
	h.apply(ops)
	h.apply(e.UserScroll(2))
	require.Equal(t, list.Anchor{Position: 1}, e.Anchor())

	before := e.Window()
	offBefore := e.ScrollOffset()

	// Swap items of equal extent across positions: 0<->4 and 1<->3.
	swapped := []string{"ee", "d", "ccc", "b", "aa"}
	ops, err = e.SetSequence(swapped)
	require.NoError(t, err)
	h.apply(ops)

	after := e.Window()
	require.Equal(t, before, after, "equal extents per position must reproduce identical geometry")
	require.Equal(t, offBefore, e.ScrollOffset())

	stats := list.CountOps(ops)
	require.Zero(t, stats.Mounted)
	require.Zero(t, stats.Unmounted)
	require.Zero(t, stats.Repositioned)
	require.Equal(t, 1, stats.Updated, "only position 1 changed content inside the window")
	h.check(e, swapped)
}

// TestScenario_ChurnAudit runs a seeded mix of permutes, scrolls, resizes
// and re-measures, auditing the host mirror and the window invariants after
// every single pass.
func TestScenario_ChurnAudit(t *testing.T) {
	const margin = 2
	r := rand.New(rand.NewSource(42))

	item := func(id int) string { return fmt.Sprintf("n%03d", id) }
	extent := func(item string) int { return 1 + int(item[len(item)-1]-'0')%3 }
	m := list.MeasureFunc[string](func(_ int, it string) int { return extent(it) })

	e := list.New[string](list.Options[string]{
		ViewportExtent: 10,
		PrefetchMargin: margin,
		Measurer:       m,
	})
	h := newHost(t)

	nextID := 0
	ids := make([]int, 0, 64)
	for range 40 {
		ids = append(ids, nextID)
		nextID++
	}

	build := func() []string {
		items := make([]string, len(ids))
		for i, id := range ids {
			items[i] = item(id)
		}
		return items
	}

	items := build()
	ops, err := e.SetSequence(items)
	require.NoError(t, err)
	h.apply(ops)
	h.check(e, items)

	for step := 0; step < 120; step++ {
		var ops []list.Op[string]
		switch roll := r.Intn(100); {
		case roll < 30: // permute
			r.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
			items = build()
			ops, err = e.SetSequence(items)
			require.NoError(t, err)
		case roll < 45: // grow
			for range 1 + r.Intn(5) {
				ids = append(ids, nextID)
				nextID++
			}
			items = build()
			ops, err = e.SetSequence(items)
			require.NoError(t, err)
		case roll < 55: // shrink, sometimes to nothing
			ids = ids[:r.Intn(len(ids)+1)]
			items = build()
			ops, err = e.SetSequence(items)
			require.NoError(t, err)
		case roll < 75: // wheel
			ops = e.UserScroll(r.Intn(7) - 3)
		case roll < 82: // jump
			ops = e.ScrollTo(r.Intn(len(ids) + 1))
		case roll < 88: // tail
			ops = e.ScrollToEnd()
		case roll < 95: // layout change
			ops = e.SetViewport(r.Intn(15))
		default: // forced re-measure of one position
			if len(ids) > 0 {
				ops = e.Remeasure(r.Intn(len(ids)))
			}
		}

		h.apply(ops)
		h.check(e, items)
		auditWindow(t, e, margin)
		require.GreaterOrEqual(t, e.ScrollOffset(), 0)
		require.GreaterOrEqual(t, e.TotalExtent(), 0)
		if len(items) == 0 {
			require.Equal(t, 0, e.TotalExtent())
			require.Equal(t, list.Anchor{}, e.Anchor())
		}
	}
}
