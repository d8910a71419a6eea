package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixed_ReportsConstantExtent(t *testing.T) {
	m := Fixed[string](3)
	require.Equal(t, 3, m.Measure(0, "a"))
	require.Equal(t, 3, m.Measure(99, "completely different"))
}

func TestFixed_NonPositiveExtentBecomesOne(t *testing.T) {
	require.Equal(t, 1, Fixed[string](0).Measure(0, "a"))
	require.Equal(t, 1, Fixed[string](-5).Measure(0, "a"))
}

func TestMeasureFunc_Adapts(t *testing.T) {
	m := MeasureFunc[string](func(position int, item string) int {
		return position + len(item)
	})
	require.Equal(t, 7, m.Measure(4, "abc"))
}

func TestExtentCache_SumTracksPutAndDrop(t *testing.T) {
	c := newExtentCache()
	c.put(0, 3)
	c.put(1, 2)
	require.Equal(t, 5, c.sum)
	require.Equal(t, 2, c.size())

	// Overwriting replaces the old contribution instead of stacking it.
	c.put(0, 7)
	require.Equal(t, 9, c.sum)
	require.Equal(t, 2, c.size())

	c.drop(1)
	require.Equal(t, 7, c.sum)
	require.Equal(t, 1, c.size())

	ext, ok := c.get(0)
	require.True(t, ok)
	require.Equal(t, 7, ext)
	_, ok = c.get(1)
	require.False(t, ok)
}

func TestExtentCache_PendingLifecycle(t *testing.T) {
	c := newExtentCache()
	c.markPending(4)
	require.Contains(t, c.pending, 4)
	require.Equal(t, 0, c.size(), "a pending position holds no measured extent")

	// A real measurement retires the pending mark.
	c.put(4, 2)
	require.NotContains(t, c.pending, 4)
	require.Equal(t, 2, c.sum)

	// Dropping removes both kinds of record.
	c.markPending(5)
	c.drop(5)
	c.drop(4)
	require.Empty(t, c.pending)
	require.Equal(t, 0, c.sum)
}

func TestExtentCache_DemoteKeepsLastKnown(t *testing.T) {
	c := newExtentCache()
	c.put(3, 4)

	c.demote(3)
	_, ok := c.get(3)
	require.False(t, ok, "a demoted extent must not be trusted by the walk")
	ext, ok := c.lastKnown(3)
	require.True(t, ok)
	require.Equal(t, 4, ext)
	require.Equal(t, 4, c.sum, "demotion moves the value, not the totals")
	require.Equal(t, 1, c.size())

	// A real measurement retires the stale value.
	c.put(3, 6)
	ext, ok = c.get(3)
	require.True(t, ok)
	require.Equal(t, 6, ext)
	require.Equal(t, 6, c.sum)
	require.Equal(t, 1, c.size())

	// Dropping a stale entry removes its contribution too.
	c.demote(3)
	c.drop(3)
	require.Equal(t, 0, c.sum)
	require.Equal(t, 0, c.size())
	_, ok = c.lastKnown(3)
	require.False(t, ok)
}

func TestExtentCache_Clear(t *testing.T) {
	c := newExtentCache()
	c.put(0, 3)
	c.demote(0)
	c.markPending(1)
	c.clear()
	require.Equal(t, 0, c.sum)
	require.Equal(t, 0, c.size())
	require.Empty(t, c.pending)
}
