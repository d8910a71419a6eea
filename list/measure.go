package list

import "github.com/joshuapare/listkit/internal/geom"

// Measurer reports the extent of the item occupying a position, in extent
// units along the scroll axis (terminal rows, pixels, whatever the host
// renders in).
//
// Measure must be deterministic and side-effect free for a given
// (position, item) pair: the windowing walk calls it speculatively, possibly
// several times, and caches the result. A return value <= 0 means the
// measurement could not complete yet (content not loadable, width unknown);
// the engine substitutes its configured estimate and keeps the position
// marked for re-measurement until a later pass obtains a real extent.
type Measurer[T any] interface {
	Measure(position int, item T) int
}

// MeasureFunc adapts a plain function to the Measurer interface.
type MeasureFunc[T any] func(position int, item T) int

// Measure calls f.
func (f MeasureFunc[T]) Measure(position int, item T) int { return f(position, item) }

// Fixed returns a Measurer reporting the same extent for every item.
// Non-positive extents are treated as 1.
func Fixed[T any](extent int) Measurer[T] {
	if extent <= 0 {
		extent = 1
	}
	return MeasureFunc[T](func(int, T) int { return extent })
}

// extentCache holds per-position extents in three states. measured entries
// are authoritative: the windowing walk trusts them. stale entries are the
// last extent seen at a position whose item has since changed; the walk
// re-measures such positions, but query reads and failed measurements use
// the stale value as the best available estimate. This is what keeps
// ScrollOffset and TotalExtent still across a permutation that only moves
// equal-extent items around. pending marks positions whose measurer could
// not complete, so a later pass retries them.
type extentCache struct {
	measured map[int]int
	stale    map[int]int
	pending  map[int]struct{}
	sum      int // saturating sum of measured plus stale entries
}

func newExtentCache() extentCache {
	return extentCache{
		measured: make(map[int]int),
		stale:    make(map[int]int),
		pending:  make(map[int]struct{}),
	}
}

// get returns the authoritative extent; stale values do not count.
func (c *extentCache) get(position int) (int, bool) {
	ext, ok := c.measured[position]
	return ext, ok
}

// lastKnown returns the authoritative extent or, failing that, the stale
// one. Query reads go through here.
func (c *extentCache) lastKnown(position int) (int, bool) {
	if ext, ok := c.measured[position]; ok {
		return ext, true
	}
	ext, ok := c.stale[position]
	return ext, ok
}

func (c *extentCache) put(position, extent int) {
	if old, ok := c.measured[position]; ok {
		c.sum = geom.SatAdd(c.sum, -old)
	} else if old, ok := c.stale[position]; ok {
		c.sum = geom.SatAdd(c.sum, -old)
		delete(c.stale, position)
	}
	c.measured[position] = extent
	c.sum = geom.SatAdd(c.sum, extent)
	delete(c.pending, position)
}

func (c *extentCache) markPending(position int) {
	c.pending[position] = struct{}{}
}

// demote moves a measured extent into the stale state: no longer trusted by
// the walk, still consulted as an estimate.
func (c *extentCache) demote(position int) {
	if ext, ok := c.measured[position]; ok {
		delete(c.measured, position)
		c.stale[position] = ext
	}
}

func (c *extentCache) drop(position int) {
	if old, ok := c.measured[position]; ok {
		c.sum = geom.SatAdd(c.sum, -old)
		delete(c.measured, position)
	} else if old, ok := c.stale[position]; ok {
		c.sum = geom.SatAdd(c.sum, -old)
		delete(c.stale, position)
	}
	delete(c.pending, position)
}

func (c *extentCache) clear() {
	c.measured = make(map[int]int)
	c.stale = make(map[int]int)
	c.pending = make(map[int]struct{})
	c.sum = 0
}

// size counts every position with a known extent, measured or stale.
func (c *extentCache) size() int { return len(c.measured) + len(c.stale) }
