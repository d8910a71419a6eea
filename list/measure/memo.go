package measure

import (
	"github.com/joshuapare/listkit/list"
)

// Memo wraps a Measurer with a content-keyed memo, for measurers whose cost
// is dominated by rendering. The key must change whenever the measured
// extent could change; items that render identically may share a key.
//
// Failed measurements (inner results <= 0) are never memoized, so a
// measurer that cannot complete yet is retried on the next pass.
type Memo[T any] struct {
	inner   list.Measurer[T]
	key     func(position int, item T) string
	extents map[string]int
	hits    int
	misses  int
}

// NewMemo returns a memoizing wrapper around m keyed by key.
func NewMemo[T any](m list.Measurer[T], key func(position int, item T) string) *Memo[T] {
	return &Memo[T]{
		inner:   m,
		key:     key,
		extents: make(map[string]int),
	}
}

// Measure returns the memoized extent for the item's key, measuring through
// the wrapped Measurer on a miss.
func (m *Memo[T]) Measure(position int, item T) int {
	k := m.key(position, item)
	if ext, ok := m.extents[k]; ok {
		m.hits++
		return ext
	}
	m.misses++
	ext := m.inner.Measure(position, item)
	if ext > 0 {
		m.extents[k] = ext
	}
	return ext
}

// InvalidateAll empties the memo. Call it when something outside the keys
// changed every extent at once, a width change being the usual case.
func (m *Memo[T]) InvalidateAll() {
	m.extents = make(map[string]int)
}

// Stats reports memo effectiveness since construction.
func (m *Memo[T]) Stats() (hits, misses, size int) {
	return m.hits, m.misses, len(m.extents)
}
