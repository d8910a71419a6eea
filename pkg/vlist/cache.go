package vlist

import (
	"container/list"
)

// cacheKey identifies one rendered row. The cursor flag separates the
// highlighted rendering from the plain one; width is not part of the key
// because a width change clears the whole cache.
type cacheKey struct {
	position int
	cursor   bool
}

// CacheStats tracks render cache effectiveness since the model was created.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns the hit rate as a percentage, 0 when nothing was asked.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

type cacheEntry struct {
	key   cacheKey
	value string
}

// renderCache is a fixed-capacity LRU for rendered rows. A capacity of 0
// disables caching, turning every lookup into a miss.
type renderCache struct {
	capacity int
	items    map[cacheKey]*list.Element
	order    *list.List // front = most recently used
	stats    CacheStats
}

func newRenderCache(capacity int) *renderCache {
	return &renderCache{
		capacity: capacity,
		items:    make(map[cacheKey]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *renderCache) get(key cacheKey) (string, bool) {
	if c.capacity <= 0 {
		return "", false
	}
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		c.stats.Hits++
		return elem.Value.(*cacheEntry).value, true
	}
	c.stats.Misses++
	return "", false
}

func (c *renderCache) put(key cacheKey, value string) {
	if c.capacity <= 0 {
		return
	}
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = value
		return
	}
	if c.order.Len() >= c.capacity {
		if back := c.order.Back(); back != nil {
			evicted := c.order.Remove(back).(*cacheEntry)
			delete(c.items, evicted.key)
			c.stats.Evictions++
		}
	}
	elem := c.order.PushFront(&cacheEntry{key: key, value: value})
	c.items[key] = elem
}

// invalidatePosition drops both the plain and the cursor rendering of one
// position. Called when content changes under a position; repositions keep
// their cache entries since the rendering is unchanged.
func (c *renderCache) invalidatePosition(position int) {
	for _, cursor := range [2]bool{false, true} {
		key := cacheKey{position: position, cursor: cursor}
		if elem, ok := c.items[key]; ok {
			c.order.Remove(elem)
			delete(c.items, key)
		}
	}
}

// clear empties the cache but preserves the stats.
func (c *renderCache) clear() {
	c.items = make(map[cacheKey]*list.Element, c.capacity)
	c.order.Init()
}

func (c *renderCache) len() int { return c.order.Len() }
