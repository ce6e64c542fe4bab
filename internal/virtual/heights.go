package virtual

import "container/list"

// HeightStats tracks how the height cache is used.
type HeightStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Heights caches the last measured height of each item by key. Entries
// outside the rendered window are kept; they are only read again when that
// key scrolls back into view, and are overwritten on the next measurement.
//
// A capacity of zero means the cache never evicts. Otherwise entries are kept
// in least-recently-measured order and trimmed by Prune.
type Heights struct {
	capacity int
	entries  map[string]*list.Element
	order    *list.List
	stats    HeightStats
}

type heightEntry struct {
	key    string
	height int
}

func NewHeights(capacity int) *Heights {
	return &Heights{
		capacity: max(0, capacity),
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached height for key, or 0 when it was never measured.
func (h *Heights) Get(key string) (int, bool) {
	el, ok := h.entries[key]
	if !ok {
		h.stats.Misses++
		return 0, false
	}
	h.stats.Hits++
	return el.Value.(*heightEntry).height, true
}

// Set records a measurement and marks the key as most recently measured.
func (h *Heights) Set(key string, height int) {
	if el, ok := h.entries[key]; ok {
		el.Value.(*heightEntry).height = height
		h.order.MoveToFront(el)
		return
	}
	h.entries[key] = h.order.PushFront(&heightEntry{key: key, height: height})
}

// Prune evicts the least recently measured entries until the cache fits its
// capacity. It never shrinks the cache below keep entries, which lets the
// caller protect the window it just measured.
func (h *Heights) Prune(keep int) int {
	if h.capacity == 0 {
		return 0
	}
	limit := max(h.capacity, keep)
	evicted := 0
	for h.order.Len() > limit {
		el := h.order.Back()
		h.order.Remove(el)
		delete(h.entries, el.Value.(*heightEntry).key)
		evicted++
	}
	h.stats.Evictions += uint64(evicted)
	return evicted
}

func (h *Heights) Len() int {
	return len(h.entries)
}

func (h *Heights) Capacity() int {
	return h.capacity
}

// Reset drops every entry. Stats are kept.
func (h *Heights) Reset() {
	h.entries = make(map[string]*list.Element)
	h.order.Init()
}

func (h *Heights) Stats() HeightStats {
	return h.stats
}
