package symbol

// Cross-image cache timing constants (§4.3). These are fixed design
// defaults, not configurable, matching zbar/img_scanner.c's #define
// block verbatim.
const (
	// CacheConsistency is the number of "near" presentations required
	// before a cached symbol is considered confirmed.
	CacheConsistency = 3
	// CacheProximityMS is the maximum age between two images for them
	// to be considered "nearby".
	CacheProximityMS = 1000
	// CacheHysteresisMS is the minimum time a result must go undetected
	// before it will be reported again.
	CacheHysteresisMS = 2000
	// CacheTimeoutMS is the age after which a cache entry is expunged.
	CacheTimeoutMS = CacheHysteresisMS * 2
)

// Cache is the per-image-scanner cross-image consistency cache: a
// linked list of symbols (their own storage, independent from the
// per-image symbol they summarise) used to require a detection be seen
// repeatedly, within a hysteresis window, before being surfaced with a
// non-negative CacheCount.
type Cache struct {
	head *Symbol
}

// Len reports the number of live entries in the cache.
func (c *Cache) Len() int {
	n := 0
	for s := c.head; s != nil; s = s.next {
		n++
	}
	return n
}

// Drain recycles every cache entry into pool and empties the cache.
// Called when caching is disabled (enable_cache(false)).
func (c *Cache) Drain(pool *Pool) {
	for s := c.head; s != nil; {
		next := s.next
		s.next = nil
		pool.Recycle(s)
		s = next
	}
	c.head = nil
}

// Consult looks up sym (by type+payload) in the cache, ageing out and
// recycling stale entries encountered along the way, then applies the
// consistency/hysteresis update and writes the resulting CacheCount
// into sym. nowMS must be a monotonic millisecond timestamp.
//
// Grounded on cache_lookup + the consistency-check block in
// zbar/img_scanner.c's symbol_handler.
func (c *Cache) Consult(pool *Pool, sym *Symbol, nowMS int64) {
	entry := c.find(pool, sym, nowMS)
	if entry == nil {
		entry = pool.Alloc(sym.Type, sym.Data)
		entry.TimeMS = nowMS - CacheHysteresisMS
		entry.CacheCount = -CacheConsistency
		entry.next = c.head
		c.head = entry
	}

	age := nowMS - entry.TimeMS
	entry.TimeMS = nowMS
	near := age < CacheProximityMS
	far := age >= CacheHysteresisMS
	dup := entry.CacheCount >= 0
	switch {
	case (!dup && !near) || far:
		entry.CacheCount = -CacheConsistency
	case dup || near:
		entry.CacheCount++
	}

	sym.CacheCount = entry.CacheCount
}

// find walks the cache list looking for a type+payload match, recycling
// any entry whose age exceeds CacheTimeoutMS along the way.
func (c *Cache) find(pool *Pool, sym *Symbol, nowMS int64) *Symbol {
	link := &c.head
	for *link != nil {
		entry := *link
		if entry.SameAs(sym.Type, sym.Data) {
			return entry
		}
		if nowMS-entry.TimeMS > CacheTimeoutMS {
			*link = entry.next
			entry.next = nil
			pool.Recycle(entry)
			continue
		}
		link = &entry.next
	}
	return nil
}
