package symbol

// Pool is an intrusive free list of recycled Symbols, owned exclusively
// by one image scanner. It avoids allocation churn across images the
// way zbar_image_scanner_s's `syms`/`nsyms` free list does: recycled
// symbols are pushed back here instead of being freed, and Alloc takes
// from the front of the list before allocating new.
type Pool struct {
	free  *Symbol
	count int
}

// Count returns the number of symbols currently sitting in the free
// list (not attached to any image or cache entry).
func (p *Pool) Count() int {
	return p.count
}

// Alloc returns a Symbol initialized with the given type and payload,
// preferring a recycled instance from the free list over a new
// allocation (mirrors alloc_sym in zbar/img_scanner.c).
func (p *Pool) Alloc(t Type, data []byte) *Symbol {
	s := p.free
	if s != nil {
		p.free = s.next
		p.count--
		s.next = nil
	} else {
		s = &Symbol{}
	}
	s.reset(t, data)
	return s
}

// Recycle returns s to the free list. The caller must have already
// confirmed s has no remaining owners (Unref returned true, or s was
// never handed to a caller).
func (p *Pool) Recycle(s *Symbol) {
	s.next = p.free
	p.free = s
	p.count++
}

// RecycleList returns every symbol in a Next-linked list to the pool,
// honoring per-symbol reference counts: a symbol still externally
// referenced is skipped and kept alive on a new list instead of being
// recycled. It returns the head of that list of un-recycled symbols
// (normally nil).
func (p *Pool) RecycleList(head *Symbol) *Symbol {
	var kept, keptTail *Symbol
	for s := head; s != nil; {
		next := s.next
		if s.Unref() {
			s.next = nil
			p.Recycle(s)
		} else {
			s.next = nil
			if keptTail == nil {
				kept = s
			} else {
				keptTail.next = s
			}
			keptTail = s
		}
		s = next
	}
	return kept
}
