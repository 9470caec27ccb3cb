package symbol_test

import (
	"testing"

	"github.com/cocosip/go-zbarscan/symbol"
)

func TestTypeIsLinear(t *testing.T) {
	linear := []symbol.Type{symbol.EAN8, symbol.UPCE, symbol.UPCA, symbol.EAN13, symbol.CODE128}
	for _, ty := range linear {
		if !ty.IsLinear() {
			t.Errorf("%v.IsLinear() = false, want true", ty)
		}
	}
	notLinear := []symbol.Type{symbol.None, symbol.Partial, symbol.QRCode}
	for _, ty := range notLinear {
		if ty.IsLinear() {
			t.Errorf("%v.IsLinear() = true, want false", ty)
		}
	}
}

func TestPoolAllocRecycle(t *testing.T) {
	var pool symbol.Pool
	s1 := pool.Alloc(symbol.EAN13, []byte("9780201379624"))
	if s1.Quality != 1 {
		t.Errorf("new symbol quality = %d, want 1", s1.Quality)
	}
	pool.Recycle(s1)
	if pool.Count() != 1 {
		t.Fatalf("pool count = %d, want 1", pool.Count())
	}
	s2 := pool.Alloc(symbol.UPCA, []byte("012345678905"))
	if s2 != s1 {
		t.Errorf("Alloc did not reuse recycled symbol")
	}
	if pool.Count() != 0 {
		t.Errorf("pool count = %d, want 0 after reuse", pool.Count())
	}
	if string(s2.Data) != "012345678905" {
		t.Errorf("reused symbol data = %q, want %q", s2.Data, "012345678905")
	}
}

func TestPoolRecycleListHonorsRefs(t *testing.T) {
	var pool symbol.Pool
	a := pool.Alloc(symbol.EAN13, []byte("a"))
	a.Ref() // baseline ownership by the image
	b := pool.Alloc(symbol.EAN13, []byte("b"))
	b.Ref()
	b.Ref() // caller retained an extra reference
	a.SetNext(b)

	kept := pool.RecycleList(a)
	if pool.Count() != 1 {
		t.Fatalf("pool count = %d, want 1 (only a recycled)", pool.Count())
	}
	if kept != b {
		t.Fatalf("kept list head = %v, want b", kept)
	}
}

func TestCacheConsistency(t *testing.T) {
	var pool symbol.Pool
	var cache symbol.Cache

	data := []byte("9780201379624")
	now := int64(0)
	var last *symbol.Symbol
	for i := 0; i < symbol.CacheConsistency; i++ {
		sym := pool.Alloc(symbol.EAN13, data)
		cache.Consult(&pool, sym, now)
		if sym.CacheCount >= 0 {
			t.Fatalf("presentation %d: cache_count = %d, want < 0 (only %d consistent so far)",
				i, sym.CacheCount, i+1)
		}
		last = sym
		now += 300 // well within CacheProximityMS
	}
	// One more "near" presentation should cross into confirmed territory.
	sym := pool.Alloc(symbol.EAN13, data)
	cache.Consult(&pool, sym, now)
	if sym.CacheCount < 0 {
		t.Errorf("final cache_count = %d, want >= 0", sym.CacheCount)
	}
	_ = last
}

func TestCacheExpunge(t *testing.T) {
	var pool symbol.Pool
	var cache symbol.Cache

	data := []byte("x")
	sym := pool.Alloc(symbol.EAN13, data)
	cache.Consult(&pool, sym, 0)
	if cache.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", cache.Len())
	}

	// Present something else much later so the stale entry ages out
	// during the cache walk.
	other := pool.Alloc(symbol.EAN13, []byte("y"))
	cache.Consult(&pool, other, symbol.CacheTimeoutMS+1)
	if cache.Len() != 1 {
		t.Fatalf("cache len after expunge+insert = %d, want 1", cache.Len())
	}
}
