package decoder_test

import (
	"testing"

	"github.com/cocosip/go-zbarscan/decoder"
	"github.com/cocosip/go-zbarscan/fixed"
	"github.com/cocosip/go-zbarscan/symbol"
)

// stubSymbology is a minimal decoder.Symbology for exercising the
// dispatcher in isolation from any real width-pattern matching.
type stubSymbology struct {
	results   []symbol.Type
	resetN    int
	newScanN  int
	data      []byte
	decodeLog []uint
}

func (s *stubSymbology) Decode(d *decoder.Decoder) symbol.Type {
	s.decodeLog = append(s.decodeLog, d.Window().Idx())
	if len(s.results) == 0 {
		return symbol.None
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r
}

func (s *stubSymbology) Data() []byte { return s.data }
func (s *stubSymbology) Reset()       { s.resetN++ }
func (s *stubSymbology) NewScan()     { s.newScanN++ }

func TestDispatchFirstRegistrantPartialWins(t *testing.T) {
	first := &stubSymbology{results: []symbol.Type{symbol.Partial}}
	second := &stubSymbology{results: []symbol.Type{symbol.None}}
	d := decoder.New(first, second)

	got := d.DecodeWidth(fixed.FromInt(1))
	if got != symbol.Partial {
		t.Fatalf("got %v, want Partial from first registrant", got)
	}
}

func TestDispatchLaterRegistrantNeedsFullMatch(t *testing.T) {
	first := &stubSymbology{results: []symbol.Type{symbol.None}}
	second := &stubSymbology{results: []symbol.Type{symbol.Partial}}
	d := decoder.New(first, second)

	got := d.DecodeWidth(fixed.FromInt(1))
	if got != symbol.None {
		t.Fatalf("got %v, want None: a later registrant's Partial must not override", got)
	}
}

func TestDispatchLaterRegistrantOverridesOnFullMatch(t *testing.T) {
	first := &stubSymbology{results: []symbol.Type{symbol.None}}
	second := &stubSymbology{results: []symbol.Type{symbol.EAN13}}
	d := decoder.New(first, second)

	got := d.DecodeWidth(fixed.FromInt(1))
	if got != symbol.EAN13 {
		t.Fatalf("got %v, want EAN13 from second registrant's full match", got)
	}
}

func TestLockPreventsOtherSymbology(t *testing.T) {
	a := &stubSymbology{}
	b := &stubSymbology{}
	d := decoder.New(a, b)

	d.Lock(a)
	if d.Locked(a) {
		t.Fatalf("Locked(a) should be false: a holds its own lock")
	}
	if !d.Locked(b) {
		t.Fatalf("Locked(b) should be true: a holds the lock")
	}
	d.Unlock(b) // not the holder, no effect
	if !d.Locked(b) {
		t.Fatalf("Unlock by non-holder must not release the lock")
	}
	d.Unlock(a)
	if d.Locked(b) {
		t.Fatalf("lock should be released after holder unlocks")
	}
}

func TestSuccessfulDecodeClearsLock(t *testing.T) {
	a := &stubSymbology{results: []symbol.Type{symbol.EAN13}}
	d := decoder.New(a)
	d.Lock(a)

	d.DecodeWidth(fixed.FromInt(1))
	if d.Locked(a) {
		t.Fatalf("a successful decode must unconditionally clear the lock")
	}
}

func TestResetClearsAllSymbologies(t *testing.T) {
	a := &stubSymbology{}
	b := &stubSymbology{}
	d := decoder.New(a, b)

	d.Reset()
	if a.resetN != 1 || b.resetN != 1 {
		t.Fatalf("Reset() must call Reset on every registered symbology")
	}
}

func TestNewScanClearsAllSymbologies(t *testing.T) {
	a := &stubSymbology{}
	b := &stubSymbology{}
	d := decoder.New(a, b)

	d.NewScan()
	if a.newScanN != 1 || b.newScanN != 1 {
		t.Fatalf("NewScan() must call NewScan on every registered symbology")
	}
}
