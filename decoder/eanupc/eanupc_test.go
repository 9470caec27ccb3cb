package eanupc_test

import (
	"testing"

	"github.com/cocosip/go-zbarscan/decoder"
	"github.com/cocosip/go-zbarscan/decoder/eanupc"
	"github.com/cocosip/go-zbarscan/fixed"
	"github.com/cocosip/go-zbarscan/symbol"
)

// encodeEAN13 renders the module-width sequence (in modules, not
// pixels) of a full EAN-13 barcode body for the given 13 digits,
// including start/center/end guards, for feeding directly into the
// decoder's width stream.
func encodeEAN13(digits string) []int {
	first := int(digits[0] - '0')
	pattern := []byte(eanParityForTest(first))
	var mods []int
	mods = append(mods, 1, 1, 1) // start guard
	for i := 0; i < 6; i++ {
		d := int(digits[1+i] - '0')
		if pattern[i] == 'L' {
			mods = append(mods, lPatternForTest(d)[:]...)
		} else {
			mods = append(mods, gPatternForTest(d)[:]...)
		}
	}
	mods = append(mods, 1, 1, 1, 1, 1) // center guard
	for i := 0; i < 6; i++ {
		d := int(digits[7+i] - '0')
		mods = append(mods, lPatternForTest(d)[:]...)
	}
	mods = append(mods, 1, 1, 1) // end guard
	return mods
}

// The following mirror the unexported tables in tables.go; duplicated
// here (rather than exported) since only tests need raw access.
var testLPattern = [10][4]int{
	{3, 2, 1, 1}, {2, 2, 2, 1}, {2, 1, 2, 2}, {1, 4, 1, 1}, {1, 1, 3, 2},
	{1, 2, 3, 1}, {1, 1, 1, 4}, {1, 3, 1, 2}, {1, 2, 1, 3}, {3, 1, 1, 2},
}

var testParity = [10]string{
	"LLLLLL", "LLGLGG", "LLGGLG", "LLGGGL", "LGLLGG",
	"LGGLLG", "LGGGLL", "LGLGLG", "LGLGGL", "LGGLGL",
}

func lPatternForTest(d int) [4]int { return testLPattern[d] }
func gPatternForTest(d int) [4]int {
	l := testLPattern[d]
	return [4]int{l[3], l[2], l[1], l[0]}
}
func eanParityForTest(first int) string { return testParity[first] }

func feedModules(t *testing.T, dec *decoder.Decoder, mods []int, pixelsPerModule int) symbol.Type {
	t.Helper()
	last := symbol.None
	for _, m := range mods {
		w := fixed.FromInt(m * pixelsPerModule)
		got := dec.DecodeWidth(w)
		if got != symbol.None {
			last = got
		}
	}
	return last
}

func TestDecodeEAN13(t *testing.T) {
	ean := eanupc.New(eanupc.DefaultConfig())
	dec := decoder.New(ean)

	mods := encodeEAN13("9780201379624")
	got := feedModules(t, dec, mods, 4)

	if got != symbol.EAN13 {
		t.Fatalf("got type %v, want EAN13", got)
	}
	if string(ean.Data()) != "9780201379624" {
		t.Fatalf("got data %q, want 9780201379624", ean.Data())
	}
}

func TestDecodeUPCACollapse(t *testing.T) {
	ean := eanupc.New(eanupc.DefaultConfig())
	dec := decoder.New(ean)

	// UPC-A "012345678905" is EAN-13 "0012345678905".
	mods := encodeEAN13("0012345678905")
	got := feedModules(t, dec, mods, 3)

	if got != symbol.UPCA {
		t.Fatalf("got type %v, want UPCA", got)
	}
	if len(ean.Data()) != 12 {
		t.Fatalf("got data %q, want 12 digits", ean.Data())
	}
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	ean := eanupc.New(eanupc.DefaultConfig())
	dec := decoder.New(ean)

	digits := []byte("9780201379624")
	digits[12] = '0' + (digits[12]-'0'+1)%10 // corrupt the check digit
	mods := encodeEAN13(string(digits))
	got := feedModules(t, dec, mods, 4)

	// Partial is reported while the body is being parsed; only a
	// completed symbol type would mean the bad checksum was accepted.
	if got > symbol.Partial {
		t.Fatalf("got type %v, want no decoded symbol for bad checksum", got)
	}
}
