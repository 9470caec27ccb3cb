package format_test

import (
	"testing"

	"github.com/cocosip/go-zbarscan/format"
)

func TestLookupKnownFormat(t *testing.T) {
	def, ok := format.Lookup(format.FourCC('Y', '8', '0', '0'))
	if !ok {
		t.Fatalf("Lookup(Y800): not found")
	}
	if def.Group != format.GroupGray {
		t.Fatalf("Y800 group = %v, want GroupGray", def.Group)
	}
}

func TestLookupUnknownFormat(t *testing.T) {
	if _, ok := format.Lookup(format.FourCC('Z', 'Z', 'Z', 'Z')); ok {
		t.Fatalf("Lookup(ZZZZ): expected not found")
	}
}

func TestIsGray(t *testing.T) {
	if !format.IsGray(format.FourCC('G', 'R', 'E', 'Y')) {
		t.Fatalf("GREY should be recognised as gray")
	}
	if format.IsGray(format.FourCC('R', 'G', 'B', '3')) {
		t.Fatalf("RGB3 should not be recognised as gray")
	}
}

func TestBestFormatExactMatch(t *testing.T) {
	src := format.FourCC('Y', '8', '0', '0')
	dsts := []uint32{format.FourCC('R', 'G', 'B', '3'), src}
	dst, cost, err := format.BestFormat(src, dsts)
	if err != nil {
		t.Fatalf("BestFormat: %v", err)
	}
	if dst != src || cost != 0 {
		t.Fatalf("got (%08x, %d), want (%08x, 0)", dst, cost, src)
	}
}

func TestBestFormatPicksLeastCost(t *testing.T) {
	src := format.FourCC('Y', '8', '0', '0') // GroupGray
	dsts := []uint32{
		format.FourCC('R', 'G', 'B', '3'), // GroupRGBPacked, cost 32
		format.FourCC('I', '4', '2', '0'), // GroupYUVPlanar, cost 8
	}
	dst, cost, err := format.BestFormat(src, dsts)
	if err != nil {
		t.Fatalf("BestFormat: %v", err)
	}
	if dst != format.FourCC('I', '4', '2', '0') || cost != 8 {
		t.Fatalf("got (%08x, %d), want (I420, 8)", dst, cost)
	}
}

func TestBestFormatNoReachableDestination(t *testing.T) {
	src := format.FourCC('Y', '8', '0', '0')
	_, _, err := format.BestFormat(src, []uint32{format.FourCC('Z', 'Z', 'Z', 'Z')})
	if err == nil {
		t.Fatalf("expected an error when no destination is recognised")
	}
}

func TestNegotiatePrefersExactFormat(t *testing.T) {
	srcs := []uint32{format.FourCC('R', 'G', 'B', '3'), format.FourCC('Y', '8', '0', '0')}
	dsts := []uint32{format.FourCC('Y', '8', '0', '0')}

	srcFmt, dstFmt, err := format.Negotiate(srcs, dsts)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if srcFmt != format.FourCC('Y', '8', '0', '0') || dstFmt != format.FourCC('Y', '8', '0', '0') {
		t.Fatalf("got (%08x, %08x), want Y800/Y800 (zero-cost pair)", srcFmt, dstFmt)
	}
}

func TestNegotiateNoCommonFormat(t *testing.T) {
	srcs := []uint32{format.FourCC('Z', 'Z', 'Z', 'Z')}
	dsts := []uint32{format.FourCC('Y', '8', '0', '0')}
	if _, _, err := format.Negotiate(srcs, dsts); err == nil {
		t.Fatalf("expected an error for disjoint format lists")
	}
}
