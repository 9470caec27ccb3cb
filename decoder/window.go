package decoder

import "github.com/cocosip/go-zbarscan/fixed"

// ringSize is the shared sliding window depth: the last eight element
// widths, indexed modulo 8 (§3 Decoder state).
const ringSize = 8

// Window is the shared sliding window of the last eight element
// widths, written by the dispatcher and read by every enabled
// symbology. It is a fixed-size array indexed by a monotonically
// increasing element count, never a heap-resizing container (§9
// design note "Ring buffer of widths").
type Window struct {
	w   [ringSize]fixed.Pos
	idx uint
}

// push records the newest width, overwriting the oldest.
func (win *Window) push(w fixed.Pos) {
	win.w[win.idx%ringSize] = w
	win.idx++
}

// Idx is the monotonically increasing count of widths pushed so far.
func (win *Window) Idx() uint {
	return win.idx
}

// At returns the width `back` elements before the most recent one
// (back=0 is the width just pushed). Reading further back than
// ringSize-1 or further back than Idx() elements exist returns 0.
func (win *Window) At(back int) fixed.Pos {
	if back < 0 || back >= ringSize || uint(back) >= win.idx {
		return 0
	}
	return win.w[(win.idx-1-uint(back))%ringSize]
}
