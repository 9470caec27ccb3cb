// Package scanner implements the intensity scanner (component B):
// a streaming converter from luminance samples to bar/space width
// events with sub-pixel edge localisation, ported from zebra/scanner.c.
package scanner

import (
	"github.com/cocosip/go-zbarscan/fixed"
	"github.com/cocosip/go-zbarscan/symbol"
)

// Color is the polarity of the element most recently emitted by the
// scanner.
type Color int

const (
	Space Color = iota
	Bar
)

// defaultMinThresh is ZEBRA_FIXED's companion default: the adaptive
// slope threshold never decays below this value.
const defaultMinThresh = 8

// WidthConsumer receives each committed element width, in the order
// produced, and reports back the resulting symbol state. A decoder
// dispatcher (package decoder) implements this; the scanner never
// imports the decoder package, matching the borrowed-reference
// coupling design note in spec.md §9.
type WidthConsumer interface {
	DecodeWidth(w fixed.Pos) symbol.Type
}

// Scanner converts one scan line's worth of luminance samples into a
// stream of element widths, handed to a WidthConsumer as they commit.
type Scanner struct {
	consumer WidthConsumer

	x  int    // relative column of the next sample
	y0 [4]int // circular history of the running average

	y1Sign      int // raw first-difference value at the last committed edge
	y1Thresh    int
	y1MinThresh int

	curEdge  fixed.Pos
	lastEdge fixed.Pos
	width    fixed.Pos
}

// New creates a scanner that feeds committed widths to consumer.
// consumer may be nil, in which case committed edges are reported as
// symbol.Partial without being decoded (useful for debug/test harnesses
// that only care about edge geometry).
func New(consumer WidthConsumer) *Scanner {
	s := &Scanner{consumer: consumer}
	s.Reset()
	return s
}

// Reset returns the scanner to its initial state. It emits nothing.
func (s *Scanner) Reset() {
	consumer := s.consumer
	*s = Scanner{
		consumer:    consumer,
		y1Thresh:    defaultMinThresh,
		y1MinThresh: defaultMinThresh,
	}
}

// NewScan ends the current scan line: it flushes any pending edge
// (emitting at most one terminal edge event) and resets the per-line
// sample history and position so the next ScanY call starts a fresh
// column count. Adaptive threshold state carries over, since
// illumination varies slowly across a whole image, not per line.
func (s *Scanner) NewScan() symbol.Type {
	t := s.Flush()
	s.x = 0
	s.y0 = [4]int{}
	s.curEdge = 0
	s.lastEdge = 0
	s.width = 0
	return t
}

// Flush forces any pending edge bookkeeping out, as if a long quiet
// zone had begun at the current column. It is idempotent: calling it
// again before any more samples arrive returns symbol.None. May emit
// a symbol if a decoder was holding a partial code that completes on
// this synthetic boundary.
func (s *Scanner) Flush() symbol.Type {
	if s.x == 0 {
		return symbol.None
	}
	end := fixed.FromInt(s.x)
	if end <= s.lastEdge {
		return symbol.None
	}
	s.curEdge = end
	y1 := 1
	if s.y1Sign > 0 {
		y1 = -1
	}
	return s.processEdge(y1)
}

// GetWidth returns the width of the last committed element.
func (s *Scanner) GetWidth() fixed.Pos {
	return s.width
}

// GetColor returns the polarity of the element last committed.
func (s *Scanner) GetColor() Color {
	if s.y1Sign <= 0 {
		return Space
	}
	return Bar
}

// DebugState is the read-only snapshot returned by State, which a
// caller can use to drive a debug overlay; ported from
// zebra_scanner_get_state.
type DebugState struct {
	X, CurEdge, LastEdge fixed.Pos
	Y0, Y1, Y2           int
	Y1Thresh             int
}

// State returns the scanner's current internal state for debugging.
func (s *Scanner) State() DebugState {
	y00 := s.y0[s.x&3]
	y01 := s.y0[(s.x-1)&3]
	y02 := s.y0[(s.x-2)&3]
	return DebugState{
		X:        fixed.FromInt(s.x - 1),
		CurEdge:  s.curEdge,
		LastEdge: s.lastEdge,
		Y0:       y01,
		Y1:       y00 - y02,
		Y2:       y00 - 2*y01 + y02,
		Y1Thresh: s.calcThresh(),
	}
}

// calcThresh computes the current adaptive slope threshold, decaying
// it linearly back toward y1MinThresh in proportion to the distance
// travelled since the last committed edge. Ported from calc_thresh in
// zebra/scanner.c.
func (s *Scanner) calcThresh() int {
	thresh := s.y1Thresh
	if thresh <= s.y1MinThresh || s.width == 0 {
		return s.y1MinThresh
	}
	t := int64(thresh) * int64(fixed.FromInt(s.x)-s.lastEdge)
	t /= int64(s.width)
	t /= 4 // decay denominator, design default
	t = ((t >> (fixed.Bits - 1)) + 1) >> 1
	thresh -= int(t)
	if thresh < s.y1MinThresh {
		thresh = s.y1MinThresh
		s.y1Thresh = thresh
	}
	return thresh
}

// processEdge commits the pending interpolated edge at curEdge,
// computing the element width, resetting the adaptive threshold, and
// (if the width is non-zero) handing the width to the consumer. Ported
// from process_edge in zebra/scanner.c.
func (s *Scanner) processEdge(y1 int) symbol.Type {
	s.width = s.curEdge - s.lastEdge
	s.lastEdge = s.curEdge

	s.y1Thresh = abs((y1 + 1) / 2)
	if s.y1Thresh < s.y1MinThresh {
		s.y1Thresh = s.y1MinThresh
	}

	if s.width == 0 {
		// skip the initial transition at scan start
		return symbol.None
	}
	s.y1Sign = y1
	if s.consumer != nil {
		return s.consumer.DecodeWidth(s.width)
	}
	return symbol.Partial
}

// ScanY consumes one luminance sample and returns the symbol state
// resulting from any width committed as a consequence. Ported from
// zebra_scan_y in zebra/scanner.c.
func (s *Scanner) ScanY(y int) symbol.Type {
	y01 := s.y0[(s.x-1)&3]
	var y00 int
	if s.x != 0 {
		y00 = y01 + ((y - y01 + 1) / 2)
		s.y0[s.x&3] = y00
	} else {
		y00 = y
		s.y0[0], s.y0[1], s.y0[2], s.y0[3] = y, y, y, y
	}
	y02 := s.y0[(s.x-2)&3]
	y03 := s.y0[(s.x-3)&3]

	y11 := y00 - y02
	if y12 := y01 - y03; abs(y11) < abs(y12) {
		y11 = y12
	}

	y21 := y00 - 2*y01 + y02
	y22 := y01 - 2*y02 + y03

	edge := symbol.None
	var zeroCrossing bool
	if y21 == 0 {
		zeroCrossing = true
	} else if y21 > 0 {
		zeroCrossing = y22 < 0
	} else {
		zeroCrossing = y22 > 0
	}

	if zeroCrossing && s.calcThresh() < abs(y11) {
		reversed := false
		if s.y1Sign > 0 {
			reversed = y11 < 0
		} else {
			reversed = y11 > 0
		}
		if reversed {
			edge = s.processEdge(y11)
		}

		d := y21 - y22
		cur := fixed.Pos(fixed.Scale)
		if d == 0 {
			cur >>= 1
		} else if y21 != 0 {
			cur -= fixed.Pos((int64(y21)<<fixed.Bits + 1) / int64(d))
		}
		s.curEdge = cur + fixed.FromInt(s.x)
	}

	s.x++
	return edge
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
