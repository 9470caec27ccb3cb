// Package code128 implements the Code 128 width decoder: code set
// A/B/C tracking, shift/latch handling, FNC1 preservation, and the
// modulo-103 checksum (§3.2 "Code 128").
package code128

import (
	"github.com/cocosip/go-zbarscan/decoder"
	"github.com/cocosip/go-zbarscan/fixed"
	"github.com/cocosip/go-zbarscan/symbol"
)

type codeSet int

const (
	setNone codeSet = iota
	setA
	setB
	setC
)

type stage int

const (
	stageIdle stage = iota
	stageChar
	stageAwaitStop
)

const fnc1Separator = 0x1D // ASCII Group Separator, GS1-128 convention for embedded FNC1

// Decoder recognises a single Code 128 symbol from the shared width
// window. It implements decoder.Symbology.
type Decoder struct {
	stage stage
	need  int

	set          codeSet
	shiftPending bool

	havePending  bool
	pendingValue int
	pendingPos   int
	pos          int
	checksum     int

	payload []byte
	data    []byte
}

func New() *Decoder { return &Decoder{} }

func (c *Decoder) Data() []byte { return c.data }

func (c *Decoder) Reset() {
	*c = Decoder{}
}

// NewScan performs a full reset. zebra_decoder_new_scan calls
// code128_reset (not a soft per-scan-line reset) because Code 128's
// running checksum cannot be meaningfully resumed across scan lines.
func (c *Decoder) NewScan() {
	c.Reset()
}

func (c *Decoder) Decode(d *decoder.Decoder) symbol.Type {
	win := d.Window()

	switch c.stage {
	case stageIdle:
		if d.Locked(c) {
			return symbol.None
		}
		mods, ok := classify(lastN(win, 6), 11)
		if !ok {
			return symbol.None
		}
		value, ok := lookupBody(mods)
		if !ok || value < startA {
			return symbol.None
		}
		d.Lock(c)
		c.beginAfterStart(value)
		return symbol.Partial

	case stageChar:
		c.need--
		if c.need > 0 {
			return symbol.Partial
		}
		mods, ok := classify(lastN(win, 6), 11)
		if ok {
			if value, ok := lookupBody(mods); ok && value < startA {
				c.consume(value)
				c.need = 6
				return symbol.Partial
			}
		}
		c.stage = stageAwaitStop
		c.need = 1
		return symbol.Partial

	case stageAwaitStop:
		c.need--
		if c.need > 0 {
			return symbol.Partial
		}
		mods, ok := classify(lastN(win, 7), 13)
		if !ok || mods != stopPattern {
			c.stage = stageIdle
			d.Unlock(c)
			return symbol.None
		}
		return c.finish(d)
	}
	return symbol.None
}

func (c *Decoder) beginAfterStart(startValue int) {
	switch startValue {
	case startA:
		c.set = setA
	case startB:
		c.set = setB
	case startC:
		c.set = setC
	}
	c.checksum = startValue
	c.pos = 1
	c.havePending = false
	c.payload = c.payload[:0]
	c.stage = stageChar
	c.need = 6
}

// consume folds the previously pending value into the running
// checksum and payload (now confirmed not to be the checksum
// character, since a further character followed it), then holds the
// newly decoded value as the new pending value.
func (c *Decoder) consume(value int) {
	if c.havePending {
		c.checksum = (c.checksum + c.pendingValue*c.pendingPos) % 103
		c.apply(c.pendingValue)
	}
	c.pendingValue = value
	c.pendingPos = c.pos
	c.pos++
	c.havePending = true
}

// apply interprets a confirmed data/function character under the
// code set active when it was decoded, mutating code-set state and
// appending to the payload as appropriate.
func (c *Decoder) apply(v int) {
	if c.shiftPending {
		c.shiftPending = false
		shifted := setB
		if c.set == setB {
			shifted = setA
		}
		c.payload = append(c.payload, asciiAB(shifted, v))
		return
	}

	switch c.set {
	case setA, setB:
		if v <= 95 {
			c.payload = append(c.payload, asciiAB(c.set, v))
			return
		}
		switch v {
		case fnc3, fnc2:
			// preserved for completeness, carry no payload byte
		case 98:
			c.shiftPending = true
		case codeCFromAB:
			c.set = setC
		case 100:
			if c.set == setA {
				c.set = setB
			}
			// setB: FNC4, no payload byte
		case 101:
			if c.set == setB {
				c.set = setA
			}
			// setA: FNC4, no payload byte
		case fnc1:
			c.applyFNC1()
		}
	case setC:
		if v <= 99 {
			c.payload = append(c.payload, byte('0'+v/10), byte('0'+v%10))
			return
		}
		switch v {
		case 100:
			c.set = setB
		case 101:
			c.set = setA
		case fnc1:
			c.applyFNC1()
		}
	}
}

// applyFNC1 preserves GS1 application-record separators as a single
// 0x1D byte, except when FNC1 is the very first symbol character,
// which marks the whole payload as GS1 data without emitting a byte.
func (c *Decoder) applyFNC1() {
	if c.pendingPos == 1 && len(c.payload) == 0 {
		return
	}
	c.payload = append(c.payload, fnc1Separator)
}

func asciiAB(set codeSet, v int) byte {
	if set == setB {
		return byte(v + 32)
	}
	if v < 64 {
		return byte(v + 32)
	}
	return byte(v - 64)
}

func (c *Decoder) finish(d *decoder.Decoder) symbol.Type {
	if !c.havePending {
		c.stage = stageIdle
		d.Unlock(c)
		return symbol.None
	}
	if c.pendingValue != c.checksum {
		c.stage = stageIdle
		d.Unlock(c)
		return symbol.None
	}
	c.data = append([]byte(nil), c.payload...)
	c.stage = stageIdle
	d.Unlock(c)
	return symbol.CODE128
}

func lastN(win *decoder.Window, n int) []fixed.Pos {
	out := make([]fixed.Pos, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = win.At(i)
	}
	return out
}

// classify rounds each width to its nearest integer module count,
// requiring the whole group to sum to exactly totalModules.
func classify(w []fixed.Pos, totalModules int) ([7]int, bool) {
	var mods [7]int
	var total int64
	for _, wi := range w {
		total += int64(wi)
	}
	if total <= 0 {
		return mods, false
	}
	sum := 0
	maxMod := int64(totalModules) - int64(len(w)) + 1
	for i, wi := range w {
		n := (int64(wi)*int64(totalModules)*2 + total) / (2 * total)
		if n < 1 {
			n = 1
		}
		if n > maxMod {
			n = maxMod
		}
		mods[i] = int(n)
		sum += int(n)
	}
	return mods, sum == totalModules
}

func lookupBody(mods [7]int) (int, bool) {
	var six [6]int
	copy(six[:], mods[:6])
	for v, pat := range bodyPattern {
		if pat == six {
			return v, true
		}
	}
	return 0, false
}
