// Package eanupc implements the EAN/UPC family width decoder: EAN-13
// (with optional UPC-A collapse), EAN-8, and UPC-E, sharing the
// dispatcher's 8-element width window (§3.2 "EAN/UPC family").
package eanupc

import (
	"github.com/cocosip/go-zbarscan/decoder"
	"github.com/cocosip/go-zbarscan/fixed"
	"github.com/cocosip/go-zbarscan/symbol"
)

type stage int

const (
	stageIdle stage = iota
	stageGuardStart
	stageBodyQuartet
	stagePostLeft // collecting the 3-5 elements after the 6th left digit
	stageGuardEnd
)

// Config selects which members of the EAN/UPC family this decoder
// attempts to recognise. EAN8Only switches the whole decoder into a
// dedicated 4+4 digit mode, since distinguishing EAN-8 from EAN-13 by
// element pattern alone (without an absolute module-size reference) is
// ambiguous; running both families concurrently needs two decoder
// instances with EAN8Only set differently on one of them.
type Config struct {
	EnableEAN13 bool
	EnableUPCA  bool
	EnableUPCE  bool
	EAN8Only    bool
}

// DefaultConfig enables the full EAN-13/UPC-A/UPC-E family.
func DefaultConfig() Config {
	return Config{EnableEAN13: true, EnableUPCA: true, EnableUPCE: true}
}

// Decoder recognises EAN-13, UPC-A, EAN-8, and UPC-E codes from the
// shared width window. It implements decoder.Symbology.
type Decoder struct {
	cfg Config

	stage     stage
	need      int
	leftDigit int // count of left-half digits collected so far
	target    int // left-half digit count for this symbology (4 or 6)

	parity  []byte // 'L'/'G' per left digit, in scan order
	digits  []byte // ASCII digits accumulated across both halves
	postBuf []fixed.Pos

	data []byte
}

// New constructs an EAN/UPC decoder under cfg.
func New(cfg Config) *Decoder {
	d := &Decoder{cfg: cfg}
	d.target = 6
	if cfg.EAN8Only {
		d.target = 4
	}
	return d
}

func (e *Decoder) Data() []byte { return e.data }

func (e *Decoder) Reset() {
	e.stage = stageIdle
	e.need = 0
	e.leftDigit = 0
	e.parity = nil
	e.digits = nil
	e.postBuf = nil
	e.data = nil
}

// NewScan drops in-progress element accumulation for a fresh scan
// line but keeps configuration, matching ean_new_scan's soft reset.
func (e *Decoder) NewScan() {
	e.stage = stageIdle
	e.need = 0
	e.leftDigit = 0
	e.parity = nil
	e.digits = nil
	e.postBuf = nil
}

// Decode evaluates the dispatcher's shared window after a new width
// has been pushed, advancing this decoder's element-counting state
// machine by exactly one element per call.
func (e *Decoder) Decode(d *decoder.Decoder) symbol.Type {
	win := d.Window()

	switch e.stage {
	case stageIdle:
		if d.Locked(e) {
			return symbol.None
		}
		if !isGuardRatio(lastN(win, 3), 30) {
			return symbol.None
		}
		d.Lock(e)
		e.startBody()
		return symbol.Partial

	case stageBodyQuartet:
		e.need--
		if e.need > 0 {
			return symbol.Partial
		}
		mods, ok := classifyQuartet(lastN(win, 4))
		if !ok {
			return e.abort(d)
		}
		digit, par, ok := lookupDigit(mods)
		if !ok {
			return e.abort(d)
		}
		if e.leftDigit < e.target {
			e.parity = append(e.parity, par)
		}
		e.digits = append(e.digits, byte('0'+digit))
		e.leftDigit++

		if e.leftDigit == e.target {
			e.postBuf = e.postBuf[:0]
			e.stage = stagePostLeft
			return symbol.Partial
		}
		if e.leftDigit == 2*e.target {
			e.stage = stageGuardEnd
			e.need = 3
			return symbol.Partial
		}
		e.need = 4
		return symbol.Partial

	case stagePostLeft:
		e.postBuf = append(e.postBuf, win.At(0))
		if len(e.postBuf) == 3 && e.cfg.EnableUPCE && e.target == 6 {
			if isGuardRatio(e.postBuf, 30) {
				if sym, data, ok := e.finishUPCE(); ok {
					e.data = data
					e.unlockIdle(d)
					return sym
				}
			}
		}
		if len(e.postBuf) < 5 {
			return symbol.Partial
		}
		if !isGuardRatio(e.postBuf, 40) {
			return e.abort(d)
		}
		e.stage = stageBodyQuartet
		e.need = 4
		return symbol.Partial

	case stageGuardEnd:
		e.need--
		if e.need > 0 {
			return symbol.Partial
		}
		if !isGuardRatio(lastN(win, 3), 30) {
			return e.abort(d)
		}
		sym, data, ok := e.finishEAN()
		if !ok {
			e.stage = stageIdle
			d.Unlock(e)
			return symbol.None
		}
		e.data = data
		e.unlockIdle(d)
		return sym
	}
	return symbol.None
}

func (e *Decoder) startBody() {
	e.stage = stageBodyQuartet
	e.need = 4
	e.leftDigit = 0
	e.parity = e.parity[:0]
	e.digits = e.digits[:0]
}

func (e *Decoder) abort(d *decoder.Decoder) symbol.Type {
	e.stage = stageIdle
	d.Unlock(e)
	return symbol.None
}

func (e *Decoder) unlockIdle(d *decoder.Decoder) {
	e.stage = stageIdle
	d.Unlock(e)
}

// finishEAN assembles the completed EAN-13/UPC-A/EAN-8 payload from
// the collected left/right digits, validating parity and checksum.
func (e *Decoder) finishEAN() (symbol.Type, []byte, bool) {
	if e.target == 4 {
		if len(e.digits) != 8 {
			return symbol.None, nil, false
		}
		if !checkDigitValid(e.digits) {
			return symbol.None, nil, false
		}
		return symbol.EAN8, append([]byte(nil), e.digits...), true
	}

	if len(e.digits) != 12 || len(e.parity) != 6 {
		return symbol.None, nil, false
	}
	first, ok := matchParity(e.parity)
	if !ok {
		return symbol.None, nil, false
	}
	full := make([]byte, 0, 13)
	full = append(full, byte('0'+first))
	full = append(full, e.digits...)
	if !checkDigitValid(full) {
		return symbol.None, nil, false
	}
	if first == 0 && e.cfg.EnableUPCA {
		return symbol.UPCA, full[1:], true
	}
	if !e.cfg.EnableEAN13 {
		return symbol.None, nil, false
	}
	return symbol.EAN13, full, true
}

// finishUPCE validates the 6 collected digits against both UPC-E
// number-system parity tables and, on a match, returns the 8-digit
// UPC-E payload (number system, six digits, check digit); the
// UPC-A expansion is used only to verify the check digit.
func (e *Decoder) finishUPCE() (symbol.Type, []byte, bool) {
	if len(e.digits) != 6 || len(e.parity) != 6 {
		return symbol.None, nil, false
	}
	pattern := string(e.parity)
	for check := 0; check < 10; check++ {
		var numberSystem byte
		switch pattern {
		case upcESystem0Parity[check]:
			numberSystem = '0'
		case upcESystem1Parity[check]:
			numberSystem = '1'
		default:
			continue
		}
		var d [6]byte
		copy(d[:], e.digits)
		expanded := upcEExpand(numberSystem, d)
		if !checkDigitValid(append(append([]byte{}, expanded[:]...), byte('0'+check))) {
			continue
		}
		out := make([]byte, 0, 6)
		out = append(out, numberSystem)
		out = append(out, e.digits...)
		out = append(out, byte('0'+check))
		return symbol.UPCE, out, true
	}
	return symbol.None, nil, false
}

func matchParity(parity []byte) (int, bool) {
	s := string(parity)
	for d, pat := range eanParity {
		if pat == s {
			return d, true
		}
	}
	return 0, false
}

// checkDigitValid applies the standard UPC/EAN mod-10 checksum: counting
// from the right (1-indexed, the check digit being position 1), digits
// at even positions weigh 3 and odd weigh 1; the total including the
// check digit must be a multiple of 10.
func checkDigitValid(digits []byte) bool {
	sum := 0
	n := len(digits)
	for i, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
		v := int(c - '0')
		posFromRight := n - i
		if posFromRight%2 == 0 {
			sum += v * 3
		} else {
			sum += v
		}
	}
	return sum%10 == 0
}

func lastN(win *decoder.Window, n int) []fixed.Pos {
	out := make([]fixed.Pos, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = win.At(i)
	}
	return out
}

// classifyQuartet rounds four element widths to their nearest integer
// module count (1-4), requiring the four to sum to exactly 7 modules.
func classifyQuartet(w []fixed.Pos) ([4]int, bool) {
	var mods [4]int
	var total int64
	for _, wi := range w {
		total += int64(wi)
	}
	if total <= 0 {
		return mods, false
	}
	sum := 0
	for i, wi := range w {
		n := (int64(wi)*7*2 + total) / (2 * total)
		if n < 1 {
			n = 1
		}
		if n > 4 {
			n = 4
		}
		mods[i] = int(n)
		sum += int(n)
	}
	return mods, sum == 7
}

func lookupDigit(mods [4]int) (digit int, parity byte, ok bool) {
	for d := 0; d < 10; d++ {
		if lPattern[d] == mods {
			return d, 'L', true
		}
	}
	for d := 0; d < 10; d++ {
		if gPattern[d] == mods {
			return d, 'G', true
		}
	}
	return 0, 0, false
}

// isGuardRatio reports whether every width in ws is within
// tolerancePct percent of the group's average, the signature of a
// fixed-ratio guard pattern.
func isGuardRatio(ws []fixed.Pos, tolerancePct int64) bool {
	if len(ws) == 0 {
		return false
	}
	var sum int64
	for _, w := range ws {
		sum += int64(w)
	}
	avg := sum / int64(len(ws))
	if avg <= 0 {
		return false
	}
	for _, w := range ws {
		diff := int64(w) - avg
		if diff < 0 {
			diff = -diff
		}
		if diff*100 > avg*tolerancePct {
			return false
		}
	}
	return true
}
