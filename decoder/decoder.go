// Package decoder implements the width-decoder dispatcher (component A):
// a shared 8-element width ring fed to parallel symbology state
// machines, each deciding after every new width whether a code has
// terminated. Ported from zebra/decoder.c.
package decoder

import (
	"github.com/cocosip/go-zbarscan/fixed"
	"github.com/cocosip/go-zbarscan/symbol"
)

// Symbology is a single stateful consumer of the shared width window,
// implemented by decoder/eanupc and decoder/code128.
type Symbology interface {
	// Decode evaluates the shared window after a new width has been
	// pushed and returns the resulting state: None (no match), Partial
	// (still accumulating, holds the shared lock), or a concrete symbol
	// type once a code has been confirmed.
	Decode(d *Decoder) symbol.Type

	// Data returns this symbology's decoded payload, valid until the
	// next successful decode or Reset.
	Data() []byte

	// Reset wipes all of this symbology's state.
	Reset()

	// NewScan wipes only the current-attempt state for a new scan line,
	// preserving configuration.
	NewScan()
}

// Decoder is the shared dispatcher: it owns the width ring and races
// every enabled Symbology against it, matching zebra_decode_width's
// "first decoder registered gets PARTIAL-level priority; every later
// decoder only overrides a full match" dispatch order.
type Decoder struct {
	win      Window
	order    []Symbology
	lockedBy Symbology

	lastType symbol.Type
	lastData []byte

	handler func(*Decoder)
}

// New creates a dispatcher evaluating the given symbologies in order
// on every pushed width. Order matters: only the first entry's Partial
// results can win; later entries must exceed Partial to override.
func New(order ...Symbology) *Decoder {
	return &Decoder{order: order}
}

// SetHandler installs a callback invoked whenever DecodeWidth produces
// a non-None result, mirroring zebra_decoder's handler hook. It
// returns the previously installed handler.
func (d *Decoder) SetHandler(h func(*Decoder)) func(*Decoder) {
	prev := d.handler
	d.handler = h
	return prev
}

// GetType returns the symbol type produced by the most recent
// DecodeWidth call.
func (d *Decoder) GetType() symbol.Type {
	return d.lastType
}

// Data returns the payload produced by the most recent successful
// decode. It remains valid until the next successful decode or Reset.
func (d *Decoder) Data() []byte {
	return d.lastData
}

// Window exposes the shared width ring to a Symbology implementation.
func (d *Decoder) Window() *Window {
	return &d.win
}

// Locked reports whether some other Symbology currently holds the
// shared lock, meaning self must not begin claiming this element run.
func (d *Decoder) Locked(self Symbology) bool {
	return d.lockedBy != nil && d.lockedBy != self
}

// Lock asserts the shared lock on behalf of self, the calling
// Symbology. Only meaningful while no other Symbology holds it.
func (d *Decoder) Lock(self Symbology) {
	d.lockedBy = self
}

// Unlock releases the lock if self currently holds it.
func (d *Decoder) Unlock(self Symbology) {
	if d.lockedBy == self {
		d.lockedBy = nil
	}
}

// DecodeWidth pushes w onto the shared window and evaluates every
// enabled symbology in registration order, returning the dispatcher's
// resulting type. Implements scanner.WidthConsumer.
func (d *Decoder) DecodeWidth(w fixed.Pos) symbol.Type {
	d.win.push(w)

	d.lastType = symbol.None
	for i, sym := range d.order {
		result := sym.Decode(d)
		if i == 0 {
			if result != symbol.None {
				d.lastType = result
				d.lastData = sym.Data()
			}
			continue
		}
		if result > symbol.Partial {
			d.lastType = result
			d.lastData = sym.Data()
		}
	}

	if d.lastType != symbol.None {
		if d.handler != nil {
			d.handler(d)
		}
		if d.lastType > symbol.Partial {
			d.lockedBy = nil
		}
	}
	return d.lastType
}

// Reset wipes all symbology state.
func (d *Decoder) Reset() {
	d.win = Window{}
	d.lockedBy = nil
	d.lastType = symbol.None
	d.lastData = nil
	for _, sym := range d.order {
		sym.Reset()
	}
}

// NewScan wipes only the ring and per-symbology current-attempt state,
// preserving configuration (e.g. which add-ons are enabled).
func (d *Decoder) NewScan() {
	d.win = Window{}
	d.lockedBy = nil
	for _, sym := range d.order {
		sym.NewScan()
	}
}
