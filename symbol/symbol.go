// Package symbol defines the confirmed bar-code/QR symbol type shared by
// the width decoders and the image scanner, along with its recycle pool
// and cross-image consistency cache.
package symbol

import "sync/atomic"

// Type identifies the symbology (or pseudo-state) a Symbol represents.
type Type int

const (
	// None means no symbol is present.
	None Type = iota
	// Partial means a decoder has committed to a partial parse but has
	// not yet confirmed a symbol; it is never surfaced to callers.
	Partial
	EAN8
	UPCE
	UPCA
	EAN13
	CODE128

	// linearMax is a sentinel, not a real symbology: it marks the upper
	// bound (exclusive) of the 1-D symbol type range. Ported from
	// ZBAR_I25's role in zbar_scan_image's quality filter, which tests
	// `sym->type < ZBAR_I25 && sym->type > ZBAR_PARTIAL` to mean "any
	// linear symbology" without enumerating each one.
	linearMax

	// QRCode is the only 2-D symbology this module decodes text for.
	QRCode
)

// IsLinear reports whether t is a 1-D (bar-code) symbology, as opposed to
// QRCode or the pseudo-states None/Partial.
func (t Type) IsLinear() bool {
	return t > Partial && t < linearMax
}

func (t Type) String() string {
	switch t {
	case None:
		return "NONE"
	case Partial:
		return "PARTIAL"
	case EAN8:
		return "EAN8"
	case UPCE:
		return "UPCE"
	case UPCA:
		return "UPCA"
	case EAN13:
		return "EAN13"
	case CODE128:
		return "CODE128"
	case QRCode:
		return "QRCODE"
	default:
		return "UNKNOWN"
	}
}

// AddonFlags marks a 2- or 5-digit EAN/UPC add-on carried alongside a
// primary symbol.
type AddonFlags int

const (
	NoAddon AddonFlags = 0
	Addon2  AddonFlags = 1 << iota
	Addon5
)

// Point is a location visited during the scan that contributed to a
// Symbol's detection, in image coordinates.
type Point struct {
	X, Y int
}

// Symbol is a confirmed detection; Quality starts at 1 when the symbol
// is created. Symbols are owned by exactly one of {an image's symbol
// list, a Pool's free list, a Cache's entry list} at any moment; Next
// is the intrusive link used by whichever list currently owns it.
type Symbol struct {
	Type    Type
	Addon   AddonFlags
	Quality int // independent confirmation count within one image
	Data    []byte
	Points  []Point

	// TimeMS is a monotonic millisecond timestamp, set when the symbol
	// is first confirmed within an image.
	TimeMS int64

	// CacheCount mirrors zbar's signed cache_count: negative while the
	// cross-image cache has not yet reached consistency, >= 0 once it
	// has been confirmed across enough "nearby" images.
	CacheCount int

	refcnt int32
	next   *Symbol
}

// Ref increments the symbol's reference count. Callers that want to
// retain a Symbol past the next Scan call on the owning image scanner
// must call Ref before that call returns.
func (s *Symbol) Ref() {
	atomic.AddInt32(&s.refcnt, 1)
}

// Unref decrements the reference count and reports whether it reached
// zero, meaning the caller (normally a Pool) may recycle the symbol.
func (s *Symbol) Unref() bool {
	return atomic.AddInt32(&s.refcnt, -1) <= 0
}

// Next returns the intrusive link to the next Symbol in whichever
// list currently owns s.
func (s *Symbol) Next() *Symbol {
	return s.next
}

// SetNext reassigns the intrusive link, used by callers (e.g. the
// image scanner) that splice Symbols between lists.
func (s *Symbol) SetNext(n *Symbol) {
	s.next = n
}

// SameAs reports whether s and other carry the same type and payload,
// the dedup/cache key used throughout the image scanner.
func (s *Symbol) SameAs(t Type, data []byte) bool {
	return s.Type == t && string(s.Data) == string(data)
}

// reset clears a recycled symbol's content before reuse, but preserves
// the intrusive next pointer management done by its caller.
func (s *Symbol) reset(t Type, data []byte) {
	s.Type = t
	s.Addon = NoAddon
	s.Quality = 1
	s.Data = append(s.Data[:0], data...)
	s.Points = s.Points[:0]
	s.TimeMS = 0
	s.CacheCount = 0
	atomic.StoreInt32(&s.refcnt, 0)
}
