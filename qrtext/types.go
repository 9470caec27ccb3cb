// Package qrtext extracts the text payload of a QR symbol from its
// decoded data segments, handling ECI charset switches, Shift-JIS
// kanji, the FNC1/GS1 escape convention, and structured-append
// grouping across multiple symbols. Ported from qrdectxt.c.
package qrtext

// Mode identifies how one Entry's bytes are encoded.
type Mode int

const (
	// Num carries ASCII digit bytes copied through unchanged.
	Num Mode = iota
	// Alnum carries the QR alphanumeric charset, copied through except
	// for the FNC1 '%' escape convention.
	Alnum
	// Byte carries arbitrary 8-bit data, decoded per the active ECI (or
	// auto-detected when no ECI is active).
	Byte
	// Kanji carries Shift-JIS-encoded double-byte characters.
	Kanji
	// ECI sets the active character encoding for subsequent Byte
	// entries in this code (and, for structured-append groups, in the
	// codes that follow it until reset). Data holds nothing; Value
	// carries the designator.
	ECI
	// FNC1First marks the presence of an FNC1 codeword in the first
	// position (GS1 application indicator); carries no data.
	FNC1First
	// FNC1Second marks the presence of an FNC1 codeword in the second
	// position (AIM application indicator); carries no data.
	FNC1Second
)

// Entry is one decoded segment from a QR symbol's data stream.
type Entry struct {
	Mode  Mode
	Data  []byte
	Value uint32 // ECI designator, valid only when Mode == ECI
}

// CodeData is the full set of segments decoded from one QR symbol,
// along with its structured-append placement if it is part of a
// group.
type CodeData struct {
	// SASize is the number of symbols in this structured-append group,
	// or 0 if the symbol is not part of one.
	SASize int
	// SAIndex is this symbol's zero-based position within the group.
	SAIndex int
	// SAParity must match across every symbol in the same group.
	SAParity uint32

	Entries []Entry
}
