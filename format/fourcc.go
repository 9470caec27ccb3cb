// Package format implements the boundary-only format negotiator: it
// knows the pixel-format metadata and relative conversion cost the
// rest of this module needs to pick a common grayscale format between
// a source and a scan target, but never performs an actual pixel
// conversion. Ported from zebra/convert.c's table/lookup/negotiation
// logic; the conversion functions themselves are out of scope.
package format

// FourCC packs four ASCII/byte tags into the little-endian uint32
// code video formats are conventionally identified by (e.g. "Y800").
func FourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// fourccString renders a FourCC back to its four-character form for
// diagnostics.
func fourccString(fmt uint32) string {
	b := [4]byte{
		byte(fmt),
		byte(fmt >> 8),
		byte(fmt >> 16),
		byte(fmt >> 24),
	}
	return string(b[:])
}
