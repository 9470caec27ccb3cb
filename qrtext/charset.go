package qrtext

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// candidate is one entry of the move-to-front auto-detect list tried
// on a Byte entry when no ECI is active, mirroring enc_list in
// qrdectxt.c.
type candidate int

const (
	candLatin1 candidate = iota
	candShiftJIS
	candUTF8
)

// defaultCandidates is the initial try order: Latin-1 first (the most
// common encoding for symbols that never set an ECI), then Shift-JIS,
// then strict UTF-8.
func defaultCandidates() []candidate {
	return []candidate{candLatin1, candShiftJIS, candUTF8}
}

// isLatin1Safe reports false if data contains a byte in the C1
// control range (0x80-0x9F), which real Latin-1 text essentially never
// uses. Ported from text_is_latin1's heuristic for demoting the
// Latin-1 candidate below Shift-JIS/UTF-8 in the try order.
func isLatin1Safe(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 && b <= 0x9F {
			return false
		}
	}
	return true
}

var utf8BOM = [3]byte{0xEF, 0xBB, 0xBF}

func hasUTF8BOM(data []byte) bool {
	return len(data) >= 3 && data[0] == utf8BOM[0] && data[1] == utf8BOM[1] && data[2] == utf8BOM[2]
}

// decodeWithCandidate attempts to decode data under one auto-detect
// candidate, reporting success.
func decodeWithCandidate(c candidate, data []byte) (string, bool) {
	switch c {
	case candLatin1:
		out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return "", false
		}
		return string(out), true
	case candShiftJIS:
		out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			return "", false
		}
		return string(out), true
	case candUTF8:
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	default:
		return "", false
	}
}

// decodeByteEntry decodes one Byte-mode entry with no active ECI: a
// leading UTF-8 BOM takes priority (promoting candUTF8 to the front of
// list for subsequent entries in the group), otherwise each candidate
// in list is tried in order, demoting Latin-1 below the others when
// isLatin1Safe rejects it. The winning candidate is promoted to the
// front of list for the next entry, mirroring enc_list_mtf.
func decodeByteEntry(data []byte, list []candidate) (string, []candidate, bool) {
	if hasUTF8BOM(data) {
		out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
		if err == nil {
			return string(out), mtfPromote(list, candUTF8), true
		}
	}

	order := make([]candidate, len(list))
	copy(order, list)
	for i := 0; i < 2 && i < len(order); i++ {
		if order[i] == candLatin1 && !isLatin1Safe(data) {
			order = append(append(order[:i:i], order[i+1:]...), candLatin1)
		}
	}

	for _, c := range order {
		if s, ok := decodeWithCandidate(c, data); ok {
			return s, mtfPromote(list, c), true
		}
	}
	return "", list, false
}

// mtfPromote moves won to the front of list, preserving the relative
// order of the rest.
func mtfPromote(list []candidate, won candidate) []candidate {
	out := make([]candidate, 0, len(list))
	out = append(out, won)
	for _, c := range list {
		if c != won {
			out = append(out, c)
		}
	}
	return out
}
