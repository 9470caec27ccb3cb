package qrtext

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// eciGLI0 and eciGLI1 are the two "general level indicator" designators
// that carry no charset of their own: a structured-append boundary
// reached with the active ECI at one of these resets back to the
// auto-detecting default rather than carrying a charset forward.
const (
	eciGLI0 = 0
	eciGLI1 = 1
	eciSJIS = 20
)

// iso8859ByIndex maps the ISO-8859-N suffix (1..16, 11 and 12 unused)
// to its decoder. Built once; indexed by eciCharset.
var iso8859ByIndex = map[int]encoding.Encoding{
	1:  charmap.ISO8859_1,
	2:  charmap.ISO8859_2,
	3:  charmap.ISO8859_3,
	4:  charmap.ISO8859_4,
	5:  charmap.ISO8859_5,
	6:  charmap.ISO8859_6,
	7:  charmap.ISO8859_7,
	8:  charmap.ISO8859_8,
	9:  charmap.ISO8859_9,
	10: charmap.ISO8859_10,
	13: charmap.ISO8859_13,
	14: charmap.ISO8859_14,
	15: charmap.ISO8859_15,
	16: charmap.ISO8859_16,
}

// eciEncoding resolves an ECI designator to a decoder, mirroring the
// cur_eci <= QR_ECI_ISO8859_16 (18) && cur_eci != 14 branch of
// qr_code_data_list_extract_text: GLI0 (0) and CP437 (2) both select
// CP437, GLI1 (1) falls through to the ISO-8859-%d path and lands on
// ISO-8859-1 (max(cur_eci,3)-2), and 3..18 (excluding 14) select
// ISO-8859-(value-2). Value 14 and 19 are reserved; 20 selects
// Shift-JIS. Anything else is unsupported and the second return is
// false, meaning the entry should be skipped rather than fail the
// whole code.
func eciEncoding(value uint32) (encoding.Encoding, bool) {
	switch {
	case value == 14 || value == 19:
		return nil, false
	case value == eciSJIS:
		return japanese.ShiftJIS, true
	case value == eciGLI0 || value == 2:
		return charmap.CodePage437, true
	case value <= 18:
		idx := int(value) - 2
		if idx < 1 {
			idx = 1
		}
		enc, ok := iso8859ByIndex[idx]
		return enc, ok
	default:
		return nil, false
	}
}

// eciResets reports whether value is one of the GLI markers that ends
// a carried-forward encoding at the next structured-append boundary.
func eciResets(value uint32) bool {
	return value == eciGLI0 || value == eciGLI1
}
