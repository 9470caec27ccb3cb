package format

import (
	"errors"
	"fmt"
)

// ErrNoCommonFormat is returned when no source format can reach any
// destination format at all.
var ErrNoCommonFormat = errors.New("format: no common format available")

// SourcePreference is the preference order negotiate walks when several source
// formats would all work, most-preferred first. Ported verbatim from
// format_prefs, trimmed to the formats defs.go actually classifies
// (the compressed/unsupported trailing entries in the original table
// carry no Def here and would never match has).
var SourcePreference = []uint32{
	FourCC('4', '2', '2', 'P'),
	FourCC('I', '4', '2', '0'),
	FourCC('Y', 'U', '1', '2'),
	FourCC('Y', 'V', '1', '2'),
	FourCC('4', '1', '1', 'P'),

	FourCC('N', 'V', '1', '2'),
	FourCC('N', 'V', '2', '1'),

	FourCC('Y', 'U', 'Y', 'V'),
	FourCC('U', 'Y', 'V', 'Y'),
	FourCC('Y', 'U', 'Y', '2'),

	FourCC('R', 'G', 'B', '3'),
	FourCC(3, 0, 0, 0),
	FourCC('B', 'G', 'R', '3'),
	FourCC('R', 'G', 'B', '4'),
	FourCC('B', 'G', 'R', '4'),

	FourCC('R', 'G', 'B', 'P'),
	FourCC('R', 'G', 'B', 'O'),
	FourCC('R', 'G', 'B', 'R'),
	FourCC('R', 'G', 'B', 'Q'),

	FourCC('Y', 'U', 'V', '9'),
	FourCC('Y', 'V', 'U', '9'),

	FourCC('G', 'R', 'E', 'Y'),
	FourCC('Y', '8', '0', '0'),
	FourCC('Y', '8', ' ', ' '),
	FourCC('Y', '8', 0, 0),

	FourCC('R', 'G', 'B', '1'),
	FourCC('R', '4', '4', '4'),
}

func has(fmt uint32, fmts []uint32) bool {
	for _, f := range fmts {
		if f == fmt {
			return true
		}
	}
	return false
}

// BestFormat picks the least-cost format in dsts that src can reach,
// favouring an exact match. Returns the chosen format, its cost, and
// an error if src or none of dsts is a recognised format. Ported from
// _zebra_best_format.
func BestFormat(src uint32, dsts []uint32) (uint32, int, error) {
	if has(src, dsts) {
		return src, 0, nil
	}
	srcDef, ok := Lookup(src)
	if !ok {
		return 0, -1, fmt.Errorf("format: unrecognised source format %q", fourccString(src))
	}

	minCost := -1
	var best uint32
	for _, d := range dsts {
		dstDef, ok := Lookup(d)
		if !ok {
			continue
		}
		cost := conversionCost(srcDef, dstDef)
		if minCost < 0 || cost < minCost {
			minCost = cost
			best = d
		}
	}
	if minCost < 0 {
		return 0, -1, fmt.Errorf("%w: %q has no reachable destination", ErrNoCommonFormat, fourccString(src))
	}
	return best, minCost, nil
}

// Negotiate picks the overall least-cost (source, destination) pair
// from srcs to dsts, walking SourcePreference in order and stopping early on a
// free (cost 0) match. Ported from zebra_negotiate_format, trimmed to
// the format selection itself (no zebra_video_t/zebra_window_t
// device binding, which is out of scope for this module).
func Negotiate(srcs, dsts []uint32) (srcFmt, dstFmt uint32, err error) {
	minCost := -1
	for _, p := range SourcePreference {
		if !has(p, srcs) {
			continue
		}
		dst, cost, err := BestFormat(p, dsts)
		if err != nil {
			continue
		}
		if minCost < 0 || cost < minCost {
			minCost = cost
			srcFmt, dstFmt = p, dst
			if cost == 0 {
				break
			}
		}
	}
	if minCost < 0 {
		return 0, 0, fmt.Errorf("%w between the given source and destination lists", ErrNoCommonFormat)
	}
	return srcFmt, dstFmt, nil
}
