package format

import "golang.org/x/exp/slices"

// Group classifies a pixel format's layout for the purpose of costing
// a conversion between two formats; formats within the same group and
// component layout are free to alias.
type Group int

const (
	GroupGray Group = iota
	GroupYUVPlanar
	GroupYUVPacked
	GroupRGBPacked
	GroupYUVNV
)

// Def is one known pixel format's metadata, grounded on
// zebra_format_def_t (the RGB/YUV component-layout union is out of
// scope here — only the group classification needed for costing and
// the grayscale recognition the image scanner boundary relies on).
type Def struct {
	FourCC uint32
	Group  Group
}

// defs is format_defs, sorted ascending by FourCC (required for
// slices.BinarySearchFunc) rather than the original's implicit binary
// heap layout — the heap shape existed only to make the original's
// hand-rolled i = i*2+1 walk a valid binary search over a static
// array; a flat sorted slice plus the standard library's own
// search does the same job without needing to keep the array in heap
// order by hand.
var defs = func() []Def {
	d := []Def{
		{FourCC('G', 'R', 'E', 'Y'), GroupGray},
		{FourCC('Y', '8', '0', '0'), GroupGray},
		{FourCC('Y', '8', ' ', ' '), GroupGray},
		{FourCC('Y', '8', 0, 0), GroupGray},
		{FourCC('I', '4', '2', '0'), GroupYUVPlanar},
		{FourCC('Y', 'U', '1', '2'), GroupYUVPlanar},
		{FourCC('Y', 'V', '1', '2'), GroupYUVPlanar},
		{FourCC('4', '2', '2', 'P'), GroupYUVPlanar},
		{FourCC('4', '1', '1', 'P'), GroupYUVPlanar},
		{FourCC('Y', 'V', 'U', '9'), GroupYUVPlanar},
		{FourCC('Y', 'U', 'V', '9'), GroupYUVPlanar},
		{FourCC('N', 'V', '1', '2'), GroupYUVNV},
		{FourCC('N', 'V', '2', '1'), GroupYUVNV},
		{FourCC('Y', 'U', 'Y', '2'), GroupYUVPacked},
		{FourCC('Y', 'U', 'Y', 'V'), GroupYUVPacked},
		{FourCC('Y', 'V', 'Y', 'U'), GroupYUVPacked},
		{FourCC('U', 'Y', 'V', 'Y'), GroupYUVPacked},
		{FourCC('R', 'G', 'B', '1'), GroupRGBPacked},
		{FourCC('B', 'G', 'R', '1'), GroupRGBPacked},
		{FourCC('R', '4', '4', '4'), GroupRGBPacked},
		{FourCC('R', 'G', 'B', 'Q'), GroupRGBPacked},
		{FourCC('R', 'G', 'B', 'O'), GroupRGBPacked},
		{FourCC('R', 'G', 'B', 'P'), GroupRGBPacked},
		{FourCC('R', 'G', 'B', 'R'), GroupRGBPacked},
		{FourCC('R', 'G', 'B', '3'), GroupRGBPacked},
		{FourCC('B', 'G', 'R', '3'), GroupRGBPacked},
		{FourCC(3, 0, 0, 0), GroupRGBPacked},
		{FourCC('R', 'G', 'B', '4'), GroupRGBPacked},
		{FourCC('B', 'G', 'R', '4'), GroupRGBPacked},
	}
	slices.SortFunc(d, func(a, b Def) int {
		switch {
		case a.FourCC < b.FourCC:
			return -1
		case a.FourCC > b.FourCC:
			return 1
		default:
			return 0
		}
	})
	return d
}()

// Lookup returns the Def for fmt, or false if fmt is not a format
// this module recognises.
func Lookup(fmt uint32) (Def, bool) {
	i, ok := slices.BinarySearchFunc(defs, fmt, func(d Def, target uint32) int {
		switch {
		case d.FourCC < target:
			return -1
		case d.FourCC > target:
			return 1
		default:
			return 0
		}
	})
	if !ok {
		return Def{}, false
	}
	return defs[i], true
}

// IsGray reports whether fmt is a recognised single-plane grayscale
// format, the only input format ScanImage accepts.
func IsGray(fmt uint32) bool {
	d, ok := Lookup(fmt)
	return ok && d.Group == GroupGray
}

// costs is the group x group conversion "badness" matrix, ported
// verbatim from the conversions[][5] table in zebra/convert.c (only
// the cost column; the conversion_handler_t function pointers are the
// out-of-scope conversion implementations).
var costs = [5][5]int{
	/* from GRAY */ {0, 8, 24, 32, 8},
	/* from YUV_PLANAR */ {1, 48, 64, 128, 40},
	/* from YUV_PACKED */ {24, 52, 20, 144, 18},
	/* from RGB_PACKED */ {112, 160, 144, 120, 152},
	/* from YUV_NV */ {1, 8, 24, 32, 8},
}

// conversionCost returns the relative cost of converting from src to
// dst. Identical formats are free; otherwise the cost comes from the
// group x group matrix even when src and dst share a group, since
// same-group formats can still differ in component layout (e.g.
// RGB3 vs BGR3) and need a real conversion. Mirrors
// _zebra_best_format's `group == group && p.cmp == p.cmp` shortcut,
// narrowed to exact-FourCC equality since per-component layout
// comparison is out of scope here.
func conversionCost(src, dst Def) int {
	if src.FourCC == dst.FourCC {
		return 0
	}
	return costs[src.Group][dst.Group]
}
