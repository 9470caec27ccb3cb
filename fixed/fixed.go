// Package fixed provides the binary fixed-point representation shared by
// the intensity scanner and width decoders: sub-pixel positions, element
// widths, and adaptive thresholds are all expressed in these units.
package fixed

import "golang.org/x/exp/constraints"

// Bits is the fractional width F of the fixed-point representation: all
// positions are in units of 1/2^Bits of a sample column.
const Bits = 5

// Scale is 2^Bits, the number of fixed-point units per whole sample.
const Scale = 1 << Bits

// Pos is a fixed-point pixel position or element width, in units of
// 1/Scale of a sample column.
type Pos int

// FromInt converts a whole-sample column index to a fixed-point position.
func FromInt(x int) Pos {
	return Pos(x << Bits)
}

// Int truncates a fixed-point position down to its whole-sample column.
func (p Pos) Int() int {
	return int(p) >> Bits
}

// Frac returns the fractional part of p, in [0, Scale).
func (p Pos) Frac() Pos {
	return p & (Scale - 1)
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Abs returns the absolute value of v.
func Abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
