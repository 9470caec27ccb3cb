package eanupc

// lPattern is the standard EAN/UPC "L-code" (odd parity) digit
// encoding: four element module widths, starting with a space,
// summing to 7 modules per character.
var lPattern = [10][4]int{
	{3, 2, 1, 1}, // 0
	{2, 2, 2, 1}, // 1
	{2, 1, 2, 2}, // 2
	{1, 4, 1, 1}, // 3
	{1, 1, 3, 2}, // 4
	{1, 2, 3, 1}, // 5
	{1, 1, 1, 4}, // 6
	{1, 3, 1, 2}, // 7
	{1, 2, 1, 3}, // 8
	{3, 1, 1, 2}, // 9
}

// gPattern is the "G-code" (even parity) mirror of lPattern, used for
// some left-half digits in EAN-13 to encode the implied 13th digit.
var gPattern = buildGPattern()

func buildGPattern() [10][4]int {
	var g [10][4]int
	for d, l := range lPattern {
		g[d] = [4]int{l[3], l[2], l[1], l[0]}
	}
	return g
}

// eanParity maps an EAN-13 first (hidden) digit to the pattern of
// L/G codes used across the six left digits. 'L' = odd, 'G' = even.
var eanParity = [10]string{
	"LLLLLL",
	"LLGLGG",
	"LLGGLG",
	"LLGGGL",
	"LGLLGG",
	"LGGLLG",
	"LGGGLL",
	"LGLGLG",
	"LGLGGL",
	"LGGLGL",
}

// upcESystem0Parity maps a UPC-E check digit to its parity pattern
// under number system 0 ('O' = odd/L, 'E' = even/G).
var upcESystem0Parity = [10]string{
	"EEEOOO",
	"EEOEOO",
	"EEOOEO",
	"EEOOOE",
	"EOEEOO",
	"EOOEEO",
	"EOOOEE",
	"EOEOEO",
	"EOEOOE",
	"EOOEOE",
}

// upcESystem1Parity is the bitwise complement of upcESystem0Parity
// (number system 1 uses the inverse pattern for the same check digit).
var upcESystem1Parity = buildUPCESystem1Parity()

func buildUPCESystem1Parity() [10]string {
	var out [10]string
	for i, pat := range upcESystem0Parity {
		b := []byte(pat)
		for j, c := range b {
			if c == 'O' {
				b[j] = 'E'
			} else {
				b[j] = 'O'
			}
		}
		out[i] = string(b)
	}
	return out
}

// upcEExpand reconstructs the first 11 digits (number system plus the
// 10-digit manufacturer+product payload) of the UPC-A encoding that a
// 6-digit zero-suppressed UPC-E code stands for; the caller appends
// the check digit separately.
func upcEExpand(numberSystem byte, d [6]byte) [11]byte {
	var out [11]byte
	out[0] = numberSystem
	last := d[5]
	switch {
	case last <= '2':
		out[1], out[2], out[3] = d[0], d[1], last
		out[4], out[5], out[6], out[7] = '0', '0', '0', '0'
		out[8], out[9], out[10] = d[2], d[3], d[4]
	case last == '3':
		out[1], out[2], out[3] = d[0], d[1], d[2]
		out[4], out[5], out[6], out[7], out[8] = '0', '0', '0', '0', '0'
		out[9], out[10] = d[3], d[4]
	case last == '4':
		out[1], out[2], out[3], out[4] = d[0], d[1], d[2], d[3]
		out[5], out[6], out[7], out[8], out[9] = '0', '0', '0', '0', '0'
		out[10] = d[4]
	default:
		out[1], out[2], out[3], out[4], out[5] = d[0], d[1], d[2], d[3], d[4]
		out[6], out[7], out[8], out[9] = '0', '0', '0', last
	}
	return out
}
