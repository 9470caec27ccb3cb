package imagescanner_test

import (
	"testing"

	"github.com/cocosip/go-zbarscan/decoder"
	"github.com/cocosip/go-zbarscan/decoder/eanupc"
	"github.com/cocosip/go-zbarscan/imagescanner"
)

var testLPattern = [10][4]int{
	{3, 2, 1, 1}, {2, 2, 2, 1}, {2, 1, 2, 2}, {1, 4, 1, 1}, {1, 1, 3, 2},
	{1, 2, 3, 1}, {1, 1, 1, 4}, {1, 3, 1, 2}, {1, 2, 1, 3}, {3, 1, 1, 2},
}

var testParity = [10]string{
	"LLLLLL", "LLGLGG", "LLGGLG", "LLGGGL", "LGLLGG",
	"LGGLLG", "LGGGLL", "LGLGLG", "LGLGGL", "LGGLGL",
}

func gPattern(d int) [4]int {
	l := testLPattern[d]
	return [4]int{l[3], l[2], l[1], l[0]}
}

// ean13Modules renders the module-width sequence of a full EAN-13 body
// (start/center/end guards plus twelve digit quartets) for digits.
func ean13Modules(digits string) []int {
	first := int(digits[0] - '0')
	pattern := testParity[first]
	var mods []int
	mods = append(mods, 1, 1, 1)
	for i := 0; i < 6; i++ {
		d := int(digits[1+i] - '0')
		if pattern[i] == 'L' {
			mods = append(mods, testLPattern[d][:]...)
		} else {
			g := gPattern(d)
			mods = append(mods, g[:]...)
		}
	}
	mods = append(mods, 1, 1, 1, 1, 1)
	for i := 0; i < 6; i++ {
		d := int(digits[7+i] - '0')
		mods = append(mods, testLPattern[d][:]...)
	}
	mods = append(mods, 1, 1, 1)
	return mods
}

// renderRow draws one horizontal scan line of a module sequence at
// the given pixel-per-module scale, centred with quiet zones, into a
// width-wide grayscale row.
func renderRow(mods []int, pixelsPerModule, width int) []byte {
	row := make([]byte, width)
	for i := range row {
		row[i] = 235
	}
	total := 0
	for _, m := range mods {
		total += m
	}
	x := (width - total*pixelsPerModule) / 2
	dark := true
	for _, m := range mods {
		v := byte(235)
		if dark {
			v = 20
		}
		for i := 0; i < m*pixelsPerModule; i++ {
			if x+i >= 0 && x+i < width {
				row[x+i] = v
			}
		}
		x += m * pixelsPerModule
		dark = !dark
	}
	return row
}

func TestScanImageUnsupportedFormat(t *testing.T) {
	dec := decoder.New(eanupc.New(eanupc.DefaultConfig()))
	is := imagescanner.New(dec)

	img := &imagescanner.Image{Format: "RGB3", Width: 4, Height: 4, Pix: make([]byte, 16)}
	n, err := is.ScanImage(img)
	if n != -1 || err == nil {
		t.Fatalf("got (%d, %v), want (-1, non-nil) for unsupported format", n, err)
	}
}

func TestScanImageBlankImageYieldsNoSymbols(t *testing.T) {
	dec := decoder.New(eanupc.New(eanupc.DefaultConfig()))
	is := imagescanner.New(dec)

	const width, height = 300, 20
	pix := make([]byte, width*height)
	for i := range pix {
		pix[i] = 235
	}
	img := &imagescanner.Image{Format: "Y800", Width: width, Height: height, Pix: pix}

	n, err := is.ScanImage(img)
	if err != nil {
		t.Fatalf("ScanImage: %v", err)
	}
	if n != 0 {
		t.Fatalf("got %d symbols on a blank image, want 0", n)
	}
}

func TestScanImageDecodesEAN13Row(t *testing.T) {
	dec := decoder.New(eanupc.New(eanupc.DefaultConfig()))
	is := imagescanner.New(dec)
	if err := is.SetConfig(imagescanner.Config{XDensity: 0, YDensity: 1, Position: true}); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}

	const width, height = 300, 10
	row := renderRow(ean13Modules("9780201379624"), 2, width)
	pix := make([]byte, width*height)
	for y := 0; y < height; y++ {
		copy(pix[y*width:(y+1)*width], row)
	}
	img := &imagescanner.Image{Format: "Y800", Width: width, Height: height, Pix: pix}

	n, err := is.ScanImage(img)
	if err != nil {
		t.Fatalf("ScanImage: %v", err)
	}
	if n < 1 {
		t.Fatalf("got %d symbols, want at least 1", n)
	}

	found := false
	for s := img.Syms; s != nil; s = s.Next() {
		if string(s.Data) == "9780201379624" {
			found = true
		}
	}
	if !found {
		t.Fatalf("EAN-13 payload not found among surfaced symbols")
	}
}
