// Command zbarscan scans a PNG image for EAN/UPC and Code 128
// bar codes and prints each one found, one per line. It is a thin CLI
// front end over the imagescanner package, in the spirit of the
// teacher's examples/export_png demonstrating a single codec path
// end to end rather than a production tool.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/cocosip/go-zbarscan/decoder"
	"github.com/cocosip/go-zbarscan/decoder/code128"
	"github.com/cocosip/go-zbarscan/decoder/eanupc"
	"github.com/cocosip/go-zbarscan/imagescanner"
)

func toGray(img image.Image) *imagescanner.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// Rec. 601 luma, matching convert_rgb_to_yuvp's weights.
			lum := (77*int(r>>8) + 150*int(g>>8) + 29*int(bl>>8) + 0x80) >> 8
			pix[y*w+x] = byte(lum)
		}
	}
	return &imagescanner.Image{Format: "Y800", Width: w, Height: h, Pix: pix}
}

func run() error {
	enableCache := flag.Bool("cache", false, "enable the cross-image consistency cache")
	flag.Parse()
	if flag.NArg() != 1 {
		return fmt.Errorf("usage: zbarscan [-cache] <image.png>")
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", flag.Arg(0), err)
	}

	dcode := decoder.New(eanupc.New(eanupc.DefaultConfig()), code128.New())
	is := imagescanner.New(dcode)
	is.EnableCache(*enableCache)

	img := toGray(src)
	n, err := is.ScanImage(img)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if n == 0 {
		fmt.Fprintln(os.Stderr, "no symbols found")
		return nil
	}
	for s := img.Syms; s != nil; s = s.Next() {
		fmt.Printf("%s: %s\n", s.Type, s.Data)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "zbarscan:", err)
		os.Exit(1)
	}
}
