// Package imagescanner implements the image-level scan pipeline
// (component C): it drives the intensity scanner across a
// boustrophedon grid of rows and columns, deduplicates symbols within
// an image, and optionally cross-checks them against a persistent
// cache across images. Ported from zbar/img_scanner.c.
package imagescanner

import (
	"errors"
	"fmt"

	"github.com/cocosip/go-zbarscan/symbol"
)

// ErrUnsupportedFormat is returned by ScanImage when the image's
// FourCC is not a supported grayscale format.
var ErrUnsupportedFormat = errors.New("imagescanner: unsupported image format")

// Image is a grayscale raster to scan. Format must be "Y800" or
// "GRAY"; Pix holds Width*Height bytes in row-major order.
type Image struct {
	Format string
	Width  int
	Height int
	Pix    []byte

	// Syms is the head of this image's detected symbol list, valid
	// after ScanImage returns. Consumers wishing to retain a symbol
	// past the next ScanImage call must Ref it.
	Syms  *symbol.Symbol
	nsyms int
}

func (img *Image) isGray() bool {
	return img.Format == "Y800" || img.Format == "GRAY"
}

func (img *Image) at(x, y int) byte {
	return img.Pix[y*img.Width+x]
}

func (img *Image) validate() error {
	if !img.isGray() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, img.Format)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("imagescanner: invalid dimensions %dx%d", img.Width, img.Height)
	}
	if len(img.Pix) < img.Width*img.Height {
		return fmt.Errorf("imagescanner: pixel buffer too small: have %d, need %d", len(img.Pix), img.Width*img.Height)
	}
	return nil
}
