package imagescanner

import (
	"log"
	"os"
	"time"

	"github.com/cocosip/go-zbarscan/decoder"
	"github.com/cocosip/go-zbarscan/scanner"
	"github.com/cocosip/go-zbarscan/symbol"
	"github.com/google/uuid"
)

// Handler receives the scanned image once scan_image completes with
// at least one surfaced symbol.
type Handler func(img *Image, userdata interface{})

// Scanner drives the intensity scanner (§4.1) and width decoder
// dispatcher (§4.2) across a 2-D image, matching zbar_image_scanner_t.
type Scanner struct {
	scn   *scanner.Scanner
	dcode *decoder.Decoder
	cfg   Config

	pool  symbol.Pool
	cache symbol.Cache

	enableCache bool
	handler     Handler
	userdata    interface{}

	id     uuid.UUID
	logger *log.Logger

	curImg *Image
}

// New constructs an image scanner driving dcode, the width-decoder
// dispatcher assembled by the caller (an eanupc.Decoder and/or a
// code128.Decoder registered on it).
func New(dcode *decoder.Decoder) *Scanner {
	is := &Scanner{
		dcode:  dcode,
		cfg:    DefaultConfig(),
		id:     uuid.New(),
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
	is.scn = scanner.New(dcode)
	return is
}

// SetLogger overrides the default stderr logger, e.g. to route
// diagnostics through an application's own logging pipeline.
func (is *Scanner) SetLogger(l *log.Logger) {
	is.logger = l
}

// SetConfig validates cfg and replaces the image-scanner-level
// configuration with it. Per-symbology decoder settings are not part
// of cfg; configure eanupc.Config and code128 directly when building
// the Symbology chain.
func (is *Scanner) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	is.cfg = cfg
	return nil
}

// SetDataHandler installs handler, returning the previously installed
// one (nil if none).
func (is *Scanner) SetDataHandler(h Handler, userdata interface{}) Handler {
	prev := is.handler
	is.handler = h
	is.userdata = userdata
	return prev
}

// EnableCache toggles the cross-image consistency cache. Disabling it
// drains all cached entries back into the recycle pool.
func (is *Scanner) EnableCache(enable bool) {
	if !enable && is.enableCache {
		is.cache.Drain(&is.pool)
	}
	is.enableCache = enable
}

// newScan ends the current scan line on both the intensity scanner
// and the width-decoder dispatcher: a fresh line must not inherit the
// previous line's element window or shared lock.
func (is *Scanner) newScan() symbol.Type {
	t := is.scn.NewScan()
	is.dcode.NewScan()
	return t
}

// recycleSyms returns every symbol still attached to img to the
// recycle pool, honouring outstanding external references.
func (is *Scanner) recycleSyms(img *Image) {
	kept := is.pool.RecycleList(img.Syms)
	img.Syms = kept
	img.nsyms = 0
	for s := kept; s != nil; s = s.Next() {
		img.nsyms++
	}
}

// ScanImage applies the boustrophedon row/column scan pattern to img,
// deduplicating symbols within the image and optionally cross-image
// via the consistency cache. Returns the number of surfaced symbols,
// or -1 if img.Format is not a supported grayscale format.
func (is *Scanner) ScanImage(img *Image) (int, error) {
	if err := img.validate(); err != nil {
		return -1, err
	}

	is.recycleSyms(img)
	is.curImg = img

	w, h := img.Width, img.Height

	density := is.cfg.YDensity
	if density > 0 {
		x, y := 0, 0
		border := (((h - 1) % density) + 1) / 2
		if border > h/2 {
			border = h / 2
		}
		y += border

		if t := is.newScan(); t != symbol.None {
			is.symbolHandler(x, y)
		}

		for y < h {
			for x < w {
				if t := is.scn.ScanY(int(img.at(x, y))); t != symbol.None {
					is.symbolHandler(x, y)
				}
				x++
			}
			x, y = is.quietBorder(x, y)

			x, y = x-1, y+density
			if y >= h {
				break
			}

			for x > 0 {
				if t := is.scn.ScanY(int(img.at(x, y))); t != symbol.None {
					is.symbolHandler(x, y)
				}
				x--
			}
			x, y = is.quietBorder(x, y)

			x, y = x+1, y+density
		}
	}

	density = is.cfg.XDensity
	if density > 0 {
		x, y := 0, 0
		border := (((w - 1) % density) + 1) / 2
		if border > w/2 {
			border = w / 2
		}
		x += border

		for x < w {
			for y < h {
				if t := is.scn.ScanY(int(img.at(x, y))); t != symbol.None {
					is.symbolHandler(x, y)
				}
				y++
			}
			x, y = is.quietBorder(x, y)

			x, y = x+density, y-1
			if x >= w {
				break
			}

			for y >= 0 {
				if t := is.scn.ScanY(int(img.at(x, y))); t != symbol.None {
					is.symbolHandler(x, y)
				}
				y--
			}
			x, y = is.quietBorder(x, y)

			x, y = x+density, y+1
		}
	}

	is.curImg = nil

	if img.nsyms > 0 && !is.enableCache && (density == 1 || is.cfg.YDensity == 1) {
		is.filterLowQuality(img)
	}

	if img.nsyms > 0 && is.handler != nil {
		is.handler(img, is.userdata)
	}

	return img.nsyms, nil
}

// quietBorder flushes the scanner's pending edge state twice, then
// starts a fresh scan line, surfacing any symbols that complete on
// these synthetic boundary edges. Ported from quiet_border.
func (is *Scanner) quietBorder(x, y int) (int, int) {
	if t := is.scn.Flush(); t != symbol.None {
		is.symbolHandler(x, y)
	}
	if t := is.scn.Flush(); t != symbol.None {
		is.symbolHandler(x, y)
	}
	if t := is.newScan(); t != symbol.None {
		is.symbolHandler(x, y)
	}
	return x, y
}

// monoEpoch is the reference point for symbol timestamps: milliseconds
// elapsed since it are read from Go's monotonic clock.
var monoEpoch = time.Now()

// symbolHandler processes the dispatcher's most recent decode result:
// dedup within the current image and cross-image cache consult. Ported
// from symbol_handler.
func (is *Scanner) symbolHandler(x, y int) {
	t := is.dcode.GetType()
	if t <= symbol.Partial {
		return
	}
	data := is.dcode.Data()

	for s := is.curImg.Syms; s != nil; s = s.Next() {
		if s.SameAs(t, data) {
			s.Quality++
			if is.cfg.Position {
				s.Points = append(s.Points, symbol.Point{X: x, Y: y})
			}
			return
		}
	}

	sym := is.pool.Alloc(t, data)
	sym.Ref()
	sym.TimeMS = time.Since(monoEpoch).Milliseconds()
	if is.cfg.Position {
		sym.Points = append(sym.Points, symbol.Point{X: x, Y: y})
	}

	sym.SetNext(is.curImg.Syms)
	is.curImg.Syms = sym
	is.curImg.nsyms++

	if is.enableCache {
		is.cache.Consult(&is.pool, sym, sym.TimeMS)
	} else {
		sym.CacheCount = 0
	}
}

// filterLowQuality drops linear symbols that were confirmed fewer than
// three times (Quality < 3), a heuristic against spurious EAN/UPC
// detections when running a single row/column density.
func (is *Scanner) filterLowQuality(img *Image) {
	var head *symbol.Symbol
	var tail *symbol.Symbol
	for s := img.Syms; s != nil; {
		next := s.Next()
		s.SetNext(nil)
		if s.Type.IsLinear() && s.Quality < 3 {
			is.pool.Recycle(s)
			img.nsyms--
		} else if head == nil {
			head, tail = s, s
		} else {
			tail.SetNext(s)
			tail = s
		}
		s = next
	}
	img.Syms = head
}
