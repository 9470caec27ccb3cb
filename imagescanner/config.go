package imagescanner

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a configuration key/value pair this
// image scanner does not recognise or accept.
var ErrInvalidConfig = errors.New("imagescanner: invalid configuration")

// Config holds the image-level scan parameters (§4.3 set_config).
// Per-symbology decoder configuration is owned by the decoder package
// and is out of scope here.
type Config struct {
	// XDensity and YDensity space out the vertical/horizontal scan
	// lines; 0 disables that axis entirely.
	XDensity int
	YDensity int

	// Position, when set, records each symbol's hit points.
	Position bool
}

// DefaultConfig matches zbar_image_scanner_create's defaults: scan
// every row and every column, recording positions.
func DefaultConfig() Config {
	return Config{XDensity: 1, YDensity: 1, Position: true}
}

func (c Config) Validate() error {
	if c.XDensity < 0 || c.YDensity < 0 {
		return fmt.Errorf("%w: density must be >= 0", ErrInvalidConfig)
	}
	return nil
}
