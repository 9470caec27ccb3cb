package decoder

import "errors"

var (
	// ErrInvalidConfig indicates a configuration key/value pair this
	// decoder does not recognise or accept.
	ErrInvalidConfig = errors.New("invalid decoder configuration")
)
