package proneval

import (
	"github.com/rs/zerolog"
)

// Diagnostics are silent unless a logger is set.
var log = zerolog.Nop()

// SetLogger replaces the logger used for
// load and segmentation diagnostics.
func SetLogger(l zerolog.Logger) {
	log = l
}
