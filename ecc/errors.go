package ecc

import (
	"fmt"

	"github.com/neil-smyth/phantom/internal/errs"
)

// ErrPointError is returned when a point operation hits a
// non-invertible denominator (e.g. doubling a 2-torsion point during
// mixed-coordinate conversion).
var ErrPointError = errs.ErrPointError

func errPointErrorf(where string) error {
	return fmt.Errorf("%s: %w", where, ErrPointError)
}
