package xof

import "github.com/neil-smyth/phantom/internal/errs"

// ErrInit is returned by NewShake128/NewShake256 when asked for an
// unsupported digest length. It wraps the shared invalid-argument
// sentinel so callers can check with errors.Is against either name.
var ErrInit = errs.ErrInvalidArgument
