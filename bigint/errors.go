package bigint

import "github.com/neil-smyth/phantom/internal/errs"

// ErrInvalidArgument and ErrNotInvertible alias the module-wide
// sentinels in internal/errs so callers can use errors.Is uniformly
// whether they hold a bigint-flavored error or one from any other
// package, including the root phantom facade.
var (
	ErrInvalidArgument = errs.ErrInvalidArgument
	ErrNotInvertible   = errs.ErrNotInvertible
)
