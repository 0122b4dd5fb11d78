package gauss

import "github.com/neil-smyth/phantom/internal/errs"

// ErrInvalidArgument is returned when a sampler is constructed with a
// parameter set that cannot produce a usable distribution (zero sigma,
// a tail cut too small to allocate at least two table entries).
var ErrInvalidArgument = errs.ErrInvalidArgument
