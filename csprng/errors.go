package csprng

import "github.com/neil-smyth/phantom/internal/errs"

// ErrResourceExhausted is returned when the caller's entropy callback
// refuses to produce seed material (a zero-length fill).
var ErrResourceExhausted = errs.ErrResourceExhausted
