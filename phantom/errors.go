// Package phantom is the facade over this module's primitives: a
// capability-trait surface (Signer, IBE, PKE, KEM, KeyExchange)
// defined as Go interfaces so external scheme packages can implement
// them against ntru, ring, fft, gauss and fpe, plus three concrete,
// testable realizations of that surface - an NTRU/Falcon-style
// Signer and a DLP-style IBE, both backed by ntru's trapdoor and
// ntru/ldl's preimage sampler, and an ECDH KeyExchange over package
// ecc - and a bare pass-through to fpe.Context for format-preserving
// encryption.
//
// Grounded on core/rlwe/params.go's (Parameters{}, error) constructor
// idiom and fmt.Errorf("%s: %w", ...) wrapping, generalized here to a
// facade that resolves to one of several concrete implementations
// behind a single Context type (a Go PIMPL: struct{ impl any } plus
// type-asserting accessors) rather than one fixed scheme.
package phantom

import "github.com/neil-smyth/phantom/internal/errs"

// Sentinel errors re-exported from internal/errs so callers only ever
// import this one package to check error identity with errors.Is,
// never internal/errs directly.
var (
	ErrInvalidArgument   = errs.ErrInvalidArgument
	ErrNotInvertible     = errs.ErrNotInvertible
	ErrPointError        = errs.ErrPointError
	ErrDecodeError       = errs.ErrDecodeError
	ErrAuthFailed        = errs.ErrAuthFailed
	ErrResourceExhausted = errs.ErrResourceExhausted
	ErrCancelled         = errs.ErrCancelled
)
