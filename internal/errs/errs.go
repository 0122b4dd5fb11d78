// Package errs holds the sentinel error values shared across every
// package in this module (see spec.md §7 / SPEC_FULL.md §7). It lives
// below the root phantom facade so that leaf packages (bigint, ring,
// ecc, gauss, ntru, fpe, csprng, xof) can return errors callers check
// with errors.Is against phantom's re-exported names without creating
// an import cycle back to the root package.
package errs

import "errors"

var (
	// ErrInvalidArgument — bad parameter set, unsupported key length,
	// tweak wrong size, alphabet mismatch, zero-length input where
	// forbidden.
	ErrInvalidArgument = errors.New("phantom: invalid argument")
	// ErrNotInvertible — modular or polynomial inverse failed.
	ErrNotInvertible = errors.New("phantom: not invertible")
	// ErrPointError — ECC operation hit infinity or a non-invertible
	// z-coordinate.
	ErrPointError = errors.New("phantom: point error")
	// ErrDecodeError — packed key, signature or ciphertext malformed.
	ErrDecodeError = errors.New("phantom: decode error")
	// ErrAuthFailed — AEAD tag mismatch or signature verification
	// mismatch.
	ErrAuthFailed = errors.New("phantom: authentication failed")
	// ErrResourceExhausted — CSPRNG entropy callback refused, or a
	// bounded retry loop ran out of attempts.
	ErrResourceExhausted = errors.New("phantom: resource exhausted")
	// ErrCancelled — operation aborted via context cancellation.
	ErrCancelled = errors.New("phantom: cancelled")
)
