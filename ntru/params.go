package ntru

import "math"

// Params fixes the ring degree, modulus and sampling/rejection
// constants for one NTRU trapdoor parameter set, grounded on spec.md
// §4.10's fg-sampling and public-key derivation description.
type Params struct {
	LogN      int
	N         int
	Q         uint64
	SigmaFG   float64 // 1.17 * sqrt(q / 2N)
	GSBound   float64 // (1.17)^2 * q, the Gram-Schmidt norm rejection bound
	MaxAttempts int
}

// NewParams derives SigmaFG and GSBound from logN and q, matching the
// constants spec.md §4.10 names directly rather than hand-tuning a
// separate constant per parameter set.
func NewParams(logN int, q uint64, maxAttempts int) Params {
	n := 1 << uint(logN)
	sigma := 1.17 * math.Sqrt(float64(q)/(2*float64(n)))
	return Params{
		LogN:        logN,
		N:           n,
		Q:           q,
		SigmaFG:     sigma,
		GSBound:     1.17 * 1.17 * float64(q),
		MaxAttempts: maxAttempts,
	}
}

// ParamsFalcon512 and ParamsFalcon1024 mirror the two standard
// Falcon/DLP-IBE parameter sets named directly by SPEC_FULL.md's Open
// Question resolution (logN/q are the scheme's defining constants, not
// values this package invents).
var (
	ParamsFalcon512  = NewParams(9, 12289, 4096)
	ParamsFalcon1024 = NewParams(10, 12289, 4096)
)
