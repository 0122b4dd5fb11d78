package fft

import "github.com/klauspost/cpuid/v2"

// HasAVX2 reports whether the running CPU supports AVX2. No kernel in
// this package currently branches on it; it is exposed for callers
// that want to choose a batch size or log the execution environment.
func HasAVX2() bool {
	return cpuid.CPU.Has(cpuid.AVX2)
}
