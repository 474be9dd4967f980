// Package engine implements the numeric kernels behind HRF convolution:
// full linear convolution (direct SIMD or overlap-save FFT), midpoint
// decimation to one sample per TR, and peak normalization.
package engine

import (
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f64"
)

// FullLength returns the length of the full linear convolution of
// signalLen samples with kernelLen taps, or 0 if either is empty.
func FullLength(signalLen, kernelLen int) int {
	if signalLen == 0 || kernelLen == 0 {
		return 0
	}
	return signalLen + kernelLen - 1
}

// UsesFFT reports whether a kernel of kernelLen taps is convolved in the
// frequency domain. Kernels shorter than minKernelForFFT use the direct path.
func UsesFFT(kernelLen int) bool {
	return kernelLen >= minKernelForFFT
}

// ConvolveDirect writes the full linear convolution of signal and kernel to
// dst using SIMD dot products. dst must have length len(signal)+len(kernel)-1.
func ConvolveDirect(dst, signal, kernel []float64) {
	m := len(kernel)
	n := FullLength(len(signal), m)
	if n == 0 || len(dst) < n {
		return
	}

	// y[i] = sum_k signal[i-k] * kernel[k] = dot(padded[i:i+m], reversed)
	reversed := make([]float64, m)
	for i := range m {
		reversed[i] = kernel[m-1-i]
	}

	padded := make([]float64, len(signal)+2*(m-1))
	copy(padded[m-1:], signal)

	for i := range n {
		dst[i] = f64.DotProduct(padded[i:i+m], reversed)
	}
}

// SIMDInfo describes the SIMD instruction set the vector kernels run on.
func SIMDInfo() string {
	return cpu.Info()
}
