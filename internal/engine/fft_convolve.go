package engine

import (
	"sync"

	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTConvolver performs overlap-save FFT convolution for long kernels.
// This is O(N log N) vs O(N×M) for direct convolution, which matters for
// HRF kernels that span thousands of samples.
//
// Overlap-save method:
//  1. Process input in blocks of fftSize samples (with kernelLen-1 overlap)
//  2. Each block produces blockSize = fftSize - kernelLen + 1 valid output samples
//  3. The first kernelLen-1 output samples of each block are discarded (circular wrap)
//
// The kernel spectrum is computed once and only read afterwards. Each
// Convolve call borrows an FFT plan and working buffers from a pool, so a
// convolver may be shared between goroutines.
type FFTConvolver struct {
	fftSize   int
	blockSize int // Valid output samples per block = fftSize - kernelLen + 1

	// Precomputed kernel in frequency domain
	kernelFFT []complex128
	kernelLen int
	fftLen    int     // Length of FFT output = fftSize/2 + 1
	scale     float64 // 1/fftSize for IFFT normalization (gonum doesn't normalize)

	workspaces sync.Pool // *fftWorkspace
}

// fftWorkspace is the per-call state of an FFTConvolver. fourier.FFT keeps
// internal scratch space, so the plan travels with the buffers.
type fftWorkspace struct {
	fft         *fourier.FFT
	signalBlock []float64
	signalFFT   []complex128
	productFFT  []complex128
	ifftResult  []float64
}

func newFFTWorkspace(fft *fourier.FFT, fftSize, fftLen int) *fftWorkspace {
	return &fftWorkspace{
		fft:         fft,
		signalBlock: make([]float64, fftSize),
		signalFFT:   make([]complex128, fftLen),
		productFFT:  make([]complex128, fftLen),
		ifftResult:  make([]float64, fftSize),
	}
}

// NewFFTConvolver creates a new FFT convolver for the given kernel.
// The kernel is transformed once and reused for all convolutions.
// Returns nil for an empty kernel.
func NewFFTConvolver(kernel []float64) *FFTConvolver {
	kernelLen := len(kernel)
	if kernelLen == 0 {
		return nil
	}

	fftSize := FFTSizeFor(kernelLen)
	blockSize := fftSize - kernelLen + 1
	fft := fourier.NewFFT(fftSize)

	// The circular product of a block with the kernel as-is gives
	// out[kernelLen-1+q] = sum_k block[q+kernelLen-1-k] * kernel[k],
	// which is the true (flipped) convolution once the signal is
	// zero-padded by kernelLen-1 on the left.
	kernelPadded := make([]float64, fftSize)
	copy(kernelPadded, kernel)
	kernelFFT := fft.Coefficients(nil, kernelPadded)

	fftLen := fftSize/fftHermitianDivisor + 1

	c := &FFTConvolver{
		fftSize:   fftSize,
		blockSize: blockSize,
		kernelFFT: kernelFFT,
		kernelLen: kernelLen,
		fftLen:    fftLen,
		scale:     1.0 / float64(fftSize),
	}
	c.workspaces.New = func() any {
		return newFFTWorkspace(fourier.NewFFT(fftSize), fftSize, fftLen)
	}

	// The plan used for the kernel seeds the pool.
	c.workspaces.Put(newFFTWorkspace(fft, fftSize, fftLen))

	return c
}

// FFTSizeFor returns the transform length used for a kernel of kernelLen
// taps: the next power of 2 >= 2*kernelLen, at least defaultFFTBlockSize.
func FFTSizeFor(kernelLen int) int {
	fftSize := defaultFFTBlockSize
	for fftSize < fftSizeFactor*kernelLen {
		fftSize *= 2
	}
	return fftSize
}

// KernelLen returns the number of kernel taps.
func (c *FFTConvolver) KernelLen() int {
	return c.kernelLen
}

// FFTSize returns the transform length used per block.
func (c *FFTConvolver) FFTSize() int {
	return c.fftSize
}

// MemoryUsage returns the approximate size of the kernel spectrum plus one
// workspace, in bytes.
func (c *FFTConvolver) MemoryUsage() int64 {
	floats := int64(2 * c.fftSize)
	complexes := int64(len(c.kernelFFT) + 2*c.fftLen)
	return floats*bytesPerFloat64 + complexes*bytesPerComplex128
}

// Convolve writes the full linear convolution of signal with the kernel to dst.
// dst must have length >= len(signal) + kernelLen - 1; an empty signal is a no-op.
func (c *FFTConvolver) Convolve(dst, signal []float64) {
	signalLen := len(signal)
	outputLen := signalLen + c.kernelLen - 1
	if signalLen == 0 || len(dst) < outputLen {
		return
	}

	ws, _ := c.workspaces.Get().(*fftWorkspace)
	defer c.workspaces.Put(ws)

	overlap := c.kernelLen - 1

	// Zero-pad the signal so the valid region of every block is exactly the
	// full convolution: padded[p] = signal[p-overlap].
	padded := make([]float64, signalLen+2*overlap)
	copy(padded[overlap:], signal)
	paddedLen := len(padded)

	outIdx := 0
	for outIdx < outputLen {
		for i := range ws.signalBlock {
			ws.signalBlock[i] = 0
		}

		// Block b reads padded[b*blockSize : b*blockSize + fftSize],
		// zero-filled past the end.
		copyLen := c.fftSize
		if outIdx+copyLen > paddedLen {
			copyLen = paddedLen - outIdx
		}
		if copyLen > 0 {
			copy(ws.signalBlock, padded[outIdx:outIdx+copyLen])
		}

		ws.signalFFT = ws.fft.Coefficients(ws.signalFFT, ws.signalBlock)
		c.multiplyFFT(ws)
		ws.ifftResult = ws.fft.Sequence(ws.ifftResult, ws.productFFT)

		// Scale by 1/N (gonum's IFFT doesn't normalize)
		f64.Scale(ws.ifftResult, ws.ifftResult, c.scale)

		validSamples := c.blockSize
		if outIdx+validSamples > outputLen {
			validSamples = outputLen - outIdx
		}

		copy(dst[outIdx:outIdx+validSamples], ws.ifftResult[overlap:overlap+validSamples])

		outIdx += validSamples
	}
}

// multiplyFFT multiplies the block spectrum by kernelFFT using SIMD.
func (c *FFTConvolver) multiplyFFT(ws *fftWorkspace) {
	c128.Mul(ws.productFFT, ws.signalFFT, c.kernelFFT)
}
