package engine

// FFT convolution constants.
const (
	// Minimum kernel length to use FFT convolution (below this, direct is faster).
	// The default HRF at 100 samples/s has 3000 taps and always takes the FFT path.
	minKernelForFFT = 400

	// Default FFT block size (power of 2 for efficiency)
	defaultFFTBlockSize = 512

	// fftHermitianDivisor is used to calculate unique frequency bins in real FFT.
	// Due to Hermitian symmetry, a real FFT of size N has N/2 + 1 unique complex coefficients.
	fftHermitianDivisor = 2

	// fftSizeFactor sets the FFT size to at least this multiple of the kernel length.
	fftSizeFactor = 2
)

// Decimation constants.
const (
	// midpointDivisor selects the middle sample of each TR window.
	midpointDivisor = 2
)

// Byte sizes for memory estimates.
const (
	bytesPerFloat64    = 8
	bytesPerComplex128 = 16
)
