package engine

import (
	"errors"
	"fmt"
)

// ErrShortInput indicates a stage received fewer samples than it needs.
var ErrShortInput = errors.New("input shorter than stage window")

// ConvolveStage convolves each input with a fixed kernel.
// It satisfies pipeline.Stage. Long kernels are transformed once, at
// construction; a stage may be shared between goroutines.
type ConvolveStage struct {
	kernel []float64
	fft    *FFTConvolver // nil on the direct path
}

// NewConvolveStage creates a convolution stage. The kernel is not copied
// and must not be modified while the stage is in use.
func NewConvolveStage(kernel []float64) *ConvolveStage {
	s := &ConvolveStage{kernel: kernel}
	if UsesFFT(len(kernel)) {
		s.fft = NewFFTConvolver(kernel)
	}
	return s
}

// Convolve returns the full linear convolution of signal and the kernel,
// matching numpy.convolve in "full" mode. Non-finite kernel or signal
// values propagate into the result.
func (s *ConvolveStage) Convolve(signal []float64) []float64 {
	n := FullLength(len(signal), len(s.kernel))
	if n == 0 {
		return []float64{}
	}

	dst := make([]float64, n)
	if s.fft == nil {
		ConvolveDirect(dst, signal, s.kernel)
		return dst
	}

	s.fft.Convolve(dst, signal)
	return dst
}

// Process returns the full linear convolution of input with the kernel.
func (s *ConvolveStage) Process(input []float64) ([]float64, error) {
	return s.Convolve(input), nil
}

// Name returns "convolve".
func (s *ConvolveStage) Name() string { return "convolve" }

// GetMemoryUsage returns approximate memory usage in bytes.
func (s *ConvolveStage) GetMemoryUsage() int64 {
	usage := int64(len(s.kernel)) * bytesPerFloat64
	if s.fft != nil {
		usage += s.fft.MemoryUsage()
	}
	return usage
}

// GetFilterLength returns the number of kernel taps.
func (s *ConvolveStage) GetFilterLength() int { return len(s.kernel) }

// FFTSize returns the transform length, or 0 on the direct path.
func (s *ConvolveStage) FFTSize() int {
	if s.fft == nil {
		return 0
	}
	return s.fft.FFTSize()
}

// DecimateStage keeps the midpoint sample of each whole TR window.
type DecimateStage struct {
	stride   int
	duration int
}

// NewDecimateStage creates a decimation stage producing duration samples,
// one per stride-long window.
func NewDecimateStage(stride, duration int) *DecimateStage {
	return &DecimateStage{stride: stride, duration: duration}
}

// Process truncates input to whole windows and samples each midpoint.
func (s *DecimateStage) Process(input []float64) ([]float64, error) {
	out := MidpointDecimate(input, s.stride, s.duration)
	if out == nil {
		return nil, fmt.Errorf("%w: have %d samples, need %d",
			ErrShortInput, len(input), s.stride*s.duration)
	}
	return out, nil
}

// Name returns "decimate".
func (s *DecimateStage) Name() string { return "decimate" }

// GetMemoryUsage returns approximate memory usage in bytes.
func (s *DecimateStage) GetMemoryUsage() int64 {
	return int64(s.duration) * bytesPerFloat64
}

// NormalizeStage scales each input so its maximum is 1.
type NormalizeStage struct{}

// NewNormalizeStage creates a peak-normalization stage.
func NewNormalizeStage() *NormalizeStage {
	return &NormalizeStage{}
}

// Process normalizes input in place and returns it.
func (s *NormalizeStage) Process(input []float64) ([]float64, error) {
	PeakNormalize(input, input)
	return input, nil
}

// Name returns "normalize".
func (s *NormalizeStage) Name() string { return "normalize" }

// GetMemoryUsage returns 0; normalization works in place.
func (s *NormalizeStage) GetMemoryUsage() int64 { return 0 }
