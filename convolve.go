package hrf

import (
	"errors"
	"fmt"
	"log"
	"math"
)

// Config holds convolution configuration. TRDuration and
// TemporalResolution are required; the zero value of every other field
// selects a default.
type Config struct {
	// TRDuration is the repetition time in seconds. Must be > 0.
	TRDuration float64

	// TemporalResolution is the number of stimulus samples per second.
	// It must match the row spacing of the stimulus function and lie in
	// (0, MaxTemporalResolution]. DefaultTemporalResolution is the usual choice.
	TemporalResolution float64

	// Kernel is the HRF to convolve with. nil selects BuiltIn().
	Kernel Kernel

	// DisableScaling turns off peak normalization. By default every output
	// column is divided by its own maximum so that its peak is 1.
	DisableScaling bool

	// EnableParallel processes stimulus columns concurrently.
	// Results are identical to sequential processing.
	EnableParallel bool

	// Logger receives the stimulus shape warning. nil selects log.Default().
	Logger *log.Logger
}

// Common errors returned by the convolver.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid HRF configuration")

	// ErrInvalidKernel indicates an unusable HRF kernel.
	ErrInvalidKernel = errors.New("invalid HRF kernel")

	// ErrZeroStride indicates TemporalResolution*TRDuration is below one sample.
	ErrZeroStride = errors.New("TR shorter than one stimulus sample")

	// ErrEmptyStimulus indicates a stimulus function with no rows or no columns.
	ErrEmptyStimulus = errors.New("empty stimulus function")

	// ErrStimulusTooShort indicates fewer stimulus rows than one TR.
	ErrStimulusTooShort = errors.New("stimulus function shorter than one TR")

	// ErrInvalidStimulus indicates malformed stimulus input, such as ragged columns.
	ErrInvalidStimulus = errors.New("invalid stimulus function")
)

// stride returns the number of stimulus samples per TR.
func (c *Config) stride() int {
	return int(c.TemporalResolution * c.TRDuration)
}

// kernel returns the effective kernel.
func (c *Config) kernel() Kernel {
	if c.Kernel == nil {
		return BuiltIn()
	}
	return c.Kernel
}

// logger returns the effective logger.
func (c *Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !(c.TRDuration > 0) || math.IsInf(c.TRDuration, 0) {
		return fmt.Errorf("%w: TR duration must be positive and finite, got %v",
			ErrInvalidConfig, c.TRDuration)
	}

	if err := validateResolution(c.TemporalResolution); err != nil {
		return err
	}

	samples := c.TemporalResolution * c.TRDuration
	if samples < 1 {
		return fmt.Errorf("%w: %v samples/s * %v s", ErrZeroStride, c.TemporalResolution, c.TRDuration)
	}
	if samples > math.MaxInt32 {
		return fmt.Errorf("%w: TR spans %g samples", ErrInvalidConfig, samples)
	}

	return nil
}

// Info describes a configured convolver.
type Info struct {
	// Kernel is the kernel name.
	Kernel string

	// KernelLength is the number of kernel taps.
	KernelLength int

	// Stride is the number of stimulus samples per TR.
	Stride int

	// TemporalResolution is the effective stimulus sampling rate.
	TemporalResolution float64

	// TRDuration is the repetition time in seconds.
	TRDuration float64

	// Scaling reports whether columns are peak-normalized.
	Scaling bool

	// FFT reports whether convolution runs in the frequency domain.
	FFT bool

	// FFTSize is the transform length per overlap-save block, or 0 on the
	// direct path.
	FFTSize int

	// MidpointOffset is the offset, in stimulus samples, of each output
	// sample within its TR window.
	MidpointOffset int

	// OutputRatio is the number of output rows per stimulus sample (1/Stride).
	OutputRatio float64

	// MemoryUsage is the approximate memory of the kernel, its spectrum and
	// one TR of output, in bytes.
	MemoryUsage int64

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}
