package hrf

import (
	"gonum.org/v1/gonum/mat"
)

// Common repetition times in seconds.
const (
	// TRStandard is the conventional whole-brain EPI repetition time.
	TRStandard = 2.0

	// TRMultiband is a typical multiband (simultaneous multi-slice) repetition time.
	TRMultiband = 1.0

	// TRFast is a typical accelerated multiband repetition time.
	TRFast = 0.72
)

// DefaultHRF returns the default double-gamma HRF sampled at
// temporalResolution samples per second.
func DefaultHRF(temporalResolution float64) ([]float64, error) {
	p := DefaultParams()
	p.TemporalResolution = temporalResolution
	return DoubleGamma(p)
}

// ConvolveHRF is a convenience function for one-shot convolution with the
// defaults: built-in double-gamma HRF, 100 samples per second, peak
// normalization on. stim has one row per timepoint and one column per
// condition.
func ConvolveHRF(stim mat.Matrix, trDuration float64) (*mat.Dense, error) {
	return Convolve(stim, &Config{
		TRDuration:         trDuration,
		TemporalResolution: DefaultTemporalResolution,
	})
}

// Convolve creates a Convolver from config and processes stim with it.
// The kernel is synthesized for this call only.
func Convolve(stim mat.Matrix, config *Config) (*mat.Dense, error) {
	c, err := New(config)
	if err != nil {
		return nil, err
	}
	return c.Process(stim)
}

// ConvolveColumns is the planar counterpart of Convolve: columns[c] is the
// timecourse of condition c.
func ConvolveColumns(columns [][]float64, config *Config) ([][]float64, error) {
	c, err := New(config)
	if err != nil {
		return nil, err
	}
	return c.ProcessColumns(columns)
}

// GetInfo returns information about a convolver.
func GetInfo(c *Convolver) Info {
	return c.Info()
}
