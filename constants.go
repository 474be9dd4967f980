package hrf

// HRF window
const (
	// HRFLengthSeconds is the duration covered by every synthesized HRF.
	HRFLengthSeconds = 30

	// DefaultTemporalResolution is the default number of samples per second
	// for both the HRF and the stimulus function.
	DefaultTemporalResolution = 100.0

	// MaxTemporalResolution bounds the sampling rate so that a 30 s HRF
	// stays addressable (30e6 samples at the limit).
	MaxTemporalResolution = 1e6
)

// Double-gamma shape defaults (Glover, 1999; Wouters et al., 2011)
const (
	DefaultResponseDelay        = 6.0
	DefaultUndershootDelay      = 12.0
	DefaultResponseDispersion   = 0.9
	DefaultUndershootDispersion = 0.9
	DefaultResponseScale        = 1.0
	DefaultUndershootScale      = 0.035
)

// SPM canonical HRF shape
const (
	spmResponseShape   = 6.0  // Gamma shape of the response, peaks near 5 s
	spmUndershootShape = 16.0 // Gamma shape of the undershoot, trough near 15 s
	spmUndershootRatio = 6.0  // Response-to-undershoot amplitude ratio
	spmGammaRate       = 1.0  // Gamma rate (1/dispersion) for both terms
)

// Kernel names
const (
	// KernelDoubleGamma selects the built-in double-gamma HRF.
	KernelDoubleGamma = "double_gamma"

	// KernelSPM selects the SPM canonical HRF.
	KernelSPM = "spm"

	kernelExplicit = "explicit"
)
