// Package hrf models the fMRI signal evoked by a sequence of events.
//
// It synthesizes a canonical double-gamma hemodynamic response function
// (HRF) and convolves it with a stimulus function to produce a TR-sampled
// regressor suitable for a general linear model.
//
// # Features
//
//   - Double-gamma HRF with the Glover (1999) default shape
//   - SPM canonical HRF, or any caller-supplied HRF sequence
//   - Multi-condition stimulus functions as gonum matrices or planar slices
//   - One value per TR, sampled at the midpoint of each TR window
//   - Optional per-condition peak normalization
//   - FFT convolution for long kernels via gonum, SIMD dot products via
//     github.com/tphakala/simd for short ones
//   - Optional parallel processing of conditions
//
// # Quick Start
//
// A one-second event at t=0, sampled at 100 samples per second, 30 s long:
//
//	stim := mat.NewDense(3000, 1, nil)
//	for i := range 100 {
//	    stim.Set(i, 0, 1)
//	}
//	signal, err := hrf.ConvolveHRF(stim, 1.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// signal is 30x1, peak-normalized to 1
//
// For repeated use, or to change the kernel and scaling:
//
//	c, err := hrf.New(&hrf.Config{
//	    TRDuration:         2.0,
//	    TemporalResolution: hrf.DefaultTemporalResolution,
//	    Kernel:             hrf.SPMCanonical(),
//	    DisableScaling:     true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	signal, err := c.Process(stim)
//
// # Stimulus Functions
//
// A stimulus function has one row per timepoint at the temporal resolution
// set in [Config.TemporalResolution] (usually [DefaultTemporalResolution],
// 100 samples per second) and one column per condition. Values
// may be binary or weighted. A matrix with fewer rows than columns is
// probably transposed; it is processed anyway and a warning is logged.
//
// # Downsampling
//
// Each column is convolved with the HRF, truncated to a whole number of TRs
// and sampled once per TR at the middle sample of the TR window. This
// assumes slice-time correction aligned all slices to the middle of the TR.
//
// # Scaling
//
// By default each output column is divided by its maximum so that its peak
// is 1. If every event is shorter than a TR, a scaled regressor looks like
// one built from longer events; set [Config.DisableScaling] if absolute
// amplitude matters. An all-zero column scales to NaN rather than failing.
//
// # Numeric Degeneracy
//
// Shape parameters are not validated. Zero or negative delays and
// dispersions produce NaN or Inf samples, which propagate through the
// convolution. Only configuration that would break index arithmetic
// (a non-positive TR, a temporal resolution outside
// (0, MaxTemporalResolution], a TR shorter than one sample, an empty
// stimulus) is rejected with an error.
//
// # Thread Safety
//
// A [Convolver] holds immutable configuration, its kernel and the kernel
// spectrum. FFT work buffers are pooled per call, so one instance may be
// used by multiple goroutines at once.
package hrf
