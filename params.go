package hrf

import (
	"fmt"
)

// Params holds the double-gamma HRF shape and sampling resolution.
type Params struct {
	// ResponseDelay is the number of seconds until the peak of the HRF.
	ResponseDelay float64

	// UndershootDelay is the number of seconds until the trough of the HRF.
	UndershootDelay float64

	// ResponseDispersion controls how wide the rising peak is.
	ResponseDispersion float64

	// UndershootDispersion controls how wide the undershoot is.
	UndershootDispersion float64

	// ResponseScale is the amplitude of the response relative to its peak.
	ResponseScale float64

	// UndershootScale is the amplitude of the undershoot relative to its trough.
	UndershootScale float64

	// TemporalResolution is the number of samples per second.
	// Must be in (0, MaxTemporalResolution].
	TemporalResolution float64

	// Undershoot selects how the undershoot exponent is parenthesized.
	Undershoot UndershootForm
}

// UndershootForm selects the exponent of the undershoot term.
type UndershootForm int

const (
	// UndershootAsPublished evaluates exp(-(t - peak/dispersion)), the form
	// used by the reference implementation. It is the default so that
	// regressors stay comparable with existing analyses.
	UndershootAsPublished UndershootForm = iota

	// UndershootSymmetric evaluates exp(-(t - peak)/dispersion), mirroring
	// the response term as in Glover (1999).
	UndershootSymmetric
)

// String returns the form name.
func (u UndershootForm) String() string {
	switch u {
	case UndershootAsPublished:
		return "as-published"
	case UndershootSymmetric:
		return "symmetric"
	default:
		return fmt.Sprintf("UndershootForm(%d)", int(u))
	}
}

// DefaultParams returns the canonical double-gamma shape at 100 samples/s.
func DefaultParams() Params {
	return Params{
		ResponseDelay:        DefaultResponseDelay,
		UndershootDelay:      DefaultUndershootDelay,
		ResponseDispersion:   DefaultResponseDispersion,
		UndershootDispersion: DefaultUndershootDispersion,
		ResponseScale:        DefaultResponseScale,
		UndershootScale:      DefaultUndershootScale,
		TemporalResolution:   DefaultTemporalResolution,
	}
}

// Validate checks the sampling parameters. Shape parameters are not
// checked: degenerate shapes produce NaN or Inf samples instead of errors.
func (p *Params) Validate() error {
	if err := validateResolution(p.TemporalResolution); err != nil {
		return err
	}

	if p.Undershoot != UndershootAsPublished && p.Undershoot != UndershootSymmetric {
		return fmt.Errorf("%w: unknown undershoot form %d", ErrInvalidConfig, int(p.Undershoot))
	}

	return nil
}

// validateResolution rejects sampling rates outside (0, MaxTemporalResolution],
// including NaN.
func validateResolution(r float64) error {
	if !(r > 0) || r > MaxTemporalResolution {
		return fmt.Errorf("%w: temporal resolution must be in (0, %g] samples/s, got %v",
			ErrInvalidConfig, float64(MaxTemporalResolution), r)
	}
	return nil
}

// Len returns the number of samples in an HRF synthesized with p.
func (p *Params) Len() int {
	return int(HRFLengthSeconds * p.TemporalResolution)
}
