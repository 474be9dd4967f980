package hrf

import "math"

// DoubleGamma synthesizes a double-gamma HRF: a gamma-shaped response minus
// a delayed, smaller gamma-shaped undershoot, sampled at p.TemporalResolution
// over HRFLengthSeconds.
//
// The result has p.Len() samples. The last sample is never evaluated and is
// left at baseline (0); convolution output lengths depend on it, so it is
// kept rather than filled in.
//
// Only the sampling resolution is validated. Zero or negative delays and
// dispersions propagate as NaN or Inf samples.
func DoubleGamma(p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	hrf := make([]float64, p.Len())

	responsePeak := p.ResponseDelay * p.ResponseDispersion
	undershootPeak := p.UndershootDelay * p.UndershootDispersion

	for i := 0; i < len(hrf)-1; i++ {
		t := float64(i) / p.TemporalResolution

		response := p.ResponseScale *
			math.Pow(t/responsePeak, p.ResponseDelay) *
			math.Exp(-(t-responsePeak)/p.ResponseDispersion)

		undershoot := p.UndershootScale *
			math.Pow(t/undershootPeak, p.UndershootDelay) *
			math.Exp(p.undershootExponent(t, undershootPeak))

		hrf[i] = response - undershoot
	}

	return hrf, nil
}

// undershootExponent returns the exponent of the undershoot term at t.
func (p *Params) undershootExponent(t, peak float64) float64 {
	if p.Undershoot == UndershootSymmetric {
		return -(t - peak) / p.UndershootDispersion
	}
	// Only the peak is divided by the dispersion.
	return -(t - peak/p.UndershootDispersion)
}
