package engine

// MidpointDecimate truncates signal to duration*stride samples and keeps the
// middle sample of each stride-long window, i.e. indices stride/2 + j*stride
// for j in [0, duration). This assumes slice-time correction aligned every
// slice to the centre of the TR.
//
// It returns nil when stride or duration is not positive or the signal is
// shorter than duration*stride.
func MidpointDecimate(signal []float64, stride, duration int) []float64 {
	if stride <= 0 || duration <= 0 {
		return nil
	}

	truncated := duration * stride
	if len(signal) < truncated {
		return nil
	}
	signal = signal[:truncated]

	out := make([]float64, 0, duration)
	for i := stride / midpointDivisor; i < truncated; i += stride {
		out = append(out, signal[i])
	}
	return out
}

