package engine

import (
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// PeakNormalize writes src scaled by 1/max(src) into dst, so the largest
// value becomes 1. dst and src may alias.
//
// A zero maximum is not guarded: an all-zero input becomes all NaN
// (0 * +Inf), and a column whose maximum is negative is flipped in sign.
func PeakNormalize(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	peak := floats.Max(src)
	f64.Scale(dst[:len(src)], src, 1/peak)
}
