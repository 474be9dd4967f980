package hrf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-hrf/internal/testutil"
	"gonum.org/v1/gonum/floats"
)

func TestBuiltInKernel(t *testing.T) {
	k := BuiltIn()
	assert.Equal(t, KernelDoubleGamma, k.Name())

	samples, err := k.Samples(100)
	require.NoError(t, err)

	expected, err := DoubleGamma(DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, expected, samples)

	coarse, err := k.Samples(10)
	require.NoError(t, err)
	assert.Len(t, coarse, 300)
}

func TestDoubleGammaKernel_UsesCallResolution(t *testing.T) {
	p := DefaultParams()
	p.TemporalResolution = 5 // replaced by Samples
	p.Undershoot = UndershootSymmetric

	samples, err := DoubleGammaKernel(p).Samples(100)
	require.NoError(t, err)

	p.TemporalResolution = 100
	expected, err := DoubleGamma(p)
	require.NoError(t, err)
	assert.Equal(t, expected, samples)
}

func TestExplicitKernel(t *testing.T) {
	src := []float64{0, 0.5, 1, 0.25}
	k := Explicit(src)
	src[2] = 99

	assert.Equal(t, "explicit", k.Name())

	samples, err := k.Samples(12345)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1, 0.25}, samples, "resolution is ignored and input is copied")

	samples[0] = 7
	again, err := k.Samples(1)
	require.NoError(t, err)
	assert.Zero(t, again[0])
}

func TestExplicitKernel_Empty(t *testing.T) {
	_, err := Explicit(nil).Samples(100)
	require.ErrorIs(t, err, ErrInvalidKernel)

	_, err = Explicit([]float64{}).Samples(100)
	require.ErrorIs(t, err, ErrInvalidKernel)
}

func TestSPMCanonical(t *testing.T) {
	k := SPMCanonical()
	assert.Equal(t, KernelSPM, k.Name())

	samples, err := k.Samples(100)
	require.NoError(t, err)
	require.Len(t, samples, 3000)
	testutil.AssertNoNaNOrInf(t, samples)

	assert.InDelta(t, 1.0, floats.Sum(samples), 1e-12)
	assert.Zero(t, samples[0])

	testutil.AssertInRange(t, float64(argmax(samples))/100, 4.8, 5.2)

	trough := argmin(samples)
	testutil.AssertInRange(t, float64(trough)/100, 12, 18)
	assert.Negative(t, samples[trough])
}

func TestSPMCanonical_InvalidResolution(t *testing.T) {
	_, err := SPMCanonical().Samples(0)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = SPMCanonical().Samples(1e18)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseKernel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"double_gamma", KernelDoubleGamma},
		{"Double-Gamma", KernelDoubleGamma},
		{" doublegamma ", KernelDoubleGamma},
		{"spm", KernelSPM},
		{"SPM", KernelSPM},
	}

	for _, tt := range tests {
		k, err := ParseKernel(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, k.Name(), tt.input)
	}

	_, err := ParseKernel("boxcar")
	require.ErrorIs(t, err, ErrInvalidKernel)
}
