package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	hrf "github.com/tphakala/go-hrf"
)

func TestAnalyze_DefaultHRF(t *testing.T) {
	samples, err := hrf.DefaultHRF(100)
	require.NoError(t, err)

	stats := analyze(samples, 100)

	assert.Equal(t, 3000, stats.length)
	assert.InDelta(t, 5.4, stats.peakTime, 0.2)
	assert.InDelta(t, 1.0, stats.peak, 0.02)
	assert.Negative(t, stats.trough)
	assert.Greater(t, stats.troughTime, stats.peakTime)
	assert.Greater(t, stats.zeroCrossing, stats.peakTime)
	assert.Less(t, stats.zeroCrossing, stats.troughTime)
	assert.Greater(t, stats.halfMaxWidth, 2.0)
	assert.Less(t, stats.halfMaxWidth, 8.0)
	assert.InDelta(t, stats.sum/100, stats.area, 1e-12)
	assert.Zero(t, stats.nonFinite)
}

func TestAnalyze_SPMAreaIsUnitSum(t *testing.T) {
	samples, err := hrf.SPMCanonical().Samples(100)
	require.NoError(t, err)

	stats := analyze(samples, 100)
	assert.InDelta(t, 1.0, stats.sum, 1e-12)
	assert.InDelta(t, 0.01, stats.area, 1e-12)
}

func TestAnalyze_Triangle(t *testing.T) {
	// Peak 4 at index 4, drops below 2 at indices 1 and 7
	samples := []float64{0, 1, 2, 3, 4, 3, 2, 1, -1, 0}

	stats := analyze(samples, 2)

	assert.Equal(t, 4.0, stats.peak)
	assert.Equal(t, 2.0, stats.peakTime)
	assert.Equal(t, -1.0, stats.trough)
	assert.Equal(t, 4.0, stats.troughTime)
	assert.Equal(t, 4.0, stats.zeroCrossing)
	assert.Equal(t, 3.0, stats.halfMaxWidth)
	assert.Equal(t, 15.0, stats.sum)
	assert.Equal(t, 7.5, stats.area)
}

func TestAnalyze_NonFinite(t *testing.T) {
	stats := analyze([]float64{0, math.NaN(), math.Inf(1), 1}, 1)

	assert.Equal(t, 2, stats.nonFinite)
	assert.True(t, math.IsNaN(stats.peak))
	assert.True(t, math.IsNaN(stats.area))
}

func TestAnalyze_Empty(t *testing.T) {
	stats := analyze(nil, 100)
	assert.Zero(t, stats.length)
}

func TestDumpSamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dumpSamples(&buf, []float64{0, 0.5, -0.25}, 2))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"time,value", "0,0", "0.5,0.5", "1,-0.25"}, lines)
}
