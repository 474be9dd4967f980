package main

import (
	"bufio"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// curveStats describes a sampled HRF. Times are in seconds; zero means
// not found.
type curveStats struct {
	length       int
	peak         float64
	peakTime     float64
	trough       float64
	troughTime   float64
	zeroCrossing float64
	halfMaxWidth float64
	sum          float64
	area         float64
	nonFinite    int
}

// analyze computes curveStats for samples taken at resolution samples/s.
func analyze(samples []float64, resolution float64) curveStats {
	stats := curveStats{length: len(samples)}
	if len(samples) == 0 {
		return stats
	}

	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			stats.nonFinite++
		}
	}
	if stats.nonFinite > 0 {
		stats.peak = math.NaN()
		stats.trough = math.NaN()
		stats.sum = math.NaN()
		stats.area = math.NaN()
		return stats
	}

	peakIdx := floats.MaxIdx(samples)
	troughIdx := floats.MinIdx(samples)

	stats.peak = samples[peakIdx]
	stats.peakTime = float64(peakIdx) / resolution
	stats.trough = samples[troughIdx]
	stats.troughTime = float64(troughIdx) / resolution
	stats.sum = floats.Sum(samples)
	stats.area = stats.sum / resolution

	for i := peakIdx + 1; i < len(samples); i++ {
		if samples[i] < 0 {
			stats.zeroCrossing = float64(i) / resolution
			break
		}
	}

	stats.halfMaxWidth = halfMaxWidth(samples, peakIdx) / resolution
	return stats
}

// halfMaxWidth returns the number of samples between the half-maximum
// crossings around peakIdx, or 0 if either side never drops below half.
func halfMaxWidth(samples []float64, peakIdx int) float64 {
	half := samples[peakIdx] / 2
	if half <= 0 {
		return 0
	}

	left := -1
	for i := peakIdx; i >= 0; i-- {
		if samples[i] < half {
			left = i
			break
		}
	}
	right := -1
	for i := peakIdx; i < len(samples); i++ {
		if samples[i] < half {
			right = i
			break
		}
	}
	if left < 0 || right < 0 {
		return 0
	}
	return float64(right - left)
}

// dumpSamples writes the curve as time,value CSV.
func dumpSamples(w io.Writer, samples []float64, resolution float64) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("time,value\n"); err != nil {
		return err
	}
	for i, v := range samples {
		line := strconv.FormatFloat(float64(i)/resolution, 'g', -1, 64) + "," +
			strconv.FormatFloat(v, 'g', -1, 64) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
