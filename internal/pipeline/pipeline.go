// Package pipeline implements the per-column processing pipeline that turns
// one high-resolution stimulus timecourse into one value per TR.
// The pipeline is an ordered list of stages: convolution with the HRF,
// midpoint decimation to the TR grid and, optionally, peak normalization.
package pipeline

import (
	"errors"
	"fmt"
)

// Stage represents a single processing stage in the column pipeline.
type Stage interface {
	// Process transforms input samples to output samples.
	Process(input []float64) ([]float64, error)

	// Name returns a short identifier used in error messages.
	Name() string

	// GetMemoryUsage returns approximate memory usage in bytes.
	GetMemoryUsage() int64
}

// StageType identifies the type of processing stage.
type StageType int

const (
	// StageConvolve performs full linear convolution with the HRF kernel.
	StageConvolve StageType = iota

	// StageDecimate truncates to whole TRs and keeps each TR's midpoint sample.
	StageDecimate

	// StageNormalize divides the column by its own maximum.
	StageNormalize
)

// String returns the stage type name.
func (t StageType) String() string {
	switch t {
	case StageConvolve:
		return "convolve"
	case StageDecimate:
		return "decimate"
	case StageNormalize:
		return "normalize"
	default:
		return fmt.Sprintf("StageType(%d)", int(t))
	}
}

// StageSpec specifies parameters for creating a stage.
type StageSpec struct {
	Type         StageType
	Ratio        float64 // Output/input length ratio for this stage
	KernelLength int     // Convolution taps (StageConvolve)
	Stride       int     // Samples per TR (StageDecimate)
	Duration     int     // Whole TRs kept (StageDecimate)
}

// Params holds the values a column pipeline is built from.
type Params struct {
	Rows         int  // High-resolution samples per column
	KernelLength int  // HRF taps
	Stride       int  // High-resolution samples per TR
	Normalize    bool // Append a peak-normalization stage
}

// Pipeline is the ordered stage plan for one call.
type Pipeline struct {
	stages       []StageSpec
	duration     int
	totalRatio   float64
	totalLatency int
}

// Errors returned by BuildPipeline.
var (
	// ErrInvalidParams indicates a non-positive row count, kernel length or stride.
	ErrInvalidParams = errors.New("invalid pipeline parameters")

	// ErrNoWholeWindow indicates the column is shorter than one stride.
	ErrNoWholeWindow = errors.New("column shorter than one TR")
)

// BuildPipeline constructs the stage plan for columns of p.Rows samples.
func BuildPipeline(p Params) (*Pipeline, error) {
	if p.Rows <= 0 || p.KernelLength <= 0 || p.Stride <= 0 {
		return nil, fmt.Errorf("%w: rows=%d kernel=%d stride=%d",
			ErrInvalidParams, p.Rows, p.KernelLength, p.Stride)
	}

	duration := p.Rows / p.Stride
	if duration == 0 {
		return nil, fmt.Errorf("%w: %d rows, stride %d", ErrNoWholeWindow, p.Rows, p.Stride)
	}

	pl := &Pipeline{
		duration: duration,
		stages:   make([]StageSpec, 0, defaultStageCapacity),
	}

	pl.stages = append(pl.stages,
		StageSpec{
			Type:         StageConvolve,
			Ratio:        1.0,
			KernelLength: p.KernelLength,
		},
		StageSpec{
			Type:     StageDecimate,
			Ratio:    1.0 / float64(p.Stride),
			Stride:   p.Stride,
			Duration: duration,
		},
	)

	if p.Normalize {
		pl.stages = append(pl.stages, StageSpec{
			Type:  StageNormalize,
			Ratio: 1.0,
		})
	}

	pl.calculateTotals()

	return pl, nil
}

// calculateTotals computes the combined ratio and latency of all stages.
func (p *Pipeline) calculateTotals() {
	ratio := 1.0
	latency := 0
	for _, s := range p.stages {
		if s.Type == StageDecimate {
			latency += s.Stride / midpointDivisor
		}
		ratio *= s.Ratio
	}
	p.totalRatio = ratio
	p.totalLatency = latency
}

// GetStages returns the pipeline stages.
func (p *Pipeline) GetStages() []StageSpec {
	return p.stages
}

// Duration returns the number of output samples (whole TRs) per column.
func (p *Pipeline) Duration() int {
	return p.duration
}

// GetTotalRatio returns the combined ratio of all stages.
func (p *Pipeline) GetTotalRatio() float64 {
	return p.totalRatio
}

// GetTotalLatency returns the offset, in input samples, of the first output
// sample within its TR window.
func (p *Pipeline) GetTotalLatency() int {
	return p.totalLatency
}

// Run passes input through each stage in order.
func Run(stages []Stage, input []float64) ([]float64, error) {
	data := input
	for i, s := range stages {
		out, err := s.Process(data)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, s.Name(), err)
		}
		data = out
	}
	return data, nil
}
