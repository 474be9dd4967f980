package hrf

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-hrf/internal/engine"
	"github.com/tphakala/go-hrf/internal/pipeline"
)

// buildPipeline constructs the column pipeline for stimulus columns of rows samples.
func buildPipeline(rows, kernelLen, stride int, normalize bool) (*pipeline.Pipeline, error) {
	p, err := pipeline.BuildPipeline(pipeline.Params{
		Rows:         rows,
		KernelLength: kernelLen,
		Stride:       stride,
		Normalize:    normalize,
	})
	switch {
	case errors.Is(err, pipeline.ErrNoWholeWindow):
		return nil, fmt.Errorf("%w: %d rows, %d samples per TR", ErrStimulusTooShort, rows, stride)
	case err != nil:
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}
	return p, nil
}

// createStages creates the Stage implementations for a pipeline plan.
// The convolution stage is shared; it is built once per Convolver.
func createStages(p *pipeline.Pipeline, conv *engine.ConvolveStage) ([]pipeline.Stage, error) {
	specs := p.GetStages()
	stages := make([]pipeline.Stage, 0, len(specs))

	for _, spec := range specs {
		stage, err := createStage(spec, conv)
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}

	return stages, nil
}

// createStage creates the Stage implementation for spec.
func createStage(spec pipeline.StageSpec, conv *engine.ConvolveStage) (pipeline.Stage, error) {
	switch spec.Type {
	case pipeline.StageConvolve:
		if conv.GetFilterLength() != spec.KernelLength {
			return nil, fmt.Errorf("convolve stage has %d taps, plan expects %d",
				conv.GetFilterLength(), spec.KernelLength)
		}
		return conv, nil

	case pipeline.StageDecimate:
		return engine.NewDecimateStage(spec.Stride, spec.Duration), nil

	case pipeline.StageNormalize:
		return engine.NewNormalizeStage(), nil

	default:
		return nil, fmt.Errorf("unsupported stage type: %v", spec.Type)
	}
}
