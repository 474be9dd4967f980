package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPipeline_Stages(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		types    []StageType
		duration int
		ratio    float64
		latency  int
	}{
		{
			name:     "scaled",
			params:   Params{Rows: 3000, KernelLength: 3000, Stride: 100, Normalize: true},
			types:    []StageType{StageConvolve, StageDecimate, StageNormalize},
			duration: 30,
			ratio:    0.01,
			latency:  50,
		},
		{
			name:     "unscaled",
			params:   Params{Rows: 3050, KernelLength: 3000, Stride: 200},
			types:    []StageType{StageConvolve, StageDecimate},
			duration: 15,
			ratio:    0.005,
			latency:  100,
		},
		{
			name:     "odd stride",
			params:   Params{Rows: 10, KernelLength: 2, Stride: 3},
			types:    []StageType{StageConvolve, StageDecimate},
			duration: 3,
			ratio:    1.0 / 3,
			latency:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildPipeline(tt.params)
			require.NoError(t, err)

			stages := p.GetStages()
			require.Len(t, stages, len(tt.types))
			for i, typ := range tt.types {
				assert.Equal(t, typ, stages[i].Type, "stage %d", i)
			}

			assert.Equal(t, tt.duration, p.Duration())
			assert.InDelta(t, tt.ratio, p.GetTotalRatio(), 1e-12)
			assert.Equal(t, tt.latency, p.GetTotalLatency())
			assert.Equal(t, tt.params.KernelLength, stages[0].KernelLength)
			assert.Equal(t, tt.params.Stride, stages[1].Stride)
			assert.Equal(t, tt.duration, stages[1].Duration)
		})
	}
}

func TestBuildPipeline_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"zero rows", Params{Rows: 0, KernelLength: 10, Stride: 1}},
		{"zero kernel", Params{Rows: 10, KernelLength: 0, Stride: 1}},
		{"zero stride", Params{Rows: 10, KernelLength: 10, Stride: 0}},
		{"negative stride", Params{Rows: 10, KernelLength: 10, Stride: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPipeline(tt.params)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestBuildPipeline_ShorterThanOneWindow(t *testing.T) {
	_, err := BuildPipeline(Params{Rows: 99, KernelLength: 3000, Stride: 100})
	require.ErrorIs(t, err, ErrNoWholeWindow)
}

func TestStageTypeString(t *testing.T) {
	assert.Equal(t, "convolve", StageConvolve.String())
	assert.Equal(t, "decimate", StageDecimate.String())
	assert.Equal(t, "normalize", StageNormalize.String())
	assert.Equal(t, "StageType(9)", StageType(9).String())
}

// scaleStage multiplies every sample by a constant.
type scaleStage struct {
	factor float64
	err    error
}

func (s *scaleStage) Process(input []float64) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]float64, len(input))
	for i, v := range input {
		out[i] = v * s.factor
	}
	return out, nil
}

func (s *scaleStage) Name() string          { return "scale" }
func (s *scaleStage) GetMemoryUsage() int64 { return 0 }

func TestRun_ChainsStages(t *testing.T) {
	out, err := Run([]Stage{&scaleStage{factor: 2}, &scaleStage{factor: 3}}, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 12}, out)
}

func TestRun_NoStagesReturnsInput(t *testing.T) {
	out, err := Run(nil, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, out)
}

func TestRun_WrapsStageError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run([]Stage{&scaleStage{factor: 1}, &scaleStage{err: boom}}, []float64{1})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "stage 1 (scale)")
}
