package hrf

import (
	"fmt"
	"log"
	"sync"

	"github.com/tphakala/go-hrf/internal/engine"
	"github.com/tphakala/go-hrf/internal/pipeline"
	"gonum.org/v1/gonum/mat"
)

// Convolver turns stimulus functions into TR-sampled signal functions.
// It synthesizes its kernel and the convolution stage once, at
// construction. A Convolver is safe for concurrent use.
type Convolver struct {
	config   Config
	kernel   []float64
	convolve *engine.ConvolveStage
	stride   int
	logger   *log.Logger
}

// New creates a Convolver with the specified configuration.
// The configuration is copied; later changes to config have no effect.
func New(config *Config) (*Convolver, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := *config
	cfg.Kernel = config.kernel()
	cfg.Logger = config.logger()

	kernel, err := cfg.Kernel.Samples(cfg.TemporalResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s kernel: %w", cfg.Kernel.Name(), err)
	}
	if len(kernel) == 0 {
		return nil, fmt.Errorf("%w: %s kernel has no samples at %v samples/s",
			ErrInvalidKernel, cfg.Kernel.Name(), cfg.TemporalResolution)
	}

	return &Convolver{
		config:   cfg,
		kernel:   kernel,
		convolve: engine.NewConvolveStage(kernel),
		stride:   cfg.stride(),
		logger:   cfg.Logger,
	}, nil
}

// Process convolves every column of stim (rows = timepoints at the
// configured temporal resolution, columns = conditions) with the kernel and
// returns one row per whole TR.
//
// A stimulus with fewer rows than columns is logged as possibly transposed
// and processed as given.
func (c *Convolver) Process(stim mat.Matrix) (*mat.Dense, error) {
	if stim == nil {
		return nil, fmt.Errorf("%w: matrix is nil", ErrEmptyStimulus)
	}

	rows, cols := stim.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyStimulus, rows, cols)
	}

	columns := make([][]float64, cols)
	for col := range cols {
		columns[col] = mat.Col(nil, col, stim)
	}

	signals, plan, err := c.processColumns(columns, rows)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(plan.Duration(), cols, nil)
	for col, signal := range signals {
		out.SetCol(col, signal)
	}
	return out, nil
}

// ProcessColumns is like Process for planar input: columns[c] is the
// timecourse of condition c. All columns must have the same length.
// The result holds one slice per condition, one value per whole TR.
func (c *Convolver) ProcessColumns(columns [][]float64) ([][]float64, error) {
	if len(columns) == 0 || len(columns[0]) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrEmptyStimulus)
	}

	rows := len(columns[0])
	for col, data := range columns {
		if len(data) != rows {
			return nil, fmt.Errorf("%w: column %d has %d samples, expected %d",
				ErrInvalidStimulus, col, len(data), rows)
		}
	}

	signals, _, err := c.processColumns(columns, rows)
	return signals, err
}

// processColumns runs every column through the pipeline and returns the
// results with the plan that produced them.
// When EnableParallel is set, columns are processed concurrently.
func (c *Convolver) processColumns(columns [][]float64, rows int) ([][]float64, *pipeline.Pipeline, error) {
	if rows < len(columns) {
		c.logger.Printf("hrf: stimulus function may be the wrong shape: %d timepoints < %d conditions", rows, len(columns))
	}

	plan, err := buildPipeline(rows, len(c.kernel), c.stride, !c.config.DisableScaling)
	if err != nil {
		return nil, nil, err
	}

	stages, err := createStages(plan, c.convolve)
	if err != nil {
		return nil, nil, err
	}

	output := make([][]float64, len(columns))

	// Sequential processing (default or when parallel disabled)
	if !c.config.EnableParallel || len(columns) <= 1 {
		for col := range columns {
			result, err := c.processColumn(stages, columns[col])
			if err != nil {
				return nil, nil, fmt.Errorf("column %d: %w", col, err)
			}
			output[col] = result
		}
		return output, plan, nil
	}

	// Parallel processing: stages hold no per-call state outside pooled FFT buffers
	var wg sync.WaitGroup
	errChan := make(chan error, len(columns))

	for col := range columns {
		wg.Add(1)
		go func(column int) {
			defer wg.Done()

			result, err := c.processColumn(stages, columns[column])
			if err != nil {
				errChan <- fmt.Errorf("column %d: %w", column, err)
				return
			}
			output[column] = result
		}(col)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, nil, err
		}
	}

	return output, plan, nil
}

// processColumn runs one column through the stages.
func (c *Convolver) processColumn(stages []pipeline.Stage, column []float64) ([]float64, error) {
	return pipeline.Run(stages, column)
}

// Stride returns the number of stimulus samples per TR.
func (c *Convolver) Stride() int {
	return c.stride
}

// Duration returns the number of output rows for a stimulus of rows
// samples, or 0 if rows is shorter than one TR.
func (c *Convolver) Duration(rows int) int {
	plan, err := buildPipeline(rows, len(c.kernel), c.stride, !c.config.DisableScaling)
	if err != nil {
		return 0
	}
	return plan.Duration()
}

// Kernel returns a copy of the sampled kernel.
func (c *Convolver) Kernel() []float64 {
	return append([]float64(nil), c.kernel...)
}

// Config returns the effective configuration, with defaults applied.
func (c *Convolver) Config() Config {
	return c.config
}

// Info returns information about the convolver.
func (c *Convolver) Info() Info {
	info := Info{
		Kernel:             c.config.Kernel.Name(),
		KernelLength:       c.convolve.GetFilterLength(),
		Stride:             c.stride,
		TemporalResolution: c.config.TemporalResolution,
		TRDuration:         c.config.TRDuration,
		Scaling:            !c.config.DisableScaling,
		FFT:                engine.UsesFFT(len(c.kernel)),
		FFTSize:            c.convolve.FFTSize(),
		SIMDType:           engine.SIMDInfo(),
	}

	// The per-TR plan does not depend on stimulus length; one TR describes it.
	plan, err := buildPipeline(c.stride, len(c.kernel), c.stride, info.Scaling)
	if err != nil {
		return info
	}
	info.MidpointOffset = plan.GetTotalLatency()
	info.OutputRatio = plan.GetTotalRatio()

	stages, err := createStages(plan, c.convolve)
	if err != nil {
		return info
	}
	for _, stage := range stages {
		info.MemoryUsage += stage.GetMemoryUsage()
	}

	return info
}
