package main

import (
	"bufio"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	hrf "github.com/tphakala/go-hrf"
	"github.com/tphakala/go-hrf/internal/stimfile"
	"gonum.org/v1/gonum/mat"
)

const wavExt = ".wav"

// stimulusInput holds a loaded stimulus function.
type stimulusInput struct {
	matrix     *mat.Dense
	header     []string
	resolution float64
}

// loadStimulus reads a CSV or WAV stimulus file. CSV files are sampled at
// resolution; WAV files carry their own.
func loadStimulus(path string, resolution float64, verbose bool) (*stimulusInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), wavExt) {
		rec, err := stimfile.ReadWAV(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rows, cols := rec.Matrix.Dims()
		if verbose {
			log.Printf("Input format: WAV, %g samples/s, %d conditions, %d-bit, %d samples",
				rec.TemporalResolution, cols, rec.BitDepth, rows)
		}
		return &stimulusInput{matrix: rec.Matrix, resolution: rec.TemporalResolution}, nil
	}

	m, header, err := stimfile.ReadCSV(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if verbose {
		rows, cols := m.Dims()
		log.Printf("Input format: CSV, %g samples/s, %d conditions, %d samples", resolution, cols, rows)
	}
	return &stimulusInput{matrix: m, header: header, resolution: resolution}, nil
}

// loadKernel resolves the -hrf flag: a kernel name, or else a path to a
// one-column CSV kernel. -symmetric-undershoot only reshapes double_gamma.
func loadKernel(name string, symmetric bool) (hrf.Kernel, error) {
	kernel, parseErr := hrf.ParseKernel(name)
	if parseErr == nil {
		if symmetric {
			if kernel.Name() != hrf.KernelDoubleGamma {
				return nil, fmt.Errorf("-symmetric-undershoot applies to %s only, not %s",
					hrf.KernelDoubleGamma, kernel.Name())
			}
			p := hrf.DefaultParams()
			p.Undershoot = hrf.UndershootSymmetric
			return hrf.DoubleGammaKernel(p), nil
		}
		return kernel, nil
	}

	if symmetric {
		return nil, fmt.Errorf("-symmetric-undershoot applies to %s only, not kernel file %s",
			hrf.KernelDoubleGamma, name)
	}

	f, openErr := os.Open(name)
	if openErr != nil {
		if looksLikePath(name) {
			return nil, fmt.Errorf("failed to open kernel file: %w", openErr)
		}
		return nil, parseErr
	}
	defer func() { _ = f.Close() }()

	samples, err := stimfile.ReadKernel(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read kernel %s: %w", name, err)
	}
	return hrf.Explicit(samples), nil
}

// looksLikePath reports whether name reads as a file path rather than a
// kernel name: it has a directory separator or a file extension.
func looksLikePath(name string) bool {
	return strings.ContainsRune(name, '/') ||
		strings.ContainsRune(name, filepath.Separator) ||
		filepath.Ext(name) != ""
}

// writeOutput writes the regressors to path, or to stdout when path is empty.
func writeOutput(path string, m mat.Matrix, header []string, tr float64) (err error) {
	if path == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := stimfile.WriteCSV(w, m, header, tr); err != nil {
			return err
		}
		return w.Flush()
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	// Capture close errors on the success path
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(f)
	if err := stimfile.WriteCSV(w, m, header, tr); err != nil {
		return fmt.Errorf("failed to write regressors: %w", err)
	}
	return w.Flush()
}

// convolveStats summarizes a run.
type convolveStats struct {
	inputSamples  int
	volumes       int
	conditions    int
	nanConditions int
}

// summarize counts samples, volumes and conditions that came out all NaN.
func summarize(stim *stimulusInput, out *mat.Dense) convolveStats {
	rows, _ := stim.matrix.Dims()
	volumes, conditions := out.Dims()

	stats := convolveStats{inputSamples: rows, volumes: volumes, conditions: conditions}
	for col := range conditions {
		if math.IsNaN(out.At(0, col)) {
			stats.nanConditions++
		}
	}
	return stats
}
