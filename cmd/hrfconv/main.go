// Command hrfconv convolves a stimulus function with a hemodynamic response
// function and writes one regressor per condition, sampled once per TR, as
// CSV.
//
// Usage:
//
//	hrfconv -tr 2 stimulus.csv regressors.csv
//	hrfconv -tr 0.72 -hrf spm stimulus.csv                # Write to stdout
//	hrfconv -tr 1 -resolution 1000 stimulus.csv out.csv   # 1000 samples/s input
//	hrfconv -tr 2 -hrf my_hrf.csv stimulus.wav out.csv    # Custom kernel, WAV input
//
// CSV stimulus files hold one row per timepoint and one column per
// condition, sampled at -resolution. A WAV stimulus file supplies its own
// resolution: its sample rate, with one channel per condition.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	hrf "github.com/tphakala/go-hrf"
)

const (
	// CLI defaults
	defaultTR       = hrf.TRStandard
	minRequiredArgs = 1
	maxArgs         = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse command line flags
	tr := flag.Float64("tr", defaultTR, "Repetition time in seconds")
	resolution := flag.Float64("resolution", hrf.DefaultTemporalResolution, "Stimulus samples per second (CSV input only)")
	kernelName := flag.String("hrf", hrf.KernelDoubleGamma, "HRF: double_gamma, spm, or path to a one-column CSV kernel")
	noScale := flag.Bool("no-scale", false, "Disable peak normalization of each regressor")
	symmetric := flag.Bool("symmetric-undershoot", false, "Divide the whole undershoot exponent by its dispersion (double_gamma only)")
	parallel := flag.Bool("parallel", true, "Enable parallel condition processing")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	// Validate arguments before setting up profiling
	args := flag.Args()
	if len(args) < minRequiredArgs || len(args) > maxArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] stimulus.(csv|wav) [output.csv]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -tr 2 stim.csv design.csv         # Default double-gamma HRF\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -tr 0.72 -hrf spm stim.csv        # SPM canonical HRF to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -tr 1 -no-scale stim.wav out.csv  # Unscaled, WAV stimulus\n", os.Args[0])
		return fmt.Errorf("expected a stimulus file and an optional output file")
	}

	// Start CPU profiling if requested (for PGO)
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := ""
	if len(args) == maxArgs {
		outputPath = args[1]
	}

	// 1. Load stimulus and kernel
	stim, err := loadStimulus(inputPath, *resolution, *verbose)
	if err != nil {
		return err
	}

	kernel, err := loadKernel(*kernelName, *symmetric)
	if err != nil {
		return err
	}

	config := &hrf.Config{
		TRDuration:         *tr,
		TemporalResolution: stim.resolution,
		Kernel:             kernel,
		DisableScaling:     *noScale,
		EnableParallel:     *parallel,
	}

	// 2. Convolve
	start := time.Now()
	conv, err := hrf.New(config)
	if err != nil {
		return err
	}

	if *verbose {
		info := conv.Info()
		log.Printf("Input: %s", inputPath)
		if info.FFT {
			log.Printf("Kernel: %s (%d taps, FFT size %d)", info.Kernel, info.KernelLength, info.FFTSize)
		} else {
			log.Printf("Kernel: %s (%d taps, direct convolution)", info.Kernel, info.KernelLength)
		}
		log.Printf("TR: %g s (%d samples per TR, sampled at offset %d)",
			info.TRDuration, info.Stride, info.MidpointOffset)
		log.Printf("Memory: ~%d bytes", info.MemoryUsage)
		log.Printf("Scaling: %v", info.Scaling)
		if *parallel {
			log.Printf("Parallel: enabled (concurrent condition processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
		log.Printf("SIMD: %s", info.SIMDType)
	}

	out, err := conv.Process(stim.matrix)
	if err != nil {
		return fmt.Errorf("convolution failed: %w", err)
	}
	elapsed := time.Since(start)

	// 3. Write regressors
	if err := writeOutput(outputPath, out, stim.header, *tr); err != nil {
		return err
	}

	stats := summarize(stim, out)
	if outputPath != "" {
		fmt.Printf("Convolved %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
		fmt.Printf("  %d samples at %g samples/s -> %d volumes at TR %g s (%d conditions)\n",
			stats.inputSamples, stim.resolution, stats.volumes, *tr, stats.conditions)
		fmt.Printf("  Duration: %.3fs\n", elapsed.Seconds())
	} else if *verbose {
		log.Printf("%d samples -> %d volumes (%d conditions) in %.3fs",
			stats.inputSamples, stats.volumes, stats.conditions, elapsed.Seconds())
	}

	if stats.nanConditions > 0 {
		log.Printf("Warning: %d condition(s) never occur and were written as NaN", stats.nanConditions)
	}

	return nil
}
