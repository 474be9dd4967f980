package hrf

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Kernel is the HRF a stimulus function is convolved with. The set of
// implementations is closed: use BuiltIn, DoubleGammaKernel, SPMCanonical
// or Explicit.
type Kernel interface {
	// Name identifies the kernel in logs and Info.
	Name() string

	// Samples returns the kernel sampled at temporalResolution samples per
	// second. Explicit kernels ignore the resolution.
	Samples(temporalResolution float64) ([]float64, error)

	isKernel()
}

// doubleGammaKernel synthesizes a double-gamma HRF with a fixed shape.
type doubleGammaKernel struct {
	shape Params
}

// BuiltIn returns the default double-gamma HRF, synthesized at the
// resolution of each call.
func BuiltIn() Kernel {
	return doubleGammaKernel{shape: DefaultParams()}
}

// DoubleGammaKernel returns a double-gamma HRF with the shape parameters of
// p. The TemporalResolution of p is replaced by the resolution passed to
// Samples.
func DoubleGammaKernel(p Params) Kernel {
	return doubleGammaKernel{shape: p}
}

func (k doubleGammaKernel) Name() string { return KernelDoubleGamma }

func (k doubleGammaKernel) Samples(temporalResolution float64) ([]float64, error) {
	p := k.shape
	p.TemporalResolution = temporalResolution
	return DoubleGamma(p)
}

func (doubleGammaKernel) isKernel() {}

// explicitKernel is a caller-supplied HRF used verbatim.
type explicitKernel struct {
	samples []float64
}

// Explicit returns a kernel that uses samples verbatim in place of a
// synthesized HRF. The slice is copied.
func Explicit(samples []float64) Kernel {
	return explicitKernel{samples: append([]float64(nil), samples...)}
}

func (k explicitKernel) Name() string { return kernelExplicit }

func (k explicitKernel) Samples(float64) ([]float64, error) {
	if len(k.samples) == 0 {
		return nil, fmt.Errorf("%w: explicit kernel is empty", ErrInvalidKernel)
	}
	return append([]float64(nil), k.samples...), nil
}

func (explicitKernel) isKernel() {}

// spmKernel is the SPM canonical HRF.
type spmKernel struct{}

// SPMCanonical returns the SPM canonical HRF: a gamma density with shape 6
// minus one sixth of a gamma density with shape 16, normalized to unit sum
// over the HRFLengthSeconds window.
func SPMCanonical() Kernel {
	return spmKernel{}
}

func (spmKernel) Name() string { return KernelSPM }

func (spmKernel) Samples(temporalResolution float64) ([]float64, error) {
	p := Params{TemporalResolution: temporalResolution}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	response := distuv.Gamma{Alpha: spmResponseShape, Beta: spmGammaRate}
	undershoot := distuv.Gamma{Alpha: spmUndershootShape, Beta: spmGammaRate}

	hrf := make([]float64, p.Len())
	for i := range hrf {
		t := float64(i) / temporalResolution
		hrf[i] = response.Prob(t) - undershoot.Prob(t)/spmUndershootRatio
	}

	sum := floats.Sum(hrf)
	if sum == 0 || math.IsNaN(sum) {
		return hrf, nil
	}
	floats.Scale(1/sum, hrf)
	return hrf, nil
}

func (spmKernel) isKernel() {}

// ParseKernel maps a kernel name to a Kernel. Names are case-insensitive;
// "double_gamma" and "spm" are recognized.
func ParseKernel(name string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case KernelDoubleGamma, "double-gamma", "doublegamma":
		return BuiltIn(), nil
	case KernelSPM:
		return SPMCanonical(), nil
	default:
		return nil, fmt.Errorf("%w: unknown kernel %q", ErrInvalidKernel, name)
	}
}
