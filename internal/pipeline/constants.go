package pipeline

// Pipeline stage capacities and sizes
const (
	defaultStageCapacity = 3 // convolve, decimate, normalize
)

// Latency constants
const (
	// midpointDivisor places the sampled point at the middle of each TR window.
	midpointDivisor = 2
)
