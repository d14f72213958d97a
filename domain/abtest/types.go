package abtest

import (
	"abdesign/domain/core"

	"github.com/montanaflynn/stats"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// TrialConfig is the immutable input to one simulated condition: how many
// trials each replicate observes and the assumed conversion rate.
type TrialConfig struct {
	Trials int     `json:"trials"` // Trials per condition (> 0)
	Rate   float64 `json:"rate"`   // Success probability (0.0 to 1.0)
}

// Validate checks the configuration invariants
func (c TrialConfig) Validate() error {
	if c.Trials <= 0 {
		return core.NewInvalidParameterError("trials", "must be > 0")
	}
	if c.Rate < 0 || c.Rate > 1 {
		return core.NewInvalidParameterError("rate", "must be in [0, 1]")
	}
	return nil
}

// SimulationBatch is an ordered sequence of independent outcome counts, one
// per simulated experiment replicate. Each element lies in [0, Trials].
type SimulationBatch []float64

// DifferenceDistribution holds per-replicate differences of conversion
// proportions, (treatment - control) / trials. Values lie in [-1, 1].
type DifferenceDistribution []float64

// NewDifferenceDistribution derives the elementwise normalized difference of
// two equal-length batches drawn with the same trials-per-condition.
func NewDifferenceDistribution(treatment, control SimulationBatch, trials int) (DifferenceDistribution, error) {
	if len(treatment) != len(control) {
		return nil, core.NewInvalidParameterError("batches", "must have equal length")
	}
	if trials <= 0 {
		return nil, core.NewInvalidParameterError("trials", "must be > 0")
	}
	diff := make(DifferenceDistribution, len(treatment))
	denom := float64(trials)
	for i := range treatment {
		diff[i] = (treatment[i] - control[i]) / denom
	}
	return diff, nil
}

// ============================================================================
// TAIL CONVENTIONS
// ============================================================================

// TailMode selects between one-tailed and two-tailed conventions. The mode is
// an explicit caller choice everywhere a tail assumption matters; nothing in
// the engine infers it silently.
type TailMode string

const (
	TailOne TailMode = "one_tail"
	TailTwo TailMode = "two_tail"
)

// ParseTailMode normalizes a tail-type string. Unrecognized values fall back
// to the two-tailed convention; callers that need strictness should compare
// the input against the returned mode.
func ParseTailMode(s string) TailMode {
	switch s {
	case "one", "one_tail", "one-tail", "one_tailed":
		return TailOne
	case "two", "two_tail", "two-tail", "two_tailed":
		return TailTwo
	default:
		return TailTwo
	}
}

// ============================================================================
// RESULTS
// ============================================================================

// SampleSizeResult is the pair of per-condition sample sizes returned by the
// closed-form calculator.
type SampleSizeResult struct {
	ControlSamples   int `json:"control_samples"`
	TreatmentSamples int `json:"treatment_samples"`
}

// Total returns the combined sample requirement across both conditions
func (r SampleSizeResult) Total() int {
	return r.ControlSamples + r.TreatmentSamples
}

// DistributionSummary captures the shape of a simulated distribution for
// reporting. Consumers receive only these scalars plus the raw sequence.
type DistributionSummary struct {
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile95 float64 `json:"percentile_95"`
	Percentile99 float64 `json:"percentile_99"`
	Count        int     `json:"count"`
}

// Summarize computes descriptive statistics for a difference distribution
func Summarize(dist DifferenceDistribution) DistributionSummary {
	if len(dist) == 0 {
		return DistributionSummary{}
	}
	data := []float64(dist)
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	p95, _ := stats.Percentile(data, 95)
	p99, _ := stats.Percentile(data, 99)
	return DistributionSummary{
		Mean:         mean,
		StdDev:       stdDev,
		Min:          min,
		Max:          max,
		Percentile95: p95,
		Percentile99: p99,
		Count:        len(data),
	}
}
