package inference

import (
	"math"

	"abdesign/adapters/stats/simulate"
	"abdesign/domain/abtest"
	"abdesign/domain/core"
)

// PowerEstimator builds the empirical alternative distribution of
// differences-of-proportions for a true effect of assumed size and measures
// how often it clears a rejection threshold derived from the null.
type PowerEstimator struct {
	sampler *simulate.Sampler
}

// NewPowerEstimator creates a power estimator
func NewPowerEstimator(sampler *simulate.Sampler) *PowerEstimator {
	return &PowerEstimator{sampler: sampler}
}

// BuildAlternative draws one batch at the control rate and one independent
// batch at the treatment rate, both with the same trials per condition, and
// returns the per-replicate normalized difference (treatment - control).
func (e *PowerEstimator) BuildAlternative(trials int, controlRate, treatmentRate float64, simCount int, seeds SeedPair) (abtest.DifferenceDistribution, error) {
	control, err := e.sampler.Sample(abtest.TrialConfig{Trials: trials, Rate: controlRate}, simCount, seeds.Control)
	if err != nil {
		return nil, err
	}
	treatment, err := e.sampler.Sample(abtest.TrialConfig{Trials: trials, Rate: treatmentRate}, simCount, seeds.Treatment)
	if err != nil {
		return nil, err
	}
	return abtest.NewDifferenceDistribution(treatment, control, trials)
}

// Power returns the fraction of alternative draws strictly exceeding the
// positive rejection threshold. This is the directional convention: it
// assumes the treatment is expected to exceed the control, and must be paired
// with a threshold computed under the same assumption.
func (e *PowerEstimator) Power(alternative abtest.DifferenceDistribution, threshold float64) (float64, error) {
	if len(alternative) == 0 {
		return 0, core.NewInvalidParameterError("alternative distribution", "must not be empty")
	}

	exceed := 0
	for _, v := range alternative {
		if v > threshold {
			exceed++
		}
	}
	return float64(exceed) / float64(len(alternative)), nil
}

// PowerTwoSided returns the fraction of alternative draws whose magnitude
// exceeds the threshold, counting rejections in either direction. Use it when
// the threshold was derived two-tailed and the effect direction is not
// assumed.
func (e *PowerEstimator) PowerTwoSided(alternative abtest.DifferenceDistribution, threshold float64) (float64, error) {
	if len(alternative) == 0 {
		return 0, core.NewInvalidParameterError("alternative distribution", "must not be empty")
	}

	exceed := 0
	for _, v := range alternative {
		if math.Abs(v) > threshold {
			exceed++
		}
	}
	return float64(exceed) / float64(len(alternative)), nil
}
