package inference

import (
	"math"

	"abdesign/adapters/stats/simulate"
	"abdesign/domain/abtest"
	"abdesign/domain/core"
)

// SeedPair carries the explicit seeds for the two simulated conditions of a
// difference distribution. Distinct values keep the two streams statistically
// independent; reusing a pair reproduces the distribution exactly.
type SeedPair struct {
	Control   int64 `json:"control"`
	Treatment int64 `json:"treatment"`
}

// NullBuilder constructs the empirical distribution of
// differences-of-proportions under the no-effect hypothesis and derives
// rejection thresholds and empirical p-values from it.
type NullBuilder struct {
	sampler *simulate.Sampler
}

// NewNullBuilder creates a null distribution builder
func NewNullBuilder(sampler *simulate.Sampler) *NullBuilder {
	return &NullBuilder{sampler: sampler}
}

// BuildNull draws two independent batches at the same baseline rate and
// returns the per-replicate normalized difference of proportions.
func (b *NullBuilder) BuildNull(cfg abtest.TrialConfig, simCount int, seeds SeedPair) (abtest.DifferenceDistribution, error) {
	control, err := b.sampler.Sample(cfg, simCount, seeds.Control)
	if err != nil {
		return nil, err
	}
	treatment, err := b.sampler.Sample(cfg, simCount, seeds.Treatment)
	if err != nil {
		return nil, err
	}
	return abtest.NewDifferenceDistribution(treatment, control, cfg.Trials)
}

// RejectionThreshold returns the positive boundary t beyond which a result is
// declared significant at level alpha. Two-tailed: the (1 - alpha)-quantile of
// the absolute null differences, so roughly an alpha fraction of null draws
// satisfy |d| > t. One-tailed: the (1 - alpha)-quantile of the signed
// distribution, a single upper boundary.
func (b *NullBuilder) RejectionThreshold(null abtest.DifferenceDistribution, alpha float64, tails abtest.TailMode) (float64, error) {
	if len(null) == 0 {
		return 0, core.NewInvalidParameterError("null distribution", "must not be empty")
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, core.NewInvalidParameterError("alpha", "must be in (0, 1)")
	}

	if tails == abtest.TailOne {
		return quantile(null, 1-alpha), nil
	}

	abs := make([]float64, len(null))
	for i, v := range null {
		abs[i] = math.Abs(v)
	}
	return quantile(abs, 1-alpha), nil
}

// EmpiricalPValue returns the fraction of null draws at least as extreme as
// the observed difference. The tail convention is the caller's explicit
// choice: one-tailed counts draws >= observed, two-tailed counts draws with
// |d| >= |observed|.
func (b *NullBuilder) EmpiricalPValue(null abtest.DifferenceDistribution, observed float64, tails abtest.TailMode) (float64, error) {
	if len(null) == 0 {
		return 0, core.NewInvalidParameterError("null distribution", "must not be empty")
	}

	extreme := 0
	if tails == abtest.TailOne {
		for _, v := range null {
			if v >= observed {
				extreme++
			}
		}
	} else {
		absObserved := math.Abs(observed)
		for _, v := range null {
			if math.Abs(v) >= absObserved {
				extreme++
			}
		}
	}
	return float64(extreme) / float64(len(null)), nil
}
