package simulate

import (
	"abdesign/domain/abtest"
	"abdesign/domain/core"
	"abdesign/ports"
)

// Sampler draws simulated binomial outcome counts for a condition. Every call
// receives an explicit seed, so repeated calls with identical inputs are
// bit-for-bit reproducible and unrelated computations never share hidden
// generator state.
type Sampler struct {
	source ports.BinomialSource
}

// NewSampler creates a sampler backed by the given binomial source
func NewSampler(source ports.BinomialSource) *Sampler {
	return &Sampler{source: source}
}

// Sample returns simCount independent outcome counts, each drawn from
// Binomial(cfg.Trials, cfg.Rate). The batch is produced in one bulk call so
// large simulation counts avoid per-draw overhead.
func (s *Sampler) Sample(cfg abtest.TrialConfig, simCount int, seed int64) (abtest.SimulationBatch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if simCount <= 0 {
		return nil, core.NewInvalidParameterError("simulation count", "must be > 0")
	}

	draws, err := s.source.Draw(cfg.Trials, cfg.Rate, simCount, seed)
	if err != nil {
		return nil, err
	}
	return abtest.SimulationBatch(draws), nil
}
