package app

import (
	"context"
	"time"

	"abdesign/adapters/stats/design"
	"abdesign/adapters/stats/inference"
	"abdesign/adapters/stats/simulate"
	"abdesign/domain/abtest"
	"abdesign/domain/core"
)

// DesignService orchestrates a full experiment-design analysis: simulate the
// null, derive the rejection threshold, simulate the alternative, measure
// power, and cross-check with the closed-form sample size calculation. Each
// analysis is a pure computation over its request; the only state consumed is
// the explicit seed.
type DesignService struct {
	sampler    *simulate.Sampler
	nulls      *inference.NullBuilder
	power      *inference.PowerEstimator
	calculator *design.Calculator
}

// NewDesignService creates a design service over the given components
func NewDesignService(sampler *simulate.Sampler, nulls *inference.NullBuilder, power *inference.PowerEstimator, calculator *design.Calculator) *DesignService {
	return &DesignService{
		sampler:    sampler,
		nulls:      nulls,
		power:      power,
		calculator: calculator,
	}
}

// AnalysisRequest defines the inputs for one deterministic design analysis
type AnalysisRequest struct {
	Trials          int     `json:"trials"`
	ControlRate     float64 `json:"control_rate"`
	TreatmentRate   float64 `json:"treatment_rate"`
	Alpha           float64 `json:"alpha"`
	SimCount        int     `json:"sim_count"`
	Seed            int64   `json:"seed"`
	TailType        string  `json:"tail_type"`
	AllocationRatio float64 `json:"allocation_ratio"`
}

// Validate checks the analysis request invariants
func (r AnalysisRequest) Validate() error {
	if err := (abtest.TrialConfig{Trials: r.Trials, Rate: r.ControlRate}).Validate(); err != nil {
		return err
	}
	if r.TreatmentRate < 0 || r.TreatmentRate > 1 {
		return core.NewInvalidParameterError("treatment rate", "must be in [0, 1]")
	}
	if r.Alpha <= 0 || r.Alpha >= 1 {
		return core.NewInvalidParameterError("alpha", "must be in (0, 1)")
	}
	if r.SimCount <= 0 {
		return core.NewInvalidParameterError("simulation count", "must be > 0")
	}
	return nil
}

// DesignReport is the complete output of one analysis: scalar summaries only,
// suitable for any reporting layer.
type DesignReport struct {
	AnalysisID core.AnalysisID `json:"analysis_id"`
	Request    AnalysisRequest `json:"request"`

	Tails              abtest.TailMode            `json:"tails"`
	RejectionThreshold float64                    `json:"rejection_threshold"`
	Power              float64                    `json:"power"`
	EmpiricalPValue    float64                    `json:"empirical_p_value"`
	NullSummary        abtest.DistributionSummary `json:"null_summary"`
	AlternativeSummary abtest.DistributionSummary `json:"alternative_summary"`
	SampleSize         abtest.SampleSizeResult    `json:"sample_size"`

	RuntimeMs int64          `json:"runtime_ms"`
	CreatedAt core.Timestamp `json:"created_at"`
}

// AnalyzeDesign executes the full simulation pipeline for one design.
// Seeds for the four simulated batches are derived from the request seed at
// fixed offsets, so a report is reproducible from its request alone.
func (s *DesignService) AnalyzeDesign(ctx context.Context, req AnalysisRequest) (*DesignReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	tails := abtest.ParseTailMode(req.TailType)

	nullSeeds := inference.SeedPair{Control: req.Seed, Treatment: req.Seed + 1}
	altSeeds := inference.SeedPair{Control: req.Seed + 2, Treatment: req.Seed + 3}

	nullCfg := abtest.TrialConfig{Trials: req.Trials, Rate: req.ControlRate}
	null, err := s.nulls.BuildNull(nullCfg, req.SimCount, nullSeeds)
	if err != nil {
		return nil, err
	}

	threshold, err := s.nulls.RejectionThreshold(null, req.Alpha, tails)
	if err != nil {
		return nil, err
	}

	alternative, err := s.power.BuildAlternative(req.Trials, req.ControlRate, req.TreatmentRate, req.SimCount, altSeeds)
	if err != nil {
		return nil, err
	}

	power, err := s.power.Power(alternative, threshold)
	if err != nil {
		return nil, err
	}

	expectedDelta := req.TreatmentRate - req.ControlRate
	pValue, err := s.nulls.EmpiricalPValue(null, expectedDelta, tails)
	if err != nil {
		return nil, err
	}

	report := &DesignReport{
		AnalysisID:         core.AnalysisID(core.NewID()),
		Request:            req,
		Tails:              tails,
		RejectionThreshold: threshold,
		Power:              power,
		EmpiricalPValue:    pValue,
		NullSummary:        abtest.Summarize(null),
		AlternativeSummary: abtest.Summarize(alternative),
		RuntimeMs:          time.Since(startTime).Milliseconds(),
		CreatedAt:          core.Now(),
	}

	// The closed-form cross-check needs a non-zero effect; a no-effect
	// analysis still produces a valid simulation report without it.
	if expectedDelta != 0 {
		size, err := s.calculator.RequiredSamples(design.Request{
			Alpha:           req.Alpha,
			Power:           0.80,
			ControlRate:     req.ControlRate,
			TreatmentRate:   req.TreatmentRate,
			AllocationRatio: req.AllocationRatio,
			TailType:        req.TailType,
		})
		if err != nil {
			return nil, err
		}
		report.SampleSize = size
	}

	return report, nil
}

// RequiredSamples exposes the closed-form calculator without simulation
func (s *DesignService) RequiredSamples(req design.Request) (abtest.SampleSizeResult, error) {
	return s.calculator.RequiredSamples(req)
}
