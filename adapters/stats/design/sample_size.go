package design

import (
	"math"

	"abdesign/domain/abtest"
	"abdesign/domain/core"
	"abdesign/ports"
)

// Request holds the inputs for a closed-form sample size computation.
// AllocationRatio is control:treatment; zero means the balanced default of 1.
// TailType is normalized through abtest.ParseTailMode, so unrecognized values
// fall back to the two-tailed calculation.
type Request struct {
	Alpha           float64 `json:"alpha"`
	Power           float64 `json:"power"`
	ControlRate     float64 `json:"control_rate"`
	TreatmentRate   float64 `json:"treatment_rate"`
	AllocationRatio float64 `json:"allocation_ratio"`
	TailType        string  `json:"tail_type"`
}

// Calculator computes minimum required sample sizes per condition from the
// normal approximation to the two-proportion test. It involves no simulation
// and no randomness: identical inputs always produce identical outputs.
type Calculator struct {
	normal ports.NormalDist
}

// NewCalculator creates a sample size calculator
func NewCalculator(normal ports.NormalDist) *Calculator {
	return &Calculator{normal: normal}
}

// RequiredSamples returns the minimum per-condition sample sizes that achieve
// the requested power at the requested significance level for the assumed
// rates.
func (c *Calculator) RequiredSamples(req Request) (abtest.SampleSizeResult, error) {
	var zero abtest.SampleSizeResult

	if req.Alpha <= 0 || req.Alpha >= 1 {
		return zero, core.NewInvalidParameterError("alpha", "must be in (0, 1)")
	}
	if req.Power <= 0 || req.Power >= 1 {
		return zero, core.NewInvalidParameterError("power", "must be in (0, 1)")
	}
	if req.ControlRate < 0 || req.ControlRate > 1 {
		return zero, core.NewInvalidParameterError("control rate", "must be in [0, 1]")
	}
	if req.TreatmentRate < 0 || req.TreatmentRate > 1 {
		return zero, core.NewInvalidParameterError("treatment rate", "must be in [0, 1]")
	}

	ratio := req.AllocationRatio
	if ratio == 0 {
		ratio = 1
	}
	if ratio < 0 {
		return zero, core.NewInvalidParameterError("allocation ratio", "must be > 0")
	}

	expectedDelta := req.TreatmentRate - req.ControlRate
	if expectedDelta == 0 {
		return zero, core.NewInvalidParameterError("effect size", "must be non-zero (rates are equal)")
	}

	alphaAdjusted := req.Alpha
	if abtest.ParseTailMode(req.TailType) == abtest.TailTwo {
		alphaAdjusted = req.Alpha / 2
	}
	beta := 1 - req.Power

	zCritical, err := c.normal.Quantile(1 - alphaAdjusted)
	if err != nil {
		return zero, err
	}
	zPower, err := c.normal.Quantile(beta)
	if err != nil {
		return zero, err
	}

	controlAllocation := ratio / (ratio + 1)
	treatmentAllocation := 1 - controlAllocation

	allocationProduct := controlAllocation * treatmentAllocation
	if allocationProduct <= 0 {
		return zero, core.NewDegeneracyError("allocation product", allocationProduct)
	}

	blendedP := req.TreatmentRate*treatmentAllocation + req.ControlRate*controlAllocation
	blendedQ := 1 - blendedP

	varianceBlended := blendedP * blendedQ / allocationProduct
	if varianceBlended <= 0 || math.IsInf(varianceBlended, 0) || math.IsNaN(varianceBlended) {
		return zero, core.NewDegeneracyError("blended variance", varianceBlended)
	}

	zSpread := (zPower - zCritical) / (-expectedDelta)
	totalRequired := varianceBlended * zSpread * zSpread

	return abtest.SampleSizeResult{
		ControlSamples:   int(math.Ceil(controlAllocation * totalRequired)),
		TreatmentSamples: int(math.Ceil(treatmentAllocation * totalRequired)),
	}, nil
}
