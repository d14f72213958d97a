package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abdesign/adapters/gonumdist"
	"abdesign/domain/core"
)

func newTestCalculator() *Calculator {
	return NewCalculator(gonumdist.NewNormal())
}

func TestRequiredSamples_BaselineScenario(t *testing.T) {
	calc := newTestCalculator()

	result, err := calc.RequiredSamples(Request{
		Alpha:           0.05,
		Power:           0.8069,
		ControlRate:     0.50,
		TreatmentRate:   0.51,
		AllocationRatio: 1,
		TailType:        "two_tail",
	})
	require.NoError(t, err)

	// z(0.975)=1.95996, z(0.1931)=-0.86650, blended variance 0.9999:
	// total = 0.9999 * ((−0.86650 − 1.95996)/(−0.01))^2 ≈ 79882.
	assert.InEpsilon(t, 39941, result.ControlSamples, 0.01)
	assert.InEpsilon(t, 39941, result.TreatmentSamples, 0.01)
	assert.Equal(t, result.ControlSamples, result.TreatmentSamples)
}

func TestRequiredSamples_OneTailedIsSmaller(t *testing.T) {
	calc := newTestCalculator()

	base := Request{
		Alpha:           0.05,
		Power:           0.8069,
		ControlRate:     0.50,
		TreatmentRate:   0.51,
		AllocationRatio: 1,
	}

	base.TailType = "two_tail"
	twoTail, err := calc.RequiredSamples(base)
	require.NoError(t, err)

	base.TailType = "one_tail"
	oneTail, err := calc.RequiredSamples(base)
	require.NoError(t, err)

	assert.Less(t, oneTail.Total(), twoTail.Total(),
		"one-tailed design must require strictly fewer total samples")
}

func TestRequiredSamples_AlphaPowerTradeoffs(t *testing.T) {
	calc := newTestCalculator()

	base := Request{
		Alpha:         0.05,
		Power:         0.80,
		ControlRate:   0.50,
		TreatmentRate: 0.51,
		TailType:      "two_tail",
	}

	baseline, err := calc.RequiredSamples(base)
	require.NoError(t, err)

	stricterAlpha := base
	stricterAlpha.Alpha = 0.01
	strict, err := calc.RequiredSamples(stricterAlpha)
	require.NoError(t, err)
	assert.Greater(t, strict.Total(), baseline.Total(),
		"reducing alpha must increase the total sample requirement")

	higherPower := base
	higherPower.Power = 0.90
	powered, err := calc.RequiredSamples(higherPower)
	require.NoError(t, err)
	assert.Greater(t, powered.Total(), baseline.Total(),
		"raising power must increase the total sample requirement")
}

func TestRequiredSamples_Idempotence(t *testing.T) {
	calc := newTestCalculator()

	req := Request{
		Alpha:           0.05,
		Power:           0.85,
		ControlRate:     0.10,
		TreatmentRate:   0.12,
		AllocationRatio: 1,
		TailType:        "two_tail",
	}

	first, err := calc.RequiredSamples(req)
	require.NoError(t, err)
	second, err := calc.RequiredSamples(req)
	require.NoError(t, err)

	assert.Equal(t, first, second, "pure function must return bit-identical results")
}

func TestRequiredSamples_UnrecognizedTailDefaultsToTwoTailed(t *testing.T) {
	calc := newTestCalculator()

	base := Request{
		Alpha:         0.05,
		Power:         0.80,
		ControlRate:   0.50,
		TreatmentRate: 0.52,
	}

	base.TailType = "two_tail"
	explicit, err := calc.RequiredSamples(base)
	require.NoError(t, err)

	base.TailType = "sideways"
	fallback, err := calc.RequiredSamples(base)
	require.NoError(t, err)

	assert.Equal(t, explicit, fallback,
		"unrecognized tail types follow the documented two-tailed fallback")
}

func TestRequiredSamples_AllocationSkew(t *testing.T) {
	calc := newTestCalculator()

	result, err := calc.RequiredSamples(Request{
		Alpha:           0.05,
		Power:           0.80,
		ControlRate:     0.50,
		TreatmentRate:   0.52,
		AllocationRatio: 2, // two control samples per treatment sample
		TailType:        "two_tail",
	})
	require.NoError(t, err)

	assert.Positive(t, result.ControlSamples)
	assert.Positive(t, result.TreatmentSamples)
	assert.Greater(t, result.ControlSamples, result.TreatmentSamples)
	// control share is 2/3 of the total, treatment 1/3
	assert.InDelta(t, 2.0, float64(result.ControlSamples)/float64(result.TreatmentSamples), 0.01)
}

func TestRequiredSamples_DefaultAllocationRatio(t *testing.T) {
	calc := newTestCalculator()

	unset, err := calc.RequiredSamples(Request{
		Alpha: 0.05, Power: 0.80, ControlRate: 0.50, TreatmentRate: 0.52, TailType: "two_tail",
	})
	require.NoError(t, err)

	balanced, err := calc.RequiredSamples(Request{
		Alpha: 0.05, Power: 0.80, ControlRate: 0.50, TreatmentRate: 0.52,
		AllocationRatio: 1, TailType: "two_tail",
	})
	require.NoError(t, err)

	assert.Equal(t, balanced, unset, "zero allocation ratio means the balanced default")
}

func TestRequiredSamples_ZeroEffectSize(t *testing.T) {
	calc := newTestCalculator()

	_, err := calc.RequiredSamples(Request{
		Alpha: 0.05, Power: 0.80, ControlRate: 0.50, TreatmentRate: 0.50, TailType: "two_tail",
	})
	require.Error(t, err)
	assert.True(t, core.IsInvalidParameter(err), "equal rates must fail as invalid parameter")
}

func TestRequiredSamples_InvalidInputs(t *testing.T) {
	calc := newTestCalculator()

	cases := []struct {
		name string
		req  Request
	}{
		{"alpha zero", Request{Alpha: 0, Power: 0.8, ControlRate: 0.5, TreatmentRate: 0.51}},
		{"alpha one", Request{Alpha: 1, Power: 0.8, ControlRate: 0.5, TreatmentRate: 0.51}},
		{"power zero", Request{Alpha: 0.05, Power: 0, ControlRate: 0.5, TreatmentRate: 0.51}},
		{"power one", Request{Alpha: 0.05, Power: 1, ControlRate: 0.5, TreatmentRate: 0.51}},
		{"control rate negative", Request{Alpha: 0.05, Power: 0.8, ControlRate: -0.1, TreatmentRate: 0.51}},
		{"treatment rate above one", Request{Alpha: 0.05, Power: 0.8, ControlRate: 0.5, TreatmentRate: 1.5}},
		{"negative allocation ratio", Request{Alpha: 0.05, Power: 0.8, ControlRate: 0.5, TreatmentRate: 0.51, AllocationRatio: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.RequiredSamples(tc.req)
			require.Error(t, err)
			assert.True(t, core.IsInvalidParameter(err), "got %v", err)
		})
	}
}

func TestRequiredSamples_DegenerateAllocation(t *testing.T) {
	calc := newTestCalculator()

	// A ratio large enough to round the treatment allocation to zero must be
	// signaled, not silently produce an infinite sample size.
	_, err := calc.RequiredSamples(Request{
		Alpha: 0.05, Power: 0.80, ControlRate: 0.50, TreatmentRate: 0.51,
		AllocationRatio: 1e300, TailType: "two_tail",
	})
	require.Error(t, err)
	assert.True(t, core.IsNumericDegeneracy(err), "got %v", err)
}
