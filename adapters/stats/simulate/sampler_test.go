package simulate

import (
	"math"
	"testing"

	"abdesign/adapters/gonumdist"
	"abdesign/domain/abtest"
	"abdesign/domain/core"
)

func newTestSampler() *Sampler {
	return NewSampler(gonumdist.NewBinomialSource())
}

func TestSampler_Reproducibility(t *testing.T) {
	sampler := newTestSampler()
	cfg := abtest.TrialConfig{Trials: 2000, Rate: 0.35}

	first, err := sampler.Sample(cfg, 1000, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := sampler.Sample(cfg, 1000, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("fixed seed produced divergent batches at index %d", i)
		}
	}
}

func TestSampler_RangeInvariant(t *testing.T) {
	sampler := newTestSampler()
	cfg := abtest.TrialConfig{Trials: 500, Rate: 0.5}

	batch, err := sampler.Sample(cfg, 20000, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 20000 {
		t.Fatalf("expected 20000 replicates, got %d", len(batch))
	}
	for i, v := range batch {
		if v < 0 || v > float64(cfg.Trials) {
			t.Fatalf("replicate %d = %f outside [0, %d]", i, v, cfg.Trials)
		}
	}
}

func TestSampler_MeanNearExpectation(t *testing.T) {
	sampler := newTestSampler()
	cfg := abtest.TrialConfig{Trials: 10000, Rate: 0.5}

	batch, err := sampler.Sample(cfg, 50000, 23)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := 0.0
	for _, v := range batch {
		sum += v
	}
	mean := sum / float64(len(batch))
	expected := float64(cfg.Trials) * cfg.Rate

	// sd of a single replicate is 50; the mean of 50k replicates has a
	// standard error near 0.22, so a tolerance of 2 is over 9 sigma.
	if math.Abs(mean-expected) > 2 {
		t.Errorf("batch mean %f too far from expectation %f", mean, expected)
	}
}

func TestSampler_InvalidParameters(t *testing.T) {
	sampler := newTestSampler()

	cases := []struct {
		name     string
		cfg      abtest.TrialConfig
		simCount int
	}{
		{"zero trials", abtest.TrialConfig{Trials: 0, Rate: 0.5}, 100},
		{"rate above one", abtest.TrialConfig{Trials: 10, Rate: 1.2}, 100},
		{"negative rate", abtest.TrialConfig{Trials: 10, Rate: -0.2}, 100},
		{"zero simulations", abtest.TrialConfig{Trials: 10, Rate: 0.5}, 0},
		{"negative simulations", abtest.TrialConfig{Trials: 10, Rate: 0.5}, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sampler.Sample(tc.cfg, tc.simCount, 1)
			if !core.IsInvalidParameter(err) {
				t.Fatalf("expected invalid-parameter error, got %v", err)
			}
		})
	}
}
