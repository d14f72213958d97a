package abtest

import (
	"math"
	"testing"

	"abdesign/domain/core"
)

func TestTrialConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     TrialConfig
		wantErr bool
	}{
		{"valid", TrialConfig{Trials: 1000, Rate: 0.5}, false},
		{"zero rate", TrialConfig{Trials: 10, Rate: 0}, false},
		{"unit rate", TrialConfig{Trials: 10, Rate: 1}, false},
		{"zero trials", TrialConfig{Trials: 0, Rate: 0.5}, true},
		{"negative trials", TrialConfig{Trials: -5, Rate: 0.5}, true},
		{"negative rate", TrialConfig{Trials: 10, Rate: -0.1}, true},
		{"rate above one", TrialConfig{Trials: 10, Rate: 1.1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %+v", tc.cfg)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %+v: %v", tc.cfg, err)
			}
			if tc.wantErr && !core.IsInvalidParameter(err) {
				t.Errorf("expected invalid-parameter error, got %v", err)
			}
		})
	}
}

func TestNewDifferenceDistribution(t *testing.T) {
	treatment := SimulationBatch{510, 505, 495}
	control := SimulationBatch{500, 500, 500}

	diff, err := NewDifferenceDistribution(treatment, control, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diff) != 3 {
		t.Fatalf("expected 3 differences, got %d", len(diff))
	}

	want := []float64{0.010, 0.005, -0.005}
	for i, w := range want {
		if math.Abs(diff[i]-w) > 1e-12 {
			t.Errorf("diff[%d] = %f, want %f", i, diff[i], w)
		}
	}
}

func TestNewDifferenceDistribution_LengthMismatch(t *testing.T) {
	_, err := NewDifferenceDistribution(SimulationBatch{1, 2}, SimulationBatch{1}, 10)
	if !core.IsInvalidParameter(err) {
		t.Fatalf("expected invalid-parameter error, got %v", err)
	}
}

func TestParseTailMode(t *testing.T) {
	cases := map[string]TailMode{
		"one":        TailOne,
		"one_tail":   TailOne,
		"one-tail":   TailOne,
		"two":        TailTwo,
		"two_tail":   TailTwo,
		"":           TailTwo,
		"both":       TailTwo, // unrecognized values default to two-tailed
		"ONE":        TailTwo, // matching is case-sensitive and explicit
		"three_tail": TailTwo,
	}

	for input, want := range cases {
		if got := ParseTailMode(input); got != want {
			t.Errorf("ParseTailMode(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSummarize(t *testing.T) {
	dist := DifferenceDistribution{-0.02, -0.01, 0.0, 0.01, 0.02}
	summary := Summarize(dist)

	if summary.Count != 5 {
		t.Errorf("Count = %d, want 5", summary.Count)
	}
	if math.Abs(summary.Mean) > 1e-12 {
		t.Errorf("Mean = %f, want 0", summary.Mean)
	}
	if summary.Min != -0.02 || summary.Max != 0.02 {
		t.Errorf("Min/Max = %f/%f, want -0.02/0.02", summary.Min, summary.Max)
	}
	if summary.StdDev <= 0 {
		t.Errorf("StdDev should be positive, got %f", summary.StdDev)
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Count != 0 || summary.Mean != 0 {
		t.Errorf("empty distribution should summarize to zero values, got %+v", summary)
	}
}

func TestSampleSizeResult_Total(t *testing.T) {
	r := SampleSizeResult{ControlSamples: 100, TreatmentSamples: 200}
	if r.Total() != 300 {
		t.Errorf("Total = %d, want 300", r.Total())
	}
}
