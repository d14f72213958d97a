package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"abdesign/adapters/stats/inference"
	"abdesign/domain/abtest"
	"abdesign/domain/core"
)

// SweepRequest evaluates empirical power across several trial counts with the
// other design parameters held fixed.
type SweepRequest struct {
	TrialCounts   []int   `json:"trial_counts"`
	ControlRate   float64 `json:"control_rate"`
	TreatmentRate float64 `json:"treatment_rate"`
	Alpha         float64 `json:"alpha"`
	SimCount      int     `json:"sim_count"`
	Seed          int64   `json:"seed"`
	TailType      string  `json:"tail_type"`
}

// SweepPoint is the power estimate for one trial count
type SweepPoint struct {
	Trials             int     `json:"trials"`
	RejectionThreshold float64 `json:"rejection_threshold"`
	Power              float64 `json:"power"`
}

// PowerSweep computes the power curve concurrently. Each point owns a
// disjoint block of derived seeds, so workers never share generator state and
// the result is identical to a sequential evaluation.
func (s *DesignService) PowerSweep(ctx context.Context, req SweepRequest, maxWorkers int) ([]SweepPoint, error) {
	if len(req.TrialCounts) == 0 {
		return nil, core.NewInvalidParameterError("trial counts", "must not be empty")
	}
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	tails := abtest.ParseTailMode(req.TailType)
	sem := semaphore.NewWeighted(int64(maxWorkers))
	points := make([]SweepPoint, len(req.TrialCounts))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, trials := range req.TrialCounts {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(i, trials int) {
			defer wg.Done()
			defer sem.Release(1)

			// Four seeds per point: two null batches, two alternative.
			seedBase := req.Seed + int64(i)*4
			point, err := s.powerAt(trials, req, tails, seedBase)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			points[i] = point
		}(i, trials)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return points, nil
}

func (s *DesignService) powerAt(trials int, req SweepRequest, tails abtest.TailMode, seedBase int64) (SweepPoint, error) {
	cfg := abtest.TrialConfig{Trials: trials, Rate: req.ControlRate}

	null, err := s.nulls.BuildNull(cfg, req.SimCount, inference.SeedPair{Control: seedBase, Treatment: seedBase + 1})
	if err != nil {
		return SweepPoint{}, err
	}
	threshold, err := s.nulls.RejectionThreshold(null, req.Alpha, tails)
	if err != nil {
		return SweepPoint{}, err
	}
	alternative, err := s.power.BuildAlternative(trials, req.ControlRate, req.TreatmentRate, req.SimCount, inference.SeedPair{Control: seedBase + 2, Treatment: seedBase + 3})
	if err != nil {
		return SweepPoint{}, err
	}
	power, err := s.power.Power(alternative, threshold)
	if err != nil {
		return SweepPoint{}, err
	}

	return SweepPoint{
		Trials:             trials,
		RejectionThreshold: threshold,
		Power:              power,
	}, nil
}
