package gonumdist

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"abdesign/domain/core"
)

// BinomialSource implements ports.BinomialSource on top of gonum's binomial
// distribution. Each Draw call builds its own seeded source, so state never
// leaks between calls and concurrent callers need no coordination.
type BinomialSource struct{}

// NewBinomialSource creates a gonum-backed binomial source
func NewBinomialSource() *BinomialSource {
	return &BinomialSource{}
}

// Draw returns count independent Binomial(n, p) outcome counts from a
// deterministic stream seeded with seed.
func (s *BinomialSource) Draw(n int, p float64, count int, seed int64) ([]float64, error) {
	if n <= 0 {
		return nil, core.NewInvalidParameterError("n", "must be > 0")
	}
	if p < 0 || p > 1 {
		return nil, core.NewInvalidParameterError("p", "must be in [0, 1]")
	}
	if count <= 0 {
		return nil, core.NewInvalidParameterError("count", "must be > 0")
	}

	dist := distuv.Binomial{
		N:   float64(n),
		P:   p,
		Src: rand.NewSource(uint64(seed)),
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}
