package ports

// BinomialSource provides seeded binomial sampling for deterministic simulation.
// Two calls with the same seed and parameters must return identical sequences;
// calls with different seeds must be statistically independent streams. No
// implementation may consult process-wide random state.
type BinomialSource interface {
	// Draw returns count independent outcome counts, each distributed
	// Binomial(n, p), generated in bulk from a source seeded with seed.
	// Every element lies in [0, n].
	Draw(n int, p float64, count int, seed int64) ([]float64, error)
}
