package ports

// NormalDist exposes the standard normal distribution functions the
// closed-form calculators depend on.
type NormalDist interface {
	// CDF returns P(Z <= z) for a standard normal Z, in [0, 1].
	CDF(z float64) float64

	// Quantile returns the inverse CDF at probability p. p must lie in the
	// open interval (0, 1).
	Quantile(p float64) (float64, error)
}
