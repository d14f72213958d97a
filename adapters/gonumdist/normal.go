package gonumdist

import (
	"gonum.org/v1/gonum/stat/distuv"

	"abdesign/domain/core"
)

// Normal implements ports.NormalDist using gonum's unit normal
type Normal struct{}

// NewNormal creates a gonum-backed standard normal distribution
func NewNormal() *Normal {
	return &Normal{}
}

// CDF returns P(Z <= z) for a standard normal Z
func (n *Normal) CDF(z float64) float64 {
	return distuv.UnitNormal.CDF(z)
}

// Quantile returns the inverse CDF at probability p in (0, 1)
func (n *Normal) Quantile(p float64) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, core.NewInvalidParameterError("probability", "must be in (0, 1)")
	}
	return distuv.UnitNormal.Quantile(p), nil
}
