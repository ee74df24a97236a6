package rfm

import (
	"sort"
)

// Quantile retourne le quantile p (entre 0 et 1) par interpolation linéaire
// entre statistiques d'ordre : rang = p × (n−1). Les seuils de quintiles et
// les bornes du filtre d'outliers y sont sensibles, donc une seule méthode
// pour tout le pipeline.
func Quantile(x []float64, p float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	if p <= 0 {
		return cp[0]
	}
	if p >= 1 {
		return cp[n-1]
	}
	rank := p * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return cp[lower]
	}
	return cp[lower]*(1-weight) + cp[upper]*weight
}
