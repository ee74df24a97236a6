package rfm

import (
	"rfm-analysis/pkg/models"
)

// RemoveOutliersPercentile écarte les lignes dont la valeur sort de
// [Quantile(lower), Quantile(upper)], bornes incluses. Les lignes sont
// retirées, jamais écrêtées, et la colonne n'est pas modifiée. Le filtre
// s'applique tel quel même sur une distribution dégénérée (peu de valeurs
// distinctes), où les bornes peuvent coïncider avec beaucoup d'observations.
func RemoveOutliersPercentile(txs []models.Transaction, lower, upper float64) []models.Transaction {
	if len(txs) == 0 {
		return txs
	}
	values := make([]float64, len(txs))
	for i, t := range txs {
		values[i] = t.Value
	}
	lo := Quantile(values, lower)
	hi := Quantile(values, upper)

	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Value >= lo && t.Value <= hi {
			out = append(out, t)
		}
	}
	return out
}
