package rfm

import (
	"time"

	"rfm-analysis/pkg/models"
)

// Transform agrège les transactions en une ligne par utilisateur distinct.
// analysis_date = max(date) sur toute la table : une seule référence globale,
// pas de référence par utilisateur. L'ordre de sortie suit la première
// apparition de chaque utilisateur, pour un seuillage aval déterministe à
// entrée identique.
func Transform(txs []models.Transaction) ([]models.UserRFM, time.Time) {
	if len(txs) == 0 {
		return nil, time.Time{}
	}

	analysisDate := txs[0].Date
	for _, t := range txs[1:] {
		if t.Date.After(analysisDate) {
			analysisDate = t.Date
		}
	}

	type agg struct {
		last  time.Time
		count int
		sum   float64
	}
	byUser := make(map[string]*agg)
	order := make([]string, 0)
	for _, t := range txs {
		a, ok := byUser[t.UserID]
		if !ok {
			a = &agg{}
			byUser[t.UserID] = a
			order = append(order, t.UserID)
		}
		if t.Date.After(a.last) {
			a.last = t.Date
		}
		a.count++ // nombre de lignes, les transactions du même jour comptent chacune
		a.sum += t.Value
	}

	out := make([]models.UserRFM, 0, len(order))
	for _, id := range order {
		a := byUser[id]
		out = append(out, models.UserRFM{
			UserID:    id,
			Recency:   int(analysisDate.Sub(a.last).Hours() / 24),
			Frequency: a.count,
			Monetary:  a.sum,
		})
	}
	return out, analysisDate
}
