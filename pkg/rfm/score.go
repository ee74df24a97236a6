package rfm

import (
	"fmt"

	"rfm-analysis/pkg/models"
)

var quintiles = [4]float64{0.2, 0.4, 0.6, 0.8}

// ComputeThresholds calcule indépendamment les 4 seuils de quintiles de
// chaque métrique, avec la même méthode de quantile que le filtre d'outliers.
func ComputeThresholds(users []models.UserRFM) models.Thresholds {
	rec := make([]float64, len(users))
	freq := make([]float64, len(users))
	mon := make([]float64, len(users))
	for i, u := range users {
		rec[i] = float64(u.Recency)
		freq[i] = float64(u.Frequency)
		mon[i] = u.Monetary
	}
	var th models.Thresholds
	for i, q := range quintiles {
		th.Recency[i] = Quantile(rec, q)
		th.Frequency[i] = Quantile(freq, q)
		th.Monetary[i] = Quantile(mon, q)
	}
	return th
}

// bucket classe une valeur en 1..5 par comparaison ≤ inclusive contre les
// seuils croissants. Les ex æquo exactement sur un seuil tombent tous dans la
// classe basse : comportement assumé, pas une erreur, même si une métrique à
// fortes égalités (frequency en petits entiers) peut gonfler une classe.
func bucket(v float64, th [4]float64) int {
	switch {
	case v <= th[0]:
		return 1
	case v <= th[1]:
		return 2
	case v <= th[2]:
		return 3
	case v <= th[3]:
		return 4
	default:
		return 5
	}
}

// Score affecte les scores 1..5. Fréquence et monétaire : valeur haute →
// score haut (5 = meilleur). Récence : inversée (score = 6 − classe), moins
// de jours depuis la dernière activité étant le résultat recherché.
func Score(users []models.UserRFM, th models.Thresholds) []models.ScoredUser {
	out := make([]models.ScoredUser, 0, len(users))
	for _, u := range users {
		r := 6 - bucket(float64(u.Recency), th.Recency)
		f := bucket(float64(u.Frequency), th.Frequency)
		m := bucket(u.Monetary, th.Monetary)
		out = append(out, models.ScoredUser{
			UserRFM:   u,
			RScore:    r,
			FScore:    f,
			MScore:    m,
			RFMTotal:  r + f + m,
			RFMString: fmt.Sprintf("%d%d%d", r, f, m),
		})
	}
	return out
}
