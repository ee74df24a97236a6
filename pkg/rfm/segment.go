package rfm

import (
	"sort"

	"rfm-analysis/pkg/models"
)

// Libellés des 9 segments.
const (
	SegmentChampions        = "Champions"
	SegmentActive           = "Active"
	SegmentNewcomers        = "Newcomers"
	SegmentFadingLoyalists  = "Fading Loyalists"
	SegmentInactive         = "Inactive"
	SegmentAtRiskLowValue   = "At Risk (Low Value)"
	SegmentCantLoseThem     = "Can't Lose Them"
	SegmentReactivationPool = "Reactivation Pool"
	SegmentLostCasual       = "Lost Casual"
)

// Table de décision : lignes = bande de récence (r ≥ 4, r = 3, r ≤ 2),
// colonnes = bande de fm_index (≥ 8, 5..7, ≤ 4).
var segmentTable = [3][3]string{
	{SegmentChampions, SegmentActive, SegmentNewcomers},
	{SegmentFadingLoyalists, SegmentInactive, SegmentAtRiskLowValue},
	{SegmentCantLoseThem, SegmentReactivationPool, SegmentLostCasual},
}

// MapSegment classe un triplet de scores dans l'un des 9 segments, via
// fm_index = f + m comme axe secondaire. Fonction totale sur [1,5]³ ;
// InvalidScoreError ne sert qu'aux scores fournis hors pipeline.
func MapSegment(r, f, m int) (string, error) {
	if r < 1 || r > 5 || f < 1 || f > 5 || m < 1 || m > 5 {
		return "", &InvalidScoreError{R: r, F: f, M: m}
	}
	var row int
	switch {
	case r >= 4:
		row = 0
	case r == 3:
		row = 1
	default:
		row = 2
	}
	fm := f + m
	var col int
	switch {
	case fm >= 8:
		col = 0
	case fm >= 5:
		col = 1
	default:
		col = 2
	}
	return segmentTable[row][col], nil
}

// Classify applique la table de décision à chaque utilisateur scoré.
func Classify(users []models.ScoredUser) ([]models.SegmentedUser, error) {
	out := make([]models.SegmentedUser, 0, len(users))
	for _, u := range users {
		seg, err := MapSegment(u.RScore, u.FScore, u.MScore)
		if err != nil {
			return nil, err
		}
		out = append(out, models.SegmentedUser{ScoredUser: u, Segment: seg})
	}
	return out, nil
}

// SegmentCount est une ligne d'agrégat par segment pour la présentation.
type SegmentCount struct {
	Segment    string  `json:"segment"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // 100 × count / total
}

// SummarizeSegments compte les utilisateurs par segment, trié par effectif
// décroissant (ex æquo départagés par libellé pour rester déterministe).
func SummarizeSegments(users []models.SegmentedUser) []SegmentCount {
	counts := make(map[string]int)
	for _, u := range users {
		counts[u.Segment]++
	}
	total := len(users)
	out := make([]SegmentCount, 0, len(counts))
	for seg, n := range counts {
		out = append(out, SegmentCount{
			Segment:    seg,
			Count:      n,
			Percentage: 100 * float64(n) / float64(total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}

// Couleurs d'affichage par segment : configuration immuable du process.
var segmentColors = map[string]string{
	SegmentChampions:        "#A8E6A3",
	SegmentActive:           "#B6E3D4",
	SegmentNewcomers:        "#B5D8F6",
	SegmentFadingLoyalists:  "#FFD8A8",
	SegmentInactive:         "#FFE0CC",
	SegmentAtRiskLowValue:   "#FFF6A3",
	SegmentCantLoseThem:     "#F6A6A6",
	SegmentReactivationPool: "#D8C7FF",
	SegmentLostCasual:       "#D9D9D9",
}

// FallbackColor est renvoyée pour tout libellé inconnu. Le classifieur n'en
// émet jamais, mais les consommateurs doivent en tolérer un.
const FallbackColor = "#9ca3af"

// SegmentColor retourne la couleur d'affichage d'un segment.
func SegmentColor(label string) string {
	if c, ok := segmentColors[label]; ok {
		return c
	}
	return FallbackColor
}
