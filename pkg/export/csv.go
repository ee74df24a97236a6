// Package export sérialise la table segmentée pour la couche de présentation
// (CSV et classeur Excel), avec un ordre de colonnes fixe pour des exports
// déterministes et des allers-retours sans perte.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"rfm-analysis/pkg/models"
)

// Columns est l'ordre de colonnes du contrat de sortie.
var Columns = []string{
	"user_id", "recency", "frequency", "monetary",
	"r_score", "f_score", "m_score", "rfm_total", "rfm_string", "segment",
}

// FilterSegment retourne les utilisateurs d'un segment donné ; "" et "all"
// retournent la table entière.
func FilterSegment(users []models.SegmentedUser, segment string) []models.SegmentedUser {
	if segment == "" || segment == "all" {
		return users
	}
	out := make([]models.SegmentedUser, 0, len(users))
	for _, u := range users {
		if u.Segment == segment {
			out = append(out, u)
		}
	}
	return out
}

// WriteCSV sérialise la table segmentée, filtrée sur un segment ou "all".
func WriteCSV(w io.Writer, users []models.SegmentedUser, segment string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("écriture en-tête: %w", err)
	}
	for _, u := range FilterSegment(users, segment) {
		rec := []string{
			u.UserID,
			strconv.Itoa(u.Recency),
			strconv.Itoa(u.Frequency),
			strconv.FormatFloat(u.Monetary, 'f', -1, 64),
			strconv.Itoa(u.RScore),
			strconv.Itoa(u.FScore),
			strconv.Itoa(u.MScore),
			strconv.Itoa(u.RFMTotal),
			u.RFMString,
			u.Segment,
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("écriture ligne %s: %w", u.UserID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV relit un export produit par WriteCSV en table segmentée typée.
func ReadCSV(r io.Reader) ([]models.SegmentedUser, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("lecture en-tête: %w", err)
	}
	if len(header) != len(Columns) {
		return nil, fmt.Errorf("en-tête inattendu: %d colonnes au lieu de %d", len(header), len(Columns))
	}
	for i, c := range Columns {
		if header[i] != c {
			return nil, fmt.Errorf("en-tête inattendu: colonne %d = %q, %q attendu", i, header[i], c)
		}
	}

	var out []models.SegmentedUser
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lecture ligne %d: %w", line, err)
		}
		line++

		recency, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("ligne %d recency: %w", line, err)
		}
		frequency, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("ligne %d frequency: %w", line, err)
		}
		monetary, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("ligne %d monetary: %w", line, err)
		}
		var scores [4]int
		for i, name := range []string{"r_score", "f_score", "m_score", "rfm_total"} {
			n, err := strconv.Atoi(rec[4+i])
			if err != nil {
				return nil, fmt.Errorf("ligne %d %s: %w", line, name, err)
			}
			scores[i] = n
		}

		out = append(out, models.SegmentedUser{
			ScoredUser: models.ScoredUser{
				UserRFM: models.UserRFM{
					UserID:    rec[0],
					Recency:   recency,
					Frequency: frequency,
					Monetary:  monetary,
				},
				RScore:    scores[0],
				FScore:    scores[1],
				MScore:    scores[2],
				RFMTotal:  scores[3],
				RFMString: rec[8],
			},
			Segment: rec[9],
		})
	}
	return out, nil
}
