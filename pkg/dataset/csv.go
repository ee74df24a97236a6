// Package dataset lit les jeux de données tabulaires bruts destinés au
// pipeline RFM. La lecture ne valide rien : les cellules restent des chaînes
// (vide = null) et c'est la normalisation qui tranche.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"rfm-analysis/pkg/models"
)

// Mapping associe les colonnes du fichier source aux trois colonnes requises.
// Un mapping vide laisse les colonnes telles quelles (le fichier porte déjà
// les bons noms, ou le schéma sera refusé en aval).
type Mapping struct {
	UserCol  string
	DateCol  string
	ValueCol string
}

// ReadCSV lit un CSV avec ligne d'en-tête. Avec un mapping, les trois
// colonnes doivent exister et être distinctes ; elles sont sélectionnées et
// renommées en user_id/date/value (les autres sont ignorées).
func ReadCSV(r io.Reader, m Mapping) (models.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return models.RawTable{}, fmt.Errorf("lecture en-tête: %w", err)
	}

	if m == (Mapping{}) {
		return readAll(reader, header)
	}

	if m.UserCol == m.DateCol || m.UserCol == m.ValueCol || m.DateCol == m.ValueCol {
		return models.RawTable{}, fmt.Errorf("les trois colonnes mappées doivent être distinctes")
	}
	idx := make(map[string]int, len(header))
	for i, c := range header {
		idx[c] = i
	}
	var cols [3]int
	for i, name := range []string{m.UserCol, m.DateCol, m.ValueCol} {
		j, ok := idx[name]
		if !ok {
			return models.RawTable{}, fmt.Errorf("colonne %q absente du fichier", name)
		}
		cols[i] = j
	}

	out := models.RawTable{Columns: []string{models.ColUserID, models.ColDate, models.ColValue}}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.RawTable{}, fmt.Errorf("lecture ligne: %w", err)
		}
		row := make([]any, 3)
		for i, j := range cols {
			row[i] = cellValue(rec, j)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func readAll(reader *csv.Reader, header []string) (models.RawTable, error) {
	out := models.RawTable{Columns: append([]string(nil), header...)}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.RawTable{}, fmt.Errorf("lecture ligne: %w", err)
		}
		row := make([]any, len(header))
		for i := range header {
			row[i] = cellValue(rec, i)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// cellValue : champ vide ou absent → null.
func cellValue(rec []string, i int) any {
	if i >= len(rec) || rec[i] == "" {
		return nil
	}
	return rec[i]
}
