package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"rfm-analysis/pkg/models"
	"rfm-analysis/pkg/rfm"
)

const (
	dataSheet    = "RFM"
	summarySheet = "Segments"
)

// WriteExcel produit un classeur avec une feuille de données (mêmes colonnes
// que l'export CSV) et une feuille d'agrégats par segment (effectifs,
// pourcentages, couleur d'affichage).
func WriteExcel(w io.Writer, users []models.SegmentedUser, segment string) error {
	users = FilterSegment(users, segment)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("feuille %s: %w", dataSheet, err)
	}
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return fmt.Errorf("en-tête %s: %w", dataSheet, err)
	}
	for i, u := range users {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			u.UserID, u.Recency, u.Frequency, u.Monetary,
			u.RScore, u.FScore, u.MScore, u.RFMTotal, u.RFMString, u.Segment,
		}
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return fmt.Errorf("ligne %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("feuille %s: %w", summarySheet, err)
	}
	sumHeader := []any{"segment", "count", "percentage", "color"}
	if err := f.SetSheetRow(summarySheet, "A1", &sumHeader); err != nil {
		return fmt.Errorf("en-tête %s: %w", summarySheet, err)
	}
	for i, s := range rfm.SummarizeSegments(users) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{s.Segment, s.Count, s.Percentage, rfm.SegmentColor(s.Segment)}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("ligne %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("écriture classeur: %w", err)
	}
	return nil
}
