package rfm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"rfm-analysis/pkg/models"
)

// Normalize vérifie le schéma puis produit les transactions typées :
// value → float64 fini, date → date calendaire (minuit UTC).
// Les lignes contenant un null dans l'une des trois colonnes sont écartées
// silencieusement avant toute validation (robustesse plutôt que strictesse).
func Normalize(table models.RawTable) ([]models.Transaction, error) {
	idx := make(map[string]int, len(table.Columns))
	for i, c := range table.Columns {
		idx[c] = i
	}
	var missing []string
	for _, c := range []string{models.ColUserID, models.ColDate, models.ColValue} {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	ui, di, vi := idx[models.ColUserID], idx[models.ColDate], idx[models.ColValue]
	out := make([]models.Transaction, 0, len(table.Rows))
	var badValues, badDates []string

	for _, row := range table.Rows {
		u, d, v := cellAt(row, ui), cellAt(row, di), cellAt(row, vi)
		if u == nil || d == nil || v == nil {
			continue // null → ligne écartée, par choix
		}

		value, ok, err := normalizeValue(v)
		if err != nil {
			return nil, err
		}
		if !ok {
			if len(badValues) < maxExamples {
				badValues = append(badValues, fmt.Sprint(v))
			}
			continue
		}

		date, ok, err := normalizeDate(d)
		if err != nil {
			return nil, err
		}
		if !ok {
			if len(badDates) < maxExamples {
				badDates = append(badDates, fmt.Sprint(d))
			}
			continue
		}

		out = append(out, models.Transaction{
			UserID: normalizeUserID(u),
			Date:   date,
			Value:  value,
		})
	}

	// Toute valeur non nulle imparsable est fatale : pas de résultat partiel.
	if len(badValues) > 0 {
		return nil, &ValueParseError{Column: models.ColValue, Examples: badValues}
	}
	if len(badDates) > 0 {
		return nil, &DateParseError{Column: models.ColDate, Examples: badDates}
	}
	return out, nil
}

func cellAt(row []any, i int) any {
	if i >= len(row) {
		return nil
	}
	return row[i]
}

func normalizeUserID(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

// normalizeValue convertit une cellule en float64. ok=false signale une valeur
// imparsable (à remonter en exemple), err un type sans règle.
func normalizeValue(v any) (float64, bool, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false, nil
		}
		f = parsed
	default:
		return 0, false, &UnsupportedTypeError{Column: models.ColValue, Type: fmt.Sprintf("%T", v)}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, nil
	}
	return f, true, nil
}

// normalizeDate accepte une date native (l'heure éventuelle est tronquée),
// un entier YYYYMMDD, ou une chaîne ISO 'YYYY-MM-DD' puis compacte 'YYYYMMDD'
// (premier format reconnu gagne, ligne par ligne).
func normalizeDate(v any) (time.Time, bool, error) {
	switch x := v.(type) {
	case time.Time:
		return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, time.UTC), true, nil
	case int:
		return parseCompactDate(strconv.FormatInt(int64(x), 10))
	case int32:
		return parseCompactDate(strconv.FormatInt(int64(x), 10))
	case int64:
		return parseCompactDate(strconv.FormatInt(x, 10))
	case uint32:
		return parseCompactDate(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return parseCompactDate(strconv.FormatUint(x, 10))
	case string:
		s := strings.TrimSpace(x)
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, true, nil
		}
		return parseCompactDate(s)
	default:
		return time.Time{}, false, &UnsupportedTypeError{Column: models.ColDate, Type: fmt.Sprintf("%T", v)}
	}
}

func parseCompactDate(s string) (time.Time, bool, error) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}
