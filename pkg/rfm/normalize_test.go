package rfm

import (
	"errors"
	"testing"
	"time"

	"rfm-analysis/pkg/models"
)

func threeCols(rows ...[]any) models.RawTable {
	return models.RawTable{
		Columns: []string{models.ColUserID, models.ColDate, models.ColValue},
		Rows:    rows,
	}
}

func TestNormalize_MissingColumns(t *testing.T) {
	table := models.RawTable{Columns: []string{models.ColUserID, "amount"}}
	_, err := Normalize(table)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 2 || schemaErr.Missing[0] != models.ColDate || schemaErr.Missing[1] != models.ColValue {
		t.Fatalf("missing columns not named exactly: %v", schemaErr.Missing)
	}
}

func TestNormalize_NullDrop(t *testing.T) {
	table := threeCols(
		[]any{"u1", "2024-01-01", "10"},
		[]any{"u2", nil, "20"},
		[]any{nil, "2024-01-02", "30"},
		[]any{"u3", "2024-01-03", nil},
		[]any{"u4", "2024-01-04", "40"},
	)
	got, err := Normalize(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 rows carry a null, row count must decrease by exactly 3
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].UserID != "u1" || got[1].UserID != "u4" {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestNormalize_DateFormatsAgree(t *testing.T) {
	table := threeCols(
		[]any{"a", "2024-01-15", "1"},
		[]any{"b", "20240115", "1"},
		[]any{"c", 20240115, "1"},
		[]any{"d", int64(20240115), "1"},
		[]any{"e", time.Date(2024, 1, 15, 13, 45, 12, 0, time.UTC), "1"},
	)
	got, err := Normalize(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, tx := range got {
		if !tx.Date.Equal(want) {
			t.Fatalf("user %s: got %v, want %v", tx.UserID, tx.Date, want)
		}
	}
}

func TestNormalize_ValueTypes(t *testing.T) {
	table := threeCols(
		[]any{"a", "2024-01-01", "12.5"},
		[]any{"b", "2024-01-01", 7},
		[]any{"c", "2024-01-01", int64(3)},
		[]any{"d", "2024-01-01", 2.25},
	)
	got, err := Normalize(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{12.5, 7, 3, 2.25}
	for i, tx := range got {
		if tx.Value != want[i] {
			t.Fatalf("row %d: got %v, want %v", i, tx.Value, want[i])
		}
	}
}

func TestNormalize_ValueParseError(t *testing.T) {
	table := threeCols(
		[]any{"a", "2024-01-01", "abc"},
		[]any{"b", "2024-01-01", "10"},
		[]any{"c", "2024-01-01", "x2"},
	)
	_, err := Normalize(table)
	var parseErr *ValueParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ValueParseError, got %v", err)
	}
	if parseErr.Column != models.ColValue {
		t.Fatalf("got column %q, want %q", parseErr.Column, models.ColValue)
	}
	if len(parseErr.Examples) != 2 || parseErr.Examples[0] != "abc" || parseErr.Examples[1] != "x2" {
		t.Fatalf("unexpected examples: %v", parseErr.Examples)
	}
}

func TestNormalize_ValueParseErrorCapsExamples(t *testing.T) {
	rows := make([][]any, 8)
	for i := range rows {
		rows[i] = []any{"u", "2024-01-01", "bad"}
	}
	_, err := Normalize(threeCols(rows...))
	var parseErr *ValueParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ValueParseError, got %v", err)
	}
	if len(parseErr.Examples) != maxExamples {
		t.Fatalf("got %d examples, want %d", len(parseErr.Examples), maxExamples)
	}
}

func TestNormalize_DateParseError(t *testing.T) {
	table := threeCols(
		[]any{"a", "15/01/2024", "1"},
		[]any{"b", "2024-01-15", "1"},
	)
	_, err := Normalize(table)
	var parseErr *DateParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected DateParseError, got %v", err)
	}
	if len(parseErr.Examples) != 1 || parseErr.Examples[0] != "15/01/2024" {
		t.Fatalf("unexpected examples: %v", parseErr.Examples)
	}
}

func TestNormalize_UnsupportedType(t *testing.T) {
	table := threeCols([]any{"a", "2024-01-01", true})
	_, err := Normalize(table)
	var typeErr *UnsupportedTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if typeErr.Column != models.ColValue || typeErr.Type != "bool" {
		t.Fatalf("unexpected error fields: %+v", typeErr)
	}

	table = threeCols([]any{"a", 3.14, "1"})
	_, err = Normalize(table)
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnsupportedTypeError for date, got %v", err)
	}
	if typeErr.Column != models.ColDate {
		t.Fatalf("got column %q, want %q", typeErr.Column, models.ColDate)
	}
}

func TestNormalize_NonFiniteValueRejected(t *testing.T) {
	table := threeCols([]any{"a", "2024-01-01", "NaN"})
	_, err := Normalize(table)
	var parseErr *ValueParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ValueParseError for NaN, got %v", err)
	}
}
