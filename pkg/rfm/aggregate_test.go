package rfm

import (
	"testing"
	"time"

	"rfm-analysis/pkg/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransform_Aggregation(t *testing.T) {
	txs := []models.Transaction{
		{UserID: "u1", Date: day(2024, 1, 1), Value: 10},
		{UserID: "u1", Date: day(2024, 1, 10), Value: 20},
		{UserID: "u2", Date: day(2024, 1, 5), Value: 5},
	}
	users, analysisDate := Transform(txs)

	if !analysisDate.Equal(day(2024, 1, 10)) {
		t.Fatalf("analysis date: got %v, want 2024-01-10", analysisDate)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	u1, u2 := users[0], users[1]
	if u1.UserID != "u1" || u1.Recency != 0 || u1.Frequency != 2 || u1.Monetary != 30 {
		t.Fatalf("u1: %+v", u1)
	}
	if u2.UserID != "u2" || u2.Recency != 5 || u2.Frequency != 1 || u2.Monetary != 5 {
		t.Fatalf("u2: %+v", u2)
	}
}

func TestTransform_SameDayTransactionsEachCount(t *testing.T) {
	txs := []models.Transaction{
		{UserID: "u1", Date: day(2024, 3, 1), Value: 1},
		{UserID: "u1", Date: day(2024, 3, 1), Value: 2},
		{UserID: "u1", Date: day(2024, 3, 1), Value: 3},
	}
	users, _ := Transform(txs)
	if users[0].Frequency != 3 {
		t.Fatalf("frequency: got %d, want 3 (row count, not distinct dates)", users[0].Frequency)
	}
	if users[0].Monetary != 6 {
		t.Fatalf("monetary: got %v, want 6", users[0].Monetary)
	}
}

func TestTransform_StableFirstSeenOrder(t *testing.T) {
	txs := []models.Transaction{
		{UserID: "b", Date: day(2024, 1, 1), Value: 1},
		{UserID: "a", Date: day(2024, 1, 2), Value: 1},
		{UserID: "b", Date: day(2024, 1, 3), Value: 1},
		{UserID: "c", Date: day(2024, 1, 4), Value: 1},
	}
	users, _ := Transform(txs)
	want := []string{"b", "a", "c"}
	for i, u := range users {
		if u.UserID != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, u.UserID, want[i])
		}
	}
}

func TestTransform_Empty(t *testing.T) {
	users, analysisDate := Transform(nil)
	if len(users) != 0 {
		t.Fatalf("got %d users, want 0", len(users))
	}
	if !analysisDate.IsZero() {
		t.Fatalf("expected zero analysis date, got %v", analysisDate)
	}
}
