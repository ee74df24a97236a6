package rfm

import (
	"testing"
)

func TestQuantile_LinearInterpolation(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	if got := Quantile(x, 0.5); got != 2.5 {
		t.Fatalf("got %v, want 2.5", got)
	}
	// rank = 0.25*3 = 0.75 between x[0] and x[1]
	if got := Quantile(x, 0.25); got != 1.75 {
		t.Fatalf("got %v, want 1.75", got)
	}
}

func TestQuantile_Bounds(t *testing.T) {
	x := []float64{5, 1, 3}
	if got := Quantile(x, 0); got != 1 {
		t.Fatalf("p=0: got %v, want 1", got)
	}
	if got := Quantile(x, 1); got != 5 {
		t.Fatalf("p=1: got %v, want 5", got)
	}
	if got := Quantile(x, -0.5); got != 1 {
		t.Fatalf("p<0: got %v, want 1", got)
	}
	if got := Quantile(x, 1.5); got != 5 {
		t.Fatalf("p>1: got %v, want 5", got)
	}
}

func TestQuantile_SingleAndEmpty(t *testing.T) {
	if got := Quantile([]float64{7}, 0.8); got != 7 {
		t.Fatalf("single: got %v, want 7", got)
	}
	if got := Quantile(nil, 0.5); got != 0 {
		t.Fatalf("empty: got %v, want 0", got)
	}
}

func TestQuantile_DoesNotMutateInput(t *testing.T) {
	x := []float64{3, 1, 2}
	_ = Quantile(x, 0.5)
	if x[0] != 3 || x[1] != 1 || x[2] != 2 {
		t.Fatalf("input mutated: %v", x)
	}
}
