package analyzer

import (
	"math"
	"testing"
)

func TestConsistency_KnownValue(t *testing.T) {
	// ahead = 1.0, aboveOwn = 0.4, stability = 1 − 1.41421/4.000001,
	// growth = 4/4.000001 → 10·(0.3 + 0.1 + 0.129289 + 0.25) = 7.79.
	player := []float64{1, 2, 3, 4, 5}
	opponent := []float64{0, 0, 0, 0, 0}
	got := Consistency(player, opponent)
	if got != 7.79 {
		t.Errorf("Consistency: want 7.79, got %.2f", got)
	}
}

// TestConsistency_Bounds: score stays in [0,10] across shapes of input,
// including degenerate constant series.
func TestConsistency_Bounds(t *testing.T) {
	cases := [][]float64{
		{5},
		{1, 1, 1, 1, 1, 1},
		{0, 0, 0},
		{10, -10, 10, -10, 10, -10, 10, -10, 10, -10},
		{-3, -2, -1, 0, 1, 2, 3},
		{100, 1, 100, 1, 50},
	}
	opponent := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	for _, player := range cases {
		got := Consistency(player, opponent)
		if got < 0 || got > 10 {
			t.Errorf("Consistency(%v) = %f, out of [0,10]", player, got)
		}
	}
}

// TestConsistency_ConstantSeries: range 0 saturates stability near 1 via
// the epsilon guard instead of faulting.
func TestConsistency_ConstantSeries(t *testing.T) {
	player := []float64{2, 2, 2, 2, 2, 2, 2, 2, 2, 2}
	opponent := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	got := Consistency(player, opponent)
	// ahead = 1, aboveOwn = 0, stability = 1, growth = 0 → 5.00.
	if got != 5.00 {
		t.Errorf("Consistency: want 5.00, got %.2f", got)
	}
}

// TestConsistency_ShortSeries: fewer than 5 points leaves the growth
// segments empty; segment medians are treated as 0.
func TestConsistency_ShortSeries(t *testing.T) {
	for _, player := range [][]float64{{1}, {1, 2}, {3, 2, 1}, {1, 2, 3, 4}} {
		got := Consistency(player, []float64{0, 0, 0, 0})
		if got < 0 || got > 10 {
			t.Errorf("Consistency(%v) = %f, out of [0,10]", player, got)
		}
	}
}

func TestConsistency_Empty(t *testing.T) {
	if got := Consistency(nil, nil); got != 0 {
		t.Errorf("Consistency(nil): want 0, got %f", got)
	}
}

// TestConsistency_GrowthClamped: a collapsing series clamps growth at 0
// rather than going negative.
func TestConsistency_GrowthClamped(t *testing.T) {
	rising := Consistency([]float64{1, 1, 2, 3, 5, 5, 6, 7, 8, 9}, make([]float64, 10))
	falling := Consistency([]float64{9, 8, 7, 6, 5, 5, 3, 2, 1, 1}, make([]float64, 10))
	if rising <= falling {
		t.Errorf("rising series should outscore falling: %f vs %f", rising, falling)
	}
	if falling < 0 {
		t.Errorf("falling series score negative: %f", falling)
	}
}

func TestStddev(t *testing.T) {
	cases := []struct {
		in   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{4}, 0},
		{[]float64{1, 1, 1}, 0},
		{[]float64{1, 2, 3, 4, 5}, math.Sqrt(2)},
	}
	for _, c := range cases {
		if got := stddev(c.in); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("stddev(%v): want %f, got %f", c.in, c.want, got)
		}
	}
}
