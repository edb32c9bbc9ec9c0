package rng

import (
	"testing"
	"time"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := New("abc")
	b := New("abc")

	for i := 0; i < 1000; i++ {
		va, vb := a.Float(), b.Float()
		if va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
	}
	if a.Draws() != 1000 {
		t.Errorf("Draws() = %d, expected 1000", a.Draws())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New("abc")
	b := New("abd")

	same := 0
	for i := 0; i < 100; i++ {
		if a.Float() == b.Float() {
			same++
		}
	}
	if same > 2 {
		t.Errorf("different seeds produced %d identical draws out of 100", same)
	}
}

func TestFloatRange(t *testing.T) {
	r := New("range")
	for i := 0; i < 10000; i++ {
		v := r.Float()
		if v < 0 || v >= 1 {
			t.Fatalf("Float() = %v, outside [0, 1)", v)
		}
	}
}

func TestIntnBounds(t *testing.T) {
	r := New("intn")
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := r.Intn(4)
		if v < 0 || v >= 4 {
			t.Fatalf("Intn(4) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected all 4 values, saw %v", seen)
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
}

func TestPickRespectsWeights(t *testing.T) {
	r := New("pick")
	weights := []float64{3, 0, 1}
	counts := make([]int, len(weights))

	const n = 20000
	for i := 0; i < n; i++ {
		counts[r.Pick(weights)]++
	}

	if counts[1] != 0 {
		t.Errorf("zero weight picked %d times", counts[1])
	}
	ratio := float64(counts[0]) / n
	if ratio < 0.72 || ratio > 0.78 {
		t.Errorf("weight 3/4 picked with ratio %.3f", ratio)
	}
}

func TestPickConsumesOneDraw(t *testing.T) {
	r := New("draws")
	r.Pick([]float64{1, 2, 3})
	r.Pick(nil)
	if r.Draws() != 2 {
		t.Errorf("Draws() = %d, expected 2", r.Draws())
	}
}

func TestDailySeed(t *testing.T) {
	day := time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC)
	if got := DailySeed(day); got != "daily-2026-10-19" {
		t.Errorf("DailySeed() = %q", got)
	}
}
