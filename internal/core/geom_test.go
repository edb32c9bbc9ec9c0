package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVecArithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add() = %v, expected (4, 2)", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub() = %v, expected (2, 6)", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale() = %v, expected (6, 8)", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot() = %v, expected -5", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len() = %v, expected 5", got)
	}
	if got := a.Dist(V(0, 0)); got != 5 {
		t.Errorf("Dist() = %v, expected 5", got)
	}
}

func TestVecNorm(t *testing.T) {
	n := V(0, 10).Norm()
	if !near(n.X, 0) || !near(n.Y, 1) {
		t.Errorf("Norm() = %v, expected (0, 1)", n)
	}
	if z := (Vec{}).Norm(); z != (Vec{}) {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
}

func TestVecRotate(t *testing.T) {
	tests := []struct {
		name  string
		in    Vec
		angle float64
		want  Vec
	}{
		{"quarter turn", V(1, 0), math.Pi / 2, V(0, 1)},
		{"half turn", V(1, 0), math.Pi, V(-1, 0)},
		{"no turn", V(2, 3), 0, V(2, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Rotate(tc.angle)
			if !near(got.X, tc.want.X) || !near(got.Y, tc.want.Y) {
				t.Errorf("Rotate() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi / 2, math.Pi / 2},
		{math.Pi / 4, math.Pi / 4},
	}

	for _, tc := range tests {
		if got := NormalizeAngle(tc.in); !near(got, tc.want) {
			t.Errorf("NormalizeAngle(%f) = %f, expected %f", tc.in, got, tc.want)
		}
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{W: 100, H: 50}

	if !b.Contains(V(50, 25), 0) {
		t.Error("center should be inside")
	}
	if b.Contains(V(-5, 25), 0) {
		t.Error("point left of bounds should be outside without margin")
	}
	if !b.Contains(V(-5, 25), 10) {
		t.Error("point left of bounds should be inside with margin")
	}
	if c := b.Center(); c != V(50, 25) {
		t.Errorf("Center() = %v, expected (50, 25)", c)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestInputFrameMoveClamped(t *testing.T) {
	f := MoveInput(1, 1)
	if l := f.Move.Len(); !near(l, 1) {
		t.Errorf("diagonal move should be normalized, length %f", l)
	}

	f.SetMove(0.5, 0)
	if f.Move != V(0.5, 0) {
		t.Errorf("partial move should be kept, got %v", f.Move)
	}

	f.SetMove(-3, 0)
	if f.Move != V(-1, 0) {
		t.Errorf("axis move should clamp to -1, got %v", f.Move)
	}
}
