package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, expected: 0},
		{name: "above", value: 2, lo: 0, hi: 1, expected: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
		{name: "on bound", value: 20, lo: 1, hi: 20, expected: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) {
			t.Fatalf("IsFinite(%v) = true", v)
		}
	}

	if !IsFinite(-96) {
		t.Fatal("IsFinite(-96) = false")
	}
}

func TestDBToLinear(t *testing.T) {
	if got := DBToLinear(0); got != 1 {
		t.Fatalf("DBToLinear(0) = %v, want 1", got)
	}

	if got := DBToLinear(-20); math.Abs(got-0.1) > 1e-15 {
		t.Fatalf("DBToLinear(-20) = %v, want 0.1", got)
	}

	if got := LinearToDBFloor(DBToLinear(-6), -96); math.Abs(got+6) > 1e-10 {
		t.Fatalf("round trip -6 dB = %v", got)
	}
}

func TestLinearToDBFloor(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"silence", 0, -96},
		{"negative zero", math.Copysign(0, -1), -96},
		{"below floor", 1e-9, -96},
		{"full scale", 1, 0},
		{"negative full scale", -1, 0},
		{"half", 0.5, 20 * math.Log10(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearToDBFloor(tt.in, -96)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("LinearToDBFloor(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
