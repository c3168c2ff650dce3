package param

import (
	"math"
	"testing"
)

var testRatio = Descriptor{ID: "ratio", Name: "ratio", Unit: ":1", Min: 1, Max: 20, Default: 3}

func TestDescriptorClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 4, 4},
		{"below", 0.5, 1},
		{"above", 100, 20},
		{"nan", math.NaN(), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testRatio.Clamp(tt.in); got != tt.want {
				t.Fatalf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		wantErr bool
	}{
		{"min", 1, false},
		{"max", 20, false},
		{"below", 0.99, true},
		{"above", 20.01, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testRatio.Validate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestDescriptorNormalizeRoundTrip(t *testing.T) {
	for _, v := range []float64{1, 3, 10.5, 20} {
		got := testRatio.Denormalize(testRatio.Normalize(v))
		if math.Abs(got-v) > 1e-12 {
			t.Fatalf("round trip %v -> %v", v, got)
		}
	}

	if got := testRatio.Denormalize(2); got != 20 {
		t.Fatalf("Denormalize(2) = %v, want 20", got)
	}

	degenerate := Descriptor{Min: 1, Max: 1}
	if got := degenerate.Normalize(1); got != 0 {
		t.Fatalf("degenerate Normalize = %v, want 0", got)
	}
}

func TestDescriptorFormat(t *testing.T) {
	if got := testRatio.Format(4); got != "4.00 :1" {
		t.Fatalf("Format = %q", got)
	}

	mix := Descriptor{Name: "mix", Min: 0, Max: 1}
	if got := mix.Format(0.5); got != "0.50" {
		t.Fatalf("Format = %q", got)
	}
}
