package recommend

import (
	"math/rand"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name           string
		values         []float64
		want           []float64
		wantDegenerate bool
	}{
		{"ascending", []float64{10, 20, 30}, []float64{0, 0.5, 1}, false},
		{"unordered", []float64{30, 10, 20}, []float64{1, 0, 0.5}, false},
		{"negative values", []float64{-100, 0, 100}, []float64{0, 0.5, 1}, false},
		{"all equal", []float64{5, 5, 5}, []float64{0.5, 0.5, 0.5}, true},
		{"single value", []float64{42}, []float64{0.5}, true},
		{"empty", nil, []float64{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, degenerate := Normalize(tt.values)
			if degenerate != tt.wantDegenerate {
				t.Errorf("degenerate = %v, want %v", degenerate, tt.wantDegenerate)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Normalize(%v)[%d] = %v, want %v", tt.values, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		values := make([]float64, 2+rng.Intn(40))
		minIdx, maxIdx := 0, 0
		for i := range values {
			values[i] = rng.Float64()*200000 - 50000
			if values[i] < values[minIdx] {
				minIdx = i
			}
			if values[i] > values[maxIdx] {
				maxIdx = i
			}
		}

		got, degenerate := Normalize(values)
		if degenerate {
			t.Fatalf("trial %d: unexpected degenerate column", trial)
		}
		for i, v := range got {
			if v < 0 || v > 1 {
				t.Fatalf("trial %d: value[%d] = %v outside [0,1]", trial, i, v)
			}
		}
		if got[minIdx] != 0 {
			t.Errorf("trial %d: min maps to %v, want 0", trial, got[minIdx])
		}
		if got[maxIdx] != 1 {
			t.Errorf("trial %d: max maps to %v, want 1", trial, got[maxIdx])
		}
	}
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Normalize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input modified: %v", values)
	}
}
