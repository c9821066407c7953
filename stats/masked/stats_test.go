package masked

import (
	"math"
	"testing"
)

const tolerance = 1e-12

func almostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Abs(a-b) <= tol
}

func TestMeanStdDev(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		valid    []bool
		wantMean float64
		wantStd  float64
		wantN    int
	}{
		{
			name:     "all valid",
			values:   []float64{1, 2, 3, 4},
			wantMean: 2.5,
			wantStd:  math.Sqrt(1.25),
			wantN:    4,
		},
		{
			name:     "outlier excluded",
			values:   []float64{1, 1000, 3},
			valid:    []bool{true, false, true},
			wantMean: 2,
			wantStd:  1,
			wantN:    2,
		},
		{
			name:     "excluded NaN is never read",
			values:   []float64{math.NaN(), 5, math.Inf(1)},
			valid:    []bool{false, true, false},
			wantMean: 5,
			wantStd:  0,
			wantN:    1,
		},
		{
			name:     "nothing valid",
			values:   []float64{1, 2},
			valid:    []bool{false, false},
			wantMean: math.NaN(),
			wantStd:  math.NaN(),
			wantN:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, n := MeanStdDev(tt.values, tt.valid)
			if n != tt.wantN {
				t.Fatalf("n = %d, want %d", n, tt.wantN)
			}
			if !almostEqual(mean, tt.wantMean, tolerance) {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if !almostEqual(std, tt.wantStd, tolerance) {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
		})
	}
}

func TestMeanAndStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9, 100}
	valid := []bool{true, true, true, true, true, true, true, true, false}

	mean, n := Mean(values, valid)
	if n != 8 || !almostEqual(mean, 5, tolerance) {
		t.Fatalf("Mean = (%v, %d), want (5, 8)", mean, n)
	}

	_, std, n := MeanStdDev(values, valid)
	if n != 8 || !almostEqual(std, 2, tolerance) {
		t.Fatalf("std = (%v, %d), want (2, 8)", std, n)
	}
}

func TestAccumulatorMatchesBatch(t *testing.T) {
	values := []float64{0.3, -1.2, 4.5, 2.2, 2.2, -0.7, 9.1}

	var acc Accumulator
	for _, v := range values {
		acc.Add(v)
	}

	mean, std, _ := MeanStdDev(values, nil)
	if !almostEqual(acc.Mean(), mean, 1e-12) {
		t.Errorf("Mean = %v, want %v", acc.Mean(), mean)
	}
	if !almostEqual(acc.StdDev(), std, 1e-12) {
		t.Errorf("StdDev = %v, want %v", acc.StdDev(), std)
	}
	if acc.N() != len(values) {
		t.Errorf("N = %d, want %d", acc.N(), len(values))
	}
}

func TestAccumulatorEmptyAndReset(t *testing.T) {
	var acc Accumulator
	if !math.IsNaN(acc.Mean()) || !math.IsNaN(acc.Variance()) {
		t.Fatal("expected NaN statistics for empty accumulator")
	}

	acc.Add(3)
	acc.Add(3)
	if acc.Variance() != 0 {
		t.Fatalf("Variance = %v, want 0", acc.Variance())
	}

	acc.Reset()
	if acc.N() != 0 {
		t.Fatalf("N after Reset = %d, want 0", acc.N())
	}
}
