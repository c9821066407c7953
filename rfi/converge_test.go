package rfi

import (
	"errors"
	"testing"
)

func TestConvergeStopsAtFixedPoint(t *testing.T) {
	deltas := []int{3, 1, 0, 5}

	res := Converge(10, func(iter int) int { return deltas[iter] })

	if res.Iterations != 3 {
		t.Fatalf("Iterations = %d, want 3", res.Iterations)
	}
	if res.Flagged != 4 {
		t.Fatalf("Flagged = %d, want 4", res.Flagged)
	}
	if !res.Converged || res.Err != nil {
		t.Fatalf("expected convergence, got %+v", res)
	}
}

func TestConvergeHitsCap(t *testing.T) {
	calls := 0
	res := Converge(4, func(int) int {
		calls++
		return 1 // oscillating detector never settles
	})

	if calls != 4 || res.Iterations != 4 {
		t.Fatalf("calls = %d, Iterations = %d, want 4", calls, res.Iterations)
	}
	if res.Converged {
		t.Fatal("Converged = true, want false")
	}
	if !errors.Is(res.Err, ErrConvergenceExceeded) {
		t.Fatalf("Err = %v, want ErrConvergenceExceeded", res.Err)
	}
}

func TestConvergeFixedPointOnLastAllowedPass(t *testing.T) {
	res := Converge(2, func(iter int) int { return 1 - iter })

	if !res.Converged || res.Err != nil {
		t.Fatalf("expected convergence on the final pass, got %+v", res)
	}
}
