package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/solver"
)

func solve(t *testing.T, p reactor.Params) *solver.Solution {
	t.Helper()
	sol, err := solver.Solve(p)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return sol
}

func TestAxisBoundsFilling(t *testing.T) {
	p := reactor.Params{FlowRate: 2, InletConcentration: 10, Volume: 5, FinalTime: 10, TimeStep: 0.5}
	sol := solve(t, p)

	b, err := AxisBounds(sol)
	if err != nil {
		t.Fatalf("AxisBounds: %v", err)
	}

	if b.XMin != 0 || b.XMax != 10 {
		t.Errorf("x range = [%v, %v], want [0, 10]", b.XMin, b.XMax)
	}
	if b.YMin != 0 {
		t.Errorf("YMin = %v, want analytical minimum 0", b.YMin)
	}
	wantMax, _ := Max(sol.Analytical)
	if b.YMax != wantMax+1 {
		t.Errorf("YMax = %v, want %v", b.YMax, wantMax+1)
	}
}

func TestAxisBoundsEulerOvershoot(t *testing.T) {
	// q*dt/v = 1.5 makes Euler overshoot cin on the first step
	p := reactor.Params{FlowRate: 3, InletConcentration: 10, Volume: 1, FinalTime: 5, TimeStep: 0.5}
	sol := solve(t, p)

	b, err := AxisBounds(sol)
	if err != nil {
		t.Fatalf("AxisBounds: %v", err)
	}

	eulerMax, _ := Max(sol.Euler)
	if eulerMax != 15 {
		t.Fatalf("expected Euler peak 15, got %v", eulerMax)
	}
	if b.YMax != eulerMax {
		t.Errorf("YMax = %v, want Euler max %v", b.YMax, eulerMax)
	}
}

func TestCompare(t *testing.T) {
	p := reactor.Params{FlowRate: 2, InletConcentration: 10, Volume: 5, FinalTime: 10, TimeStep: 0.5}
	sol := solve(t, p)

	stats := Compare(sol)
	if stats.Samples != 21 {
		t.Errorf("expected 21 samples, got %d", stats.Samples)
	}
	if stats.MaxAbs <= 0 {
		t.Error("expected nonzero Euler error for dt = 0.5")
	}
	if stats.RMS > stats.MaxAbs {
		t.Errorf("RMS %v exceeds max %v", stats.RMS, stats.MaxAbs)
	}

	// forward Euler overshoots toward cin faster than the exponential here
	if stats.Final <= 0 {
		t.Errorf("expected positive final error, got %v", stats.Final)
	}
}

func TestCompareShrinksWithStep(t *testing.T) {
	p := reactor.Params{FlowRate: 2, InletConcentration: 10, Volume: 5, FinalTime: 10, TimeStep: 0.5}
	coarse := Compare(solve(t, p))

	p.TimeStep = 0.05
	fine := Compare(solve(t, p))

	if !(fine.MaxAbs < coarse.MaxAbs) {
		t.Errorf("expected smaller error with smaller step: %v vs %v", fine.MaxAbs, coarse.MaxAbs)
	}
	if math.IsNaN(fine.RMS) {
		t.Error("RMS is NaN")
	}
}
