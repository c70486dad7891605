package analysis

import (
	"fmt"

	"github.com/san-kum/reactorsim/internal/solver"
)

// Bounds is the plotting window for a solution.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// AxisBounds sizes the chart for sol. The lower bound is the analytical
// minimum; the upper bound is the analytical maximum plus one unit, raised to
// the Euler maximum when the Euler curve overshoots it.
func AxisBounds(sol *solver.Solution) (Bounds, error) {
	minC, err := Min(sol.Analytical)
	if err != nil {
		return Bounds{}, fmt.Errorf("analytical: %w", err)
	}
	maxC, err := Max(sol.Analytical)
	if err != nil {
		return Bounds{}, fmt.Errorf("analytical: %w", err)
	}
	maxC++

	hold, err := Max(sol.Euler)
	if err != nil {
		return Bounds{}, fmt.Errorf("euler: %w", err)
	}
	if hold > maxC {
		maxC = hold
	}

	return Bounds{
		XMin: 0,
		XMax: sol.Params.FinalTime,
		YMin: minC,
		YMax: maxC,
	}, nil
}
