package analysis

import (
	"math"

	"github.com/san-kum/reactorsim/internal/solver"
)

// ErrorStats summarizes how far the Euler curve strays from the closed form,
// measured at the Euler nodes.
type ErrorStats struct {
	Samples int
	MaxAbs  float64
	MaxAt   float64
	MaxRel  float64
	RMS     float64
	Final   float64
}

// Compare evaluates the closed form at every Euler node of sol.
func Compare(sol *solver.Solution) ErrorStats {
	stats := ErrorStats{Samples: len(sol.Euler)}
	if stats.Samples == 0 {
		return stats
	}

	sumSq := 0.0
	for i, e := range sol.Euler {
		t := sol.EulerTimes[i]
		exact := sol.Params.Concentration(t)
		d := math.Abs(e - exact)

		sumSq += d * d
		if d > stats.MaxAbs {
			stats.MaxAbs = d
			stats.MaxAt = t
		}
		if exact != 0 {
			if r := d / math.Abs(exact); r > stats.MaxRel {
				stats.MaxRel = r
			}
		}
	}

	stats.RMS = math.Sqrt(sumSq / float64(stats.Samples))
	last := len(sol.Euler) - 1
	stats.Final = sol.Euler[last] - sol.Params.Concentration(sol.EulerTimes[last])
	return stats
}
