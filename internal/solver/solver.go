package solver

import (
	"errors"
	"fmt"

	"github.com/san-kum/reactorsim/internal/dynamo"
	"github.com/san-kum/reactorsim/internal/integrators"
	"github.com/san-kum/reactorsim/internal/reactor"
)

// ErrNonFinite indicates a computed sequence overflowed to NaN or Inf.
var ErrNonFinite = errors.New("solver: non-finite concentration")

// Solution holds the sequences computed for one working parameter set.
// Analytical samples share Times; Euler samples share EulerTimes.
type Solution struct {
	Params     reactor.Params
	Times      []float64
	Analytical []float64
	EulerTimes []float64
	Euler      []float64
}

// Analytical samples the closed-form solution at MaxSamples uniform points
// over [0, FinalTime], both endpoints included.
func Analytical(p reactor.Params) (times, values []float64) {
	times = make([]float64, reactor.MaxSamples)
	values = make([]float64, reactor.MaxSamples)

	last := float64(reactor.MaxSamples - 1)
	for i := range times {
		t := float64(i) * p.FinalTime / last
		times[i] = t
		values[i] = p.Concentration(t)
	}
	return times, values
}

// Euler integrates the tank balance with the explicit first-order scheme,
// returning StepCount+1 entries starting at the initial concentration.
// The caller guarantees StepCount+1 <= MaxSamples.
func Euler(p reactor.Params) (times, values []float64) {
	times, values, _ = integrate(p, integrators.NewEuler())
	return times, values
}

// integrate runs the Euler loop and reports the first step whose state is
// no longer finite. The sequences are always filled to full length.
func integrate(p reactor.Params, integ dynamo.Integrator) (times, values []float64, err error) {
	n := p.StepCount()
	times = make([]float64, n+1)
	values = make([]float64, n+1)

	model := reactor.NewModel(p)

	x := dynamo.State{p.InitialConcentration}
	values[0] = x[0]
	for i := 0; i < n; i++ {
		t := float64(i) * p.TimeStep
		x = integ.Step(model, x, nil, t, p.TimeStep)
		times[i+1] = float64(i+1) * p.TimeStep
		values[i+1] = x[0]

		if err == nil {
			if cerr := dynamo.CheckState(model, x); cerr != nil {
				err = &dynamo.SimulationError{Step: i + 1, Time: times[i+1], State: x.Clone(), Wrapped: ErrNonFinite}
			}
		}
	}
	return times, values, err
}

// Solve validates p and runs the analytical solution followed by Euler.
func Solve(p reactor.Params) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sol := &Solution{Params: p}
	sol.Times, sol.Analytical = Analytical(p)
	if !dynamo.State(sol.Analytical).IsValid() {
		return nil, fmt.Errorf("analytical: %w", ErrNonFinite)
	}

	var err error
	sol.EulerTimes, sol.Euler, err = integrate(p, integrators.NewEuler())
	if err != nil {
		return nil, fmt.Errorf("euler: %w", err)
	}
	return sol, nil
}

func (s *Solution) StepCount() int {
	return len(s.Euler) - 1
}

// Reset zeroes every sequence so stale samples cannot be plotted again.
func (s *Solution) Reset() {
	for _, seq := range [][]float64{s.Times, s.Analytical, s.EulerTimes, s.Euler} {
		for i := range seq {
			seq[i] = 0
		}
	}
}
