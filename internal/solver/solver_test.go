package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/reactorsim/internal/dynamo"
	"github.com/san-kum/reactorsim/internal/reactor"
)

func textbook() reactor.Params {
	return reactor.Params{
		FlowRate:             2,
		InletConcentration:   10,
		InitialConcentration: 0,
		Volume:               5,
		FinalTime:            10,
		TimeStep:             0.5,
	}
}

func TestAnalyticalGrid(t *testing.T) {
	p := textbook()
	times, values := Analytical(p)

	if len(times) != reactor.MaxSamples || len(values) != reactor.MaxSamples {
		t.Fatalf("expected %d samples, got %d/%d", reactor.MaxSamples, len(times), len(values))
	}
	if times[0] != 0 {
		t.Errorf("first sample at %f, want 0", times[0])
	}
	if math.Abs(times[len(times)-1]-p.FinalTime) > 1e-12 {
		t.Errorf("last sample at %f, want %f", times[len(times)-1], p.FinalTime)
	}

	step := p.FinalTime / float64(reactor.MaxSamples-1)
	for i := 1; i < len(times); i++ {
		if math.Abs(times[i]-times[i-1]-step) > 1e-9 {
			t.Fatalf("non-uniform spacing at %d: %f", i, times[i]-times[i-1])
		}
	}
}

func TestAnalyticalApproachesInlet(t *testing.T) {
	tests := []struct {
		name string
		c0   float64
		cin  float64
	}{
		{"filling", 0, 10},
		{"flushing", 10, 0},
		{"already at inlet", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := textbook()
			p.InitialConcentration, p.InletConcentration = tt.c0, tt.cin
			p.FinalTime = 100

			_, values := Analytical(p)
			if values[0] != tt.c0 {
				t.Errorf("c(0) = %f, want %f", values[0], tt.c0)
			}
			if math.Abs(values[len(values)-1]-tt.cin) > 1e-6 {
				t.Errorf("c(tf) = %f, want ~%f", values[len(values)-1], tt.cin)
			}

			// monotonic toward cin, no oscillation
			sign := math.Copysign(1, tt.cin-tt.c0)
			for i := 1; i < len(values); i++ {
				if sign*(values[i]-values[i-1]) < -1e-12 {
					t.Fatalf("not monotonic at sample %d", i)
				}
			}
		})
	}
}

func TestEulerScenario(t *testing.T) {
	p := textbook()
	times, values := Euler(p)

	if len(values) != 21 {
		t.Fatalf("expected 21 entries, got %d", len(values))
	}
	if values[0] != 0 {
		t.Errorf("euler[0] = %f, want 0", values[0])
	}
	if values[1] != 2.0 {
		t.Errorf("euler[1] = %f, want 2.0", values[1])
	}
	if times[20] != 10 {
		t.Errorf("last euler time %f, want 10", times[20])
	}
}

func TestEulerZeroFlowIsConstant(t *testing.T) {
	p := textbook()
	p.FlowRate = 0
	p.InitialConcentration = 7.5

	_, values := Euler(p)
	for i, v := range values {
		if v != 7.5 {
			t.Fatalf("euler[%d] = %f, want 7.5", i, v)
		}
	}
}

func TestEulerMaxStepCount(t *testing.T) {
	p := textbook()
	p.FinalTime, p.TimeStep = 499, 1

	_, values := Euler(p)
	if len(values) != reactor.MaxSamples {
		t.Errorf("expected %d entries, got %d", reactor.MaxSamples, len(values))
	}
}

func TestEulerTracksAnalytical(t *testing.T) {
	p := textbook()
	p.FinalTime, p.TimeStep = 4, 0.01

	times, values := Euler(p)
	for i := range values {
		if d := math.Abs(values[i] - p.Concentration(times[i])); d > 0.05 {
			t.Fatalf("euler diverges from closed form at t=%.2f by %f", times[i], d)
		}
	}
}

func TestSolve(t *testing.T) {
	sol, err := Solve(textbook())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if sol.StepCount() != 20 {
		t.Errorf("expected 20 steps, got %d", sol.StepCount())
	}
	if len(sol.EulerTimes) != len(sol.Euler) {
		t.Errorf("euler times and values misaligned: %d vs %d", len(sol.EulerTimes), len(sol.Euler))
	}
}

func TestSolveRejectsInvalid(t *testing.T) {
	p := textbook()
	p.FinalTime, p.TimeStep = 500, 1

	if _, err := Solve(p); !errors.Is(err, reactor.ErrStepBudget) {
		t.Errorf("expected ErrStepBudget, got %v", err)
	}
}

func TestSolveRejectsOverflow(t *testing.T) {
	p := textbook()
	p.FlowRate = 1e308
	p.Volume = 1e-10

	if _, err := Solve(p); !errors.Is(err, ErrNonFinite) {
		t.Errorf("expected ErrNonFinite, got %v", err)
	}
}

func TestSolutionReset(t *testing.T) {
	sol, err := Solve(textbook())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	sol.Reset()
	for _, seq := range [][]float64{sol.Times, sol.Analytical, sol.EulerTimes, sol.Euler} {
		for i, v := range seq {
			if v != 0 {
				t.Fatalf("value %d not cleared: %f", i, v)
			}
		}
	}
}

func TestSolveReportsEulerBlowUpStep(t *testing.T) {
	p := reactor.Params{
		FlowRate:           1e300,
		InletConcentration: 1e10,
		Volume:             1,
		FinalTime:          10,
		TimeStep:           1,
	}

	_, err := Solve(p)
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}

	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected a SimulationError, got %T", err)
	}
	if simErr.Step != 1 || simErr.Time != 1 {
		t.Errorf("expected blow-up at step 1, t=1, got step %d t=%g", simErr.Step, simErr.Time)
	}
}

// holdIntegrator leaves the state unchanged and counts its steps.
type holdIntegrator struct{ steps int }

func (h *holdIntegrator) Step(_ dynamo.System, x dynamo.State, _ dynamo.Control, _, _ float64) dynamo.State {
	h.steps++
	return x.Clone()
}

func TestIntegrateStepsThroughIntegrator(t *testing.T) {
	p := textbook()
	p.InitialConcentration = 3
	h := &holdIntegrator{}

	times, values, err := integrate(p, h)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if h.steps != p.StepCount() {
		t.Errorf("integrator stepped %d times, want %d", h.steps, p.StepCount())
	}
	if len(times) != p.StepCount()+1 || times[len(times)-1] != p.FinalTime {
		t.Errorf("unexpected time grid %v", times)
	}
	for i, v := range values {
		if v != 3 {
			t.Fatalf("values[%d] = %g, want the held initial 3", i, v)
		}
	}
}
