package reactor

import (
	"errors"
	"fmt"
	"math"
)

// MaxSamples is the fixed number of analytical samples and the upper bound
// on Euler entries (StepCount+1).
const MaxSamples = 500

type Params struct {
	FlowRate             float64 `yaml:"flow_rate" json:"flow_rate"`
	InletConcentration   float64 `yaml:"inlet_concentration" json:"inlet_concentration"`
	InitialConcentration float64 `yaml:"initial_concentration" json:"initial_concentration"`
	Volume               float64 `yaml:"volume" json:"volume"`
	FinalTime            float64 `yaml:"final_time" json:"final_time"`
	TimeStep             float64 `yaml:"time_step" json:"time_step"`
}

// StepCount is FinalTime/TimeStep truncated toward zero. Only meaningful for
// parameters that passed Validate.
func (p Params) StepCount() int {
	return int(p.FinalTime / p.TimeStep)
}

// Rate is the exponent coefficient k = -q/v of the closed-form solution.
func (p Params) Rate() float64 {
	return -(p.FlowRate / p.Volume)
}

// Concentration evaluates the closed-form solution at time t.
func (p Params) Concentration(t float64) float64 {
	e := math.Exp(p.Rate() * t)
	return p.InletConcentration*(1-e) + p.InitialConcentration*e
}

// Validate reports every field outside its range, joined into one error.
// q, cin, c0 and tf may be zero; v and dt must be strictly positive.
func (p Params) Validate() error {
	var errs []error

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"flow rate", p.FlowRate},
		{"inlet concentration", p.InletConcentration},
		{"initial concentration", p.InitialConcentration},
		{"final time", p.FinalTime},
	}
	for _, f := range nonNegative {
		if !finite(f.value) || f.value < 0 {
			errs = append(errs, &ValidationError{Field: f.name, Value: f.value, Wrapped: ErrParameterBounds})
		}
	}

	if !finite(p.Volume) || p.Volume <= 0 {
		errs = append(errs, &ValidationError{Field: "volume", Value: p.Volume, Wrapped: ErrParameterBounds})
	}
	if !finite(p.TimeStep) || p.TimeStep <= 0 {
		errs = append(errs, &ValidationError{Field: "time step", Value: p.TimeStep, Wrapped: ErrParameterBounds})
	}

	if len(errs) == 0 {
		// compared as a float so huge ratios cannot overflow the int conversion
		if ratio := p.FinalTime / p.TimeStep; ratio >= MaxSamples {
			errs = append(errs, &ValidationError{
				Field:   "step count",
				Value:   math.Floor(ratio),
				Wrapped: fmt.Errorf("%w (max %d)", ErrStepBudget, MaxSamples-1),
			})
		}
	}

	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
