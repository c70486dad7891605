package reactor

import (
	"errors"
	"math"
	"testing"
)

func textbook() Params {
	return Params{
		FlowRate:             2,
		InletConcentration:   10,
		InitialConcentration: 0,
		Volume:               5,
		FinalTime:            10,
		TimeStep:             0.5,
	}
}

func TestStepCount(t *testing.T) {
	p := textbook()
	if got := p.StepCount(); got != 20 {
		t.Errorf("expected 20 steps, got %d", got)
	}

	p.TimeStep = 3
	if got := p.StepCount(); got != 3 {
		t.Errorf("expected truncation to 3 steps, got %d", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr error
	}{
		{"textbook", func(p *Params) {}, nil},
		{"zero flow", func(p *Params) { p.FlowRate = 0 }, nil},
		{"zero final time", func(p *Params) { p.FinalTime = 0 }, nil},
		{"negative flow", func(p *Params) { p.FlowRate = -1 }, ErrParameterBounds},
		{"negative inlet", func(p *Params) { p.InletConcentration = -0.1 }, ErrParameterBounds},
		{"negative initial", func(p *Params) { p.InitialConcentration = -3 }, ErrParameterBounds},
		{"zero volume", func(p *Params) { p.Volume = 0 }, ErrParameterBounds},
		{"zero step", func(p *Params) { p.TimeStep = 0 }, ErrParameterBounds},
		{"nan volume", func(p *Params) { p.Volume = math.NaN() }, ErrParameterBounds},
		{"inf final time", func(p *Params) { p.FinalTime = math.Inf(1) }, ErrParameterBounds},
		{"last allowed step count", func(p *Params) { p.FinalTime, p.TimeStep = 499, 1 }, nil},
		{"step count at max", func(p *Params) { p.FinalTime, p.TimeStep = 500, 1 }, ErrStepBudget},
		{"huge ratio", func(p *Params) { p.FinalTime, p.TimeStep = 1e300, 1e-300 }, ErrStepBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := textbook()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	p := Params{FlowRate: -1, InletConcentration: -1, Volume: 0, TimeStep: 1}
	err := p.Validate()

	var fields []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ve *ValidationError
		if errors.As(e, &ve) {
			fields = append(fields, ve.Field)
		}
	}
	if len(fields) != 3 {
		t.Errorf("expected 3 invalid fields, got %v", fields)
	}
}

func TestConcentrationLimits(t *testing.T) {
	p := textbook()

	if got := p.Concentration(0); got != p.InitialConcentration {
		t.Errorf("c(0) = %f, want %f", got, p.InitialConcentration)
	}

	if got := p.Concentration(1e3); math.Abs(got-p.InletConcentration) > 1e-9 {
		t.Errorf("c(inf) = %f, want %f", got, p.InletConcentration)
	}
}
