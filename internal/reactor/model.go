package reactor

import "github.com/san-kum/reactorsim/internal/dynamo"

// Model is the tank concentration balance as a one-dimensional system.
type Model struct {
	FlowRate           float64
	InletConcentration float64
	Volume             float64
}

func NewModel(p Params) *Model {
	return &Model{
		FlowRate:           p.FlowRate,
		InletConcentration: p.InletConcentration,
		Volume:             p.Volume,
	}
}

func (m *Model) StateDim() int {
	return 1
}

func (m *Model) ControlDim() int {
	return 0
}

func (m *Model) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	q := m.FlowRate
	return dynamo.State{(q*m.InletConcentration - q*x[0]) / m.Volume}
}
