// Package dynamo provides the numeric primitives shared by the reactor model
// and its integrator.
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: single-step numerical integrator interface
//
// # Example
//
//	model := reactor.NewModel(p)
//	integ := integrators.NewEuler()
//	x := integ.Step(model, dynamo.State{p.InitialConcentration}, nil, 0, p.TimeStep)
package dynamo
