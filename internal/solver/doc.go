// Package solver computes the reactor concentration curves.
//
// [Analytical] samples the closed form on a fixed grid of
// [reactor.MaxSamples] points; [Euler] steps the model with the explicit
// first-order integrator for StepCount steps. [Solve] runs both on a
// validated parameter set and returns a [Solution] owned by the caller.
package solver
