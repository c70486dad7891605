// Package reactor models a continuously-stirred tank reactor with constant
// volumetric flow in and out.
//
// The concentration c in the tank obeys the first-order linear ODE
//
//	dc/dt = (q/v) * (cin - c)
//
// with the closed-form solution
//
//	c(t) = cin*(1 - e^(k*t)) + c0*e^(k*t),  k = -q/v
//
// [Params] carries the six physical inputs, [Model] exposes the right-hand
// side as a [dynamo.System] so it can be stepped by an integrator.
package reactor
