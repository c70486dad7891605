// Package analysis post-processes reactor solutions.
//
//   - [Min], [Max]: single-pass extrema over a series
//   - [AxisBounds]: chart window for a [solver.Solution]
//   - [Compare]: Euler error against the closed form
//
// # Example
//
//	b, err := analysis.AxisBounds(sol)
//	stats := analysis.Compare(sol)
//	fmt.Printf("max |euler - exact| = %.4g at t=%.2f\n", stats.MaxAbs, stats.MaxAt)
package analysis
