// Package viz draws transient-response charts and styles console output.
//
// A [Chart] is built once per run by [TransientChart] and handed to any
// number of renderers:
//
//   - [ImageRenderer]: PNG or SVG file through go-chart
//   - [TerminalRenderer]: colored asciigraph plot on a writer
//   - [Renderers]: fan-out over several renderers
//
// Console text goes through the lipgloss styles in this package, which
// follow the theme chosen with [SetTheme]. [SlotPicker] is a small Bubble
// Tea program for choosing a stored data set.
//
// # Key Bindings
//
//	j/k   - Move between slots
//	1-5   - Jump to a slot
//	Enter - Pick the highlighted slot
//	q     - Quit without picking
package viz
