// Package session runs the interactive transient-response workflow: pick a
// parameter set, solve it, draw it and optionally store it in a slot.
package session
