// Package console reads reactor parameters and slot choices from a terminal.
package console
