package viz

import (
	"github.com/san-kum/reactorsim/internal/analysis"
	"github.com/san-kum/reactorsim/internal/solver"
)

// Color names the curve colors every renderer knows how to draw.
type Color int

const (
	Red Color = iota
	Blue
)

// Curve is one line of a chart, with its own x samples.
type Curve struct {
	Name   string
	X, Y   []float64
	Color  Color
	Dashed bool
}

// Annotation is a text label placed at data coordinates.
type Annotation struct {
	X, Y  float64
	Label string
}

// Chart is a renderer-independent description of a line plot.
type Chart struct {
	Title       string
	XLabel      string
	YLabel      string
	Bounds      analysis.Bounds
	Curves      []Curve
	Annotations []Annotation
}

const (
	transientTitle = "Plot of Transient Response of a Simple Reactor"
	timeLabel      = "Time (minutes)"
	concLabel      = "Concentration(mg/m^3)"
)

// TransientChart plots the closed-form curve in solid red and the Euler
// curve in dashed blue, each labelled near the top left of the window.
func TransientChart(sol *solver.Solution, b analysis.Bounds) Chart {
	tf := sol.Params.FinalTime
	return Chart{
		Title:  transientTitle,
		XLabel: timeLabel,
		YLabel: concLabel,
		Bounds: b,
		Curves: []Curve{
			{Name: "Analytical", X: sol.Times, Y: sol.Analytical, Color: Red},
			{Name: "Euler", X: sol.EulerTimes, Y: sol.Euler, Color: Blue, Dashed: true},
		},
		Annotations: []Annotation{
			{X: 0.1 * tf, Y: 0.9 * b.YMax, Label: "Analytical"},
			{X: 0.3 * tf, Y: 0.9 * b.YMax, Label: "Euler"},
		},
	}
}

// Renderer draws a chart to some output.
type Renderer interface {
	Render(Chart) error
}

// Renderers fans a chart out to several renderers, stopping at the first
// failure.
type Renderers []Renderer

func (rs Renderers) Render(c Chart) error {
	for _, r := range rs {
		if err := r.Render(c); err != nil {
			return err
		}
	}
	return nil
}
