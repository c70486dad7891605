package viz

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultImageWidth  = 1024
	DefaultImageHeight = 640
)

// ImageRenderer writes a chart to Path as PNG, or as SVG when Path ends in
// ".svg".
type ImageRenderer struct {
	Path          string
	Width, Height int
}

func (r ImageRenderer) Render(c Chart) error {
	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := r.Encode(f, c); err != nil {
		return fmt.Errorf("render %s: %w", r.Path, err)
	}
	return f.Close()
}

// Encode renders c in the format implied by Path.
func (r ImageRenderer) Encode(w io.Writer, c Chart) error {
	provider := chart.PNG
	if strings.EqualFold(filepath.Ext(r.Path), ".svg") {
		provider = chart.SVG
	}

	graph := r.build(c)
	return graph.Render(provider, w)
}

func (r ImageRenderer) build(c Chart) chart.Chart {
	width, height := r.Width, r.Height
	if width <= 0 {
		width = DefaultImageWidth
	}
	if height <= 0 {
		height = DefaultImageHeight
	}

	b := c.Bounds
	// go-chart refuses a zero-width range
	if b.XMax <= b.XMin {
		b.XMax = b.XMin + 1
	}
	if b.YMax <= b.YMin {
		b.YMax = b.YMin + 1
	}

	series := make([]chart.Series, 0, len(c.Curves)+1)
	for _, cv := range c.Curves {
		style := chart.Style{
			StrokeColor: strokeColor(cv.Color),
			StrokeWidth: 2,
		}
		if cv.Dashed {
			style.StrokeDashArray = []float64{10, 6}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    cv.Name,
			XValues: cv.X,
			YValues: cv.Y,
			Style:   style,
		})
	}

	if len(c.Annotations) > 0 {
		values := make([]chart.Value2, len(c.Annotations))
		for i, a := range c.Annotations {
			values[i] = chart.Value2{XValue: a.X, YValue: a.Y, Label: a.Label}
		}
		series = append(series, chart.AnnotationSeries{Annotations: values})
	}

	graph := chart.Chart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: b.XMin, Max: b.XMax},
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: b.YMin, Max: b.YMax},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

func strokeColor(c Color) drawing.Color {
	switch c {
	case Blue:
		return chart.ColorBlue
	default:
		return chart.ColorRed
	}
}
