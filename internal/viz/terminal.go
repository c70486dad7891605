package viz

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/guptarohit/asciigraph"
)

const (
	DefaultASCIIWidth  = 72
	DefaultASCIIHeight = 16
)

// TerminalRenderer plots a chart with asciigraph. Curves are resampled onto
// Width shared columns spanning the x bounds; columns outside a curve's own
// x range are left blank.
type TerminalRenderer struct {
	Out           io.Writer
	Width, Height int
}

func (r TerminalRenderer) Render(c Chart) error {
	width, height := r.Width, r.Height
	if width < 2 {
		width = DefaultASCIIWidth
	}
	if height <= 0 {
		height = DefaultASCIIHeight
	}

	data := make([][]float64, 0, len(c.Curves))
	colors := make([]asciigraph.AnsiColor, 0, len(c.Curves))
	legends := make([]string, 0, len(c.Curves))
	for _, cv := range c.Curves {
		if len(cv.X) == 0 {
			continue
		}
		data = append(data, Resample(cv.X, cv.Y, c.Bounds.XMin, c.Bounds.XMax, width))
		colors = append(colors, ansiColor(cv.Color))
		legends = append(legends, cv.Name)
	}
	if len(data) == 0 {
		return nil
	}

	plot := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.LowerBound(c.Bounds.YMin),
		asciigraph.UpperBound(c.Bounds.YMax),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(fmt.Sprintf("%s  [%s, t = %.3g..%.3g]", c.Title, c.XLabel, c.Bounds.XMin, c.Bounds.XMax)),
	)

	_, err := fmt.Fprintln(r.Out, plot)
	return err
}

// Resample linearly interpolates (xs, ys) at n evenly spaced points over
// [lo, hi]. xs must be ascending. Points outside [xs[0], xs[last]] are NaN.
func Resample(xs, ys []float64, lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if len(xs) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	last := len(xs) - 1
	span := hi - lo
	for i := range out {
		x := lo
		if n > 1 {
			x = lo + span*float64(i)/float64(n-1)
		}

		switch {
		case span <= 0 || last == 0:
			out[i] = ys[0]
		case x < xs[0] || x > xs[last]:
			out[i] = math.NaN()
		default:
			j := sort.SearchFloat64s(xs, x)
			if j == 0 {
				out[i] = ys[0]
				continue
			}
			if j > last {
				j = last
			}
			x0, x1 := xs[j-1], xs[j]
			if x1 == x0 {
				out[i] = ys[j]
				continue
			}
			w := (x - x0) / (x1 - x0)
			out[i] = ys[j-1] + w*(ys[j]-ys[j-1])
		}
	}
	return out
}

func ansiColor(c Color) asciigraph.AnsiColor {
	switch c {
	case Blue:
		return asciigraph.Blue
	default:
		return asciigraph.Red
	}
}
