package tracker

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Smooth returns the moving average of data over a trailing window.
// The first window-1 elements average over all preceding elements.
func Smooth(data []float64, window int) []float64 {
	if window <= 1 {
		return append([]float64(nil), data...)
	}

	smoothed := make([]float64, len(data))
	for i := range data {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		smoothed[i] = stat.Mean(data[start:i+1], nil)
	}
	return smoothed
}

// Plot saves a line plot of each named series of per-episode data to
// filename. Each series is smoothed over window episodes. The image
// format is determined by the file extension.
func Plot(filename, title, yLabel string, series map[string][]float64,
	window int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = yLabel

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []interface{}
	for _, name := range names {
		data := Smooth(series[name], window)
		pts := make(plotter.XYs, len(data))
		for i, y := range data {
			pts[i].X = float64(i)
			pts[i].Y = y
		}
		lines = append(lines, name, pts)
	}

	if err := plotutil.AddLines(p, lines...); err != nil {
		return errors.Wrap(err, "plot: could not create lines")
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "plot: could not save plot to %v", filename)
	}
	return nil
}
