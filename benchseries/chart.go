// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ChartOptions controls the appearance of a chart.
type ChartOptions struct {
	Title, XLabel, YLabel string

	// LogX and LogY select logarithmic axes. All plotted values
	// on a logarithmic axis must be positive.
	LogX, LogY bool

	// Warn reports points that cannot be plotted. It may be nil.
	Warn func(format string, args ...interface{})
}

// errorPoints is a series with the spread of its repetitions.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Chart draws one line per series of g, with the input size on the x
// axis and the metric on the y axis.
//
// NaN and infinite points are left out. A series with no points left
// is left out entirely.
func Chart(g *Grouping, opts ChartOptions) (*plot.Plot, error) {
	warn := opts.Warn
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	if opts.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = decades{}
	}
	if opts.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = decades{}
	}
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{0xe0}
	grid.Horizontal.Color = color.Gray{0xe0}
	p.Add(grid)

	plotted := 0
	for i, s := range g.Series {
		var pts errorPoints
		spread := false
		for _, pt := range s.Points {
			if math.IsNaN(pt.Value) || math.IsInf(pt.Value, 0) {
				warn("%s/%d: cannot plot %v\n", s.Label, pt.Input, pt.Value)
				continue
			}
			x := float64(pt.Input)
			if opts.LogX && x <= 0 {
				return nil, fmt.Errorf("%s/%d: input %d cannot be plotted on a log scale", s.Label, pt.Input, pt.Input)
			}
			if opts.LogY && pt.Lo <= 0 {
				return nil, fmt.Errorf("%s/%d: value %v cannot be plotted on a log scale", s.Label, pt.Input, pt.Lo)
			}
			pts.XYs = append(pts.XYs, plotter.XY{X: x, Y: pt.Value})
			pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{pt.Value - pt.Lo, pt.Hi - pt.Value})
			if pt.Lo != pt.Hi {
				spread = true
			}
		}
		if len(pts.XYs) == 0 {
			warn("%s: no points to plot\n", s.Label)
			continue
		}

		clr := plotutil.Color(i)
		line, points, err := plotter.NewLinePoints(pts.XYs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Label, err)
		}
		line.Color = clr
		points.Color = clr
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(s.Label, line, points)

		if spread {
			bars, err := plotter.NewYErrorBars(pts)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.Label, err)
			}
			bars.Color = clr
			p.Add(bars)
		}
		plotted++
	}
	if plotted == 0 {
		return nil, fmt.Errorf("no plottable points")
	}
	// A degenerate range would be widened by ±1 when drawn, which
	// can reach zero on a log axis.
	if opts.LogX && p.X.Min == p.X.Max {
		p.X.Min, p.X.Max = p.X.Min/2, p.X.Max*2
	}
	if opts.LogY && p.Y.Min == p.Y.Max {
		p.Y.Min, p.Y.Max = p.Y.Min/2, p.Y.Max*2
	}
	return p, nil
}

// Formats lists the image formats charts can be written in, by file
// extension.
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// FormatOf returns the image format for a chart written to path.
func FormatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range Formats {
		if f == ext {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported chart format %q (want one of %s)", filepath.Ext(path), strings.Join(Formats, ", "))
}

// WriteChart renders p with the given size and format to w.
func WriteChart(w io.Writer, p *plot.Plot, width, height vg.Length, format string) error {
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// decades places major ticks at powers of ten and unlabeled minor
// ticks at their multiples.
type decades struct{}

func (decades) Ticks(min, max float64) []plot.Tick {
	if min <= 0 || max <= 0 || min > max {
		return nil
	}
	lo := math.Floor(math.Log10(min))
	hi := math.Ceil(math.Log10(max))
	var ticks []plot.Tick
	for e := lo; e <= hi; e++ {
		base := math.Pow(10, e)
		if base >= min && base <= max {
			ticks = append(ticks, plot.Tick{Value: base, Label: strconv.FormatFloat(base, 'g', -1, 64)})
		}
		for k := 2.0; k < 10; k++ {
			v := k * base
			if v >= min && v <= max {
				ticks = append(ticks, plot.Tick{Value: v})
			}
		}
	}
	if countLabeled(ticks) < 2 {
		// The range is within a decade. Label the end points so
		// the axis has a scale.
		ticks = append(ticks,
			plot.Tick{Value: min, Label: strconv.FormatFloat(min, 'g', 3, 64)},
			plot.Tick{Value: max, Label: strconv.FormatFloat(max, 'g', 3, 64)})
	}
	return ticks
}

func countLabeled(ticks []plot.Tick) int {
	n := 0
	for _, t := range ticks {
		if t.Label != "" {
			n++
		}
	}
	return n
}
