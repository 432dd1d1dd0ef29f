// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries turns benchmark results into one series of
// measurements per benchmark label, indexed by input size, and
// renders those series as charts and tables.
package benchseries

import (
	"fmt"
	"io"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/elastic-ai/benchviz/gbench"
)

// A Point is one measurement of a series. If the input was measured
// more than once, Value is the mean and Lo and Hi bound the
// measurements; otherwise all three are equal.
type Point struct {
	Input         int
	Value, Lo, Hi float64
}

// A Series is the measurements of one benchmark label, in the order
// the inputs first appear in the results.
type Series struct {
	Label  string
	Points []Point
}

// At returns the point for input, if s has one.
func (s *Series) At(input int) (Point, bool) {
	for _, p := range s.Points {
		if p.Input == input {
			return p, true
		}
	}
	return Point{}, false
}

// A Grouping is the result of grouping benchmark results by label.
type Grouping struct {
	// Metric is the measurement the series hold.
	Metric string

	// TimeUnit is the unit of time metrics, from the first result.
	TimeUnit string

	// Transform has been applied to every value.
	Transform Transform

	// Relative is true if the values are ratios to a baseline.
	Relative bool

	Series []*Series

	// tab holds the loaded rows after the transform.
	tab *table.Table
}

// Lookup returns the series for label, or nil.
func (g *Grouping) Lookup(label string) *Series {
	for _, s := range g.Series {
		if s.Label == label {
			return s
		}
	}
	return nil
}

// Inputs returns the inputs of all series in first-appearance order.
func (g *Grouping) Inputs() []int {
	var inputs []int
	seen := make(map[int]bool)
	for _, s := range g.Series {
		for _, p := range s.Points {
			if !seen[p.Input] {
				seen[p.Input] = true
				inputs = append(inputs, p.Input)
			}
		}
	}
	return inputs
}

// Dump prints the rows g was built from to w.
func (g *Grouping) Dump(w io.Writer) error {
	return table.Fprint(w, g.tab, "%s", "%s", "%d", "%g")
}

// A MissingBaselineError is returned when the baseline label is not
// among the results.
type MissingBaselineError struct {
	Key string
}

func (e *MissingBaselineError) Error() string {
	return fmt.Sprintf("key %q is not present in the benchmark output", e.Key)
}

type BuilderOptions struct {
	// Metric selects the measurement to collect.
	Metric string

	// Transform is applied to every measurement.
	Transform Transform

	// RelativeTo, if not "", is the label of the series every
	// series is divided by.
	RelativeTo string

	// Warn reports non-fatal problems with the results. It may be
	// nil.
	Warn func(format string, args ...interface{})
}

// Build groups results by label.
//
// Results with errors and aggregates are skipped: the series are
// built from the individual measurements. Measurements of the same
// label and input are combined into one Point.
//
// If opts.RelativeTo is set, each point is divided by the baseline
// point with the same input. Points whose input the baseline lacks
// become NaN.
func Build(results []*gbench.Result, opts BuilderOptions) (*Grouping, error) {
	warn := opts.Warn
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}

	var names, labels []string
	var inputs []int
	var values []float64
	timeUnit := ""
	threads := 0
	for _, r := range results {
		if r.ErrorOccurred {
			warn("%s: skipping failed benchmark: %s\n", r.Name, r.ErrorMessage)
			continue
		}
		if r.IsAggregate() {
			continue
		}
		if timeUnit == "" {
			timeUnit = r.TimeUnit
		} else if r.TimeUnit != "" && r.TimeUnit != timeUnit {
			warn("%s: time unit %s differs from %s\n", r.Name, r.TimeUnit, timeUnit)
		}
		if threads == 0 {
			threads = r.Threads
		} else if r.Threads != 0 && r.Threads != threads {
			warn("%s: ran on %d threads, not %d; results are combined by label and input only\n", r.Name, r.Threads, threads)
		}
		names = append(names, r.Name)
		labels = append(labels, r.Label)
		inputs = append(inputs, r.Input)
		values = append(values, opts.Transform.Apply(r.Value(opts.Metric)))
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no benchmark results")
	}

	tab := new(table.Builder).
		Add("name", names).
		Add("label", labels).
		Add("input", inputs).
		Add(opts.Metric, values).
		Done()

	g := &Grouping{Metric: opts.Metric, TimeUnit: timeUnit, Transform: opts.Transform, tab: tab}
	groups := table.GroupBy(tab, "label")
	for _, gid := range groups.Tables() {
		t := groups.Table(gid)
		s := &Series{Label: gid.Label().(string)}
		s.Points = collapse(t.MustColumn("input").([]int), t.MustColumn(opts.Metric).([]float64))
		g.Series = append(g.Series, s)
	}

	if opts.RelativeTo != "" {
		if err := g.relativeTo(opts.RelativeTo, warn); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// collapse combines the values measured for each input.
func collapse(inputs []int, values []float64) []Point {
	var order []int
	byInput := make(map[int][]float64)
	for i, in := range inputs {
		if _, ok := byInput[in]; !ok {
			order = append(order, in)
		}
		byInput[in] = append(byInput[in], values[i])
	}

	points := make([]Point, 0, len(order))
	for _, in := range order {
		vs := byInput[in]
		if len(vs) == 1 {
			points = append(points, Point{in, vs[0], vs[0], vs[0]})
			continue
		}
		lo, hi := stats.Bounds(vs)
		points = append(points, Point{in, stats.Mean(vs), lo, hi})
	}
	return points
}

// relativeTo divides every series in g by the series labeled base.
func (g *Grouping) relativeTo(base string, warn func(string, ...interface{})) error {
	bs := g.Lookup(base)
	if bs == nil {
		return &MissingBaselineError{base}
	}
	// Copy the baseline, since it is divided by itself too.
	denom := make(map[int]float64, len(bs.Points))
	for _, p := range bs.Points {
		denom[p.Input] = p.Value
	}

	nan := math.NaN()
	for _, s := range g.Series {
		for i := range s.Points {
			p := &s.Points[i]
			d, ok := denom[p.Input]
			if !ok {
				warn("%s/%d: no %s result with input %d\n", s.Label, p.Input, base, p.Input)
				p.Value, p.Lo, p.Hi = nan, nan, nan
				continue
			}
			p.Value /= d
			p.Lo /= d
			p.Hi /= d
		}
	}
	g.Relative = true
	return nil
}
