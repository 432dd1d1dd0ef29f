// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/elastic-ai/benchviz/benchunit"
	"github.com/elastic-ai/benchviz/internal/texttab"
)

// cells lays g out with one row per input and one column per series.
// Missing points are reported as ok == false.
func (g *Grouping) cells(f func(row, col int, p Point, ok bool)) []int {
	inputs := g.Inputs()
	for row, in := range inputs {
		for col, s := range g.Series {
			p, ok := s.At(in)
			f(row, col, p, ok)
		}
	}
	return inputs
}

// WriteCSV writes g to out as CSV, with a column of inputs followed
// by one column of values per series. Missing points are empty.
func (g *Grouping) WriteCSV(out io.Writer) error {
	hdr := []string{"input"}
	for _, s := range g.Series {
		hdr = append(hdr, s.Label)
	}
	tab := [][]string{hdr}

	inputs := g.Inputs()
	for _, in := range inputs {
		tab = append(tab, []string{strconv.Itoa(in)})
	}
	g.cells(func(row, col int, p Point, ok bool) {
		v := ""
		if ok {
			v = strconv.FormatFloat(p.Value, 'g', -1, 64)
		}
		tab[row+1] = append(tab[row+1], v)
	})

	return csv.NewWriter(out).WriteAll(tab)
}

// WriteText writes g to out as a text table under the heading title.
//
// Plain measurements are shown in their base unit with an SI or
// binary prefix. Transformed and relative values have no unit.
func (g *Grouping) WriteText(out io.Writer, title string) error {
	plain := !g.Relative && g.Transform == Identity
	unit := ""
	if plain {
		unit = benchunit.Unit(g.Metric)
	}
	format := func(v float64) string {
		switch {
		case math.IsNaN(v):
			return "NaN"
		case g.Relative:
			return strconv.FormatFloat(v, 'f', 3, 64)
		case plain:
			v, _ = benchunit.Tidy(v, g.Metric, g.TimeUnit)
		}
		return benchunit.Scale(v, benchunit.ClassOf(unit))
	}

	if unit != "" {
		title += " (" + unit + ")"
	}
	if title != "" {
		if _, err := fmt.Fprintln(out, title); err != nil {
			return err
		}
	}

	var tab texttab.Table
	tab.Row().Cell("input", texttab.Left)
	for _, s := range g.Series {
		tab.Cell(s.Label, texttab.Right)
	}
	rows := make([][]string, len(g.Inputs()))
	inputs := g.cells(func(row, col int, p Point, ok bool) {
		v := "-"
		if ok {
			v = format(p.Value)
		}
		rows[row] = append(rows[row], v)
	})
	for i, in := range inputs {
		tab.Row().Cell(strconv.Itoa(in), texttab.Left)
		for _, v := range rows[i] {
			tab.Cell(v, texttab.Right)
		}
	}
	return tab.Format(out)
}
