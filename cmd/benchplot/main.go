// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot runs a Google Benchmark binary and plots its results.
//
// Usage:
//
//	benchplot [flags]
//
// Benchplot runs the benchmark binary given by -bench so that it
// writes its results to the file given by -i, then reads that file and
// draws one line per benchmark. Benchmarks named "Label/size" are
// grouped by Label, with size on the x axis and the metric selected by
// -m on the y axis. Use "-s true" to plot an existing result file
// without running the benchmark.
//
// The -t flag transforms every value before it is plotted. The only
// transform is "inverse", which plots 1/value, for example to turn a
// time per operation into a rate.
//
// The -r flag divides every series by the series of the given label,
// matching points by size. Sizes the baseline lacks are left out of
// the chart.
//
// If -output is given, the chart is written to that file in the
// format its extension names (.png, .svg, .pdf, .eps, .jpg or .tif).
// Otherwise the chart is opened in the system image viewer.
//
// With -table, benchplot prints a table with one row per size and one
// column per label instead of a chart. If -output ends in .csv the
// table is written as CSV.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/elastic-ai/benchviz/benchseries"
	"github.com/elastic-ai/benchviz/gbench"
	"github.com/elastic-ai/benchviz/internal/runner"
)

// errUsage is returned for bad command lines. The usage message has
// already been printed.
var errUsage = errors.New("usage error")

type config struct {
	metric     string
	skip       string
	transform  string
	relativeTo string
	xlabel     string
	ylabel     string
	title      string
	logx, logy bool
	output     string

	input         string
	bench         string
	table         bool
	verbose       bool
	width, height float64
}

func newFlagSet(cfg *config, wErr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("benchplot", flag.ContinueOnError)
	fs.SetOutput(wErr)
	fs.Usage = func() {
		fmt.Fprintf(wErr, "usage: benchplot [flags]\n")
		fmt.Fprintf(wErr, "flags:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.metric, "m", gbench.Metrics[0], "`metric` to plot on the y axis: "+strings.Join(gbench.Metrics, ", "))
	fs.StringVar(&cfg.skip, "s", "false", "skip running the benchmark: true or false")
	fs.StringVar(&cfg.transform, "t", "", "`transform` to apply to the metric: \"\" or inverse")
	fs.StringVar(&cfg.relativeTo, "r", "", "plot every series relative to the series with this `label`")
	fs.StringVar(&cfg.xlabel, "xlabel", "input size", "x axis `label`")
	fs.StringVar(&cfg.ylabel, "ylabel", "", "y axis `label` (default from -m, -t and -r)")
	fs.StringVar(&cfg.title, "title", "", "chart `title`")
	fs.BoolVar(&cfg.logx, "logx", false, "use a logarithmic x axis")
	fs.BoolVar(&cfg.logy, "logy", false, "use a logarithmic y axis")
	fs.StringVar(&cfg.output, "output", "", "write the chart to `file` instead of displaying it")

	fs.StringVar(&cfg.input, "i", "benchmark_in_one.json", "benchmark result `file` (.json or .csv)")
	fs.StringVar(&cfg.bench, "bench", "./benchmark/distance/benchmark_in_one", "benchmark binary `path`")
	fs.BoolVar(&cfg.table, "table", false, "print a table instead of a chart")
	fs.BoolVar(&cfg.verbose, "v", false, "print the loaded results to stderr")
	fs.Float64Var(&cfg.width, "width", 8, "chart width in `inches`")
	fs.Float64Var(&cfg.height, "height", 5, "chart height in `inches`")
	return fs
}

func main() {
	log.SetPrefix("benchplot: ")
	log.SetFlags(0)
	if err := benchplot(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if err == errUsage {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func benchplot(w, wErr io.Writer, args []string) error {
	var cfg config
	fs := newFlagSet(&cfg, wErr)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(wErr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return errUsage
	}
	transform, err := cfg.validate()
	if err != nil {
		fmt.Fprintln(wErr, err)
		fs.Usage()
		return errUsage
	}

	l := log.New(wErr, "benchplot: ", 0)

	r := &runner.Runner{
		Bench:  cfg.bench,
		Skip:   cfg.skip == "true",
		Stdout: w,
		Stderr: wErr,
		Logf:   l.Printf,
	}
	if err := r.Run(context.Background(), cfg.input); err != nil {
		return err
	}

	results, err := gbench.ReadFile(cfg.input, cfg.metric)
	if err != nil {
		var serr *gbench.SyntaxError
		if errors.As(err, &serr) {
			return fmt.Errorf("%w\nDid you forget \"--benchmark_format=[csv|json]\" when running the benchmark?", err)
		}
		return err
	}

	g, err := benchseries.Build(results, benchseries.BuilderOptions{
		Metric:     cfg.metric,
		Transform:  transform,
		RelativeTo: cfg.relativeTo,
		Warn:       l.Printf,
	})
	if err != nil {
		return err
	}
	if cfg.verbose {
		if err := g.Dump(wErr); err != nil {
			return err
		}
	}

	ylabel := cfg.ylabel
	if ylabel == "" {
		ylabel = defaultYLabel(cfg.metric, transform, cfg.relativeTo)
	}

	if cfg.table {
		heading := ylabel
		if cfg.title != "" {
			heading = cfg.title + ": " + ylabel
		}
		return writeTable(w, g, heading, cfg.output)
	}

	p, err := benchseries.Chart(g, benchseries.ChartOptions{
		Title:  cfg.title,
		XLabel: cfg.xlabel,
		YLabel: ylabel,
		LogX:   cfg.logx,
		LogY:   cfg.logy,
		Warn:   l.Printf,
	})
	if err != nil {
		return err
	}
	width, height := vg.Length(cfg.width)*vg.Inch, vg.Length(cfg.height)*vg.Inch
	if cfg.output == "" {
		return display(p, width, height, l)
	}

	format, err := benchseries.FormatOf(cfg.output)
	if err != nil {
		return err
	}
	f, err := os.Create(cfg.output)
	if err != nil {
		return err
	}
	if err := benchseries.WriteChart(f, p, width, height, format); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", cfg.output, err)
	}
	return f.Close()
}

// validate checks the flags that take one of a fixed set of values and
// returns the selected transform.
func (cfg *config) validate() (benchseries.Transform, error) {
	if !gbench.IsMetric(cfg.metric) {
		return "", fmt.Errorf("invalid -m %q: must be one of %s", cfg.metric, strings.Join(gbench.Metrics, ", "))
	}
	if cfg.skip != "true" && cfg.skip != "false" {
		return "", fmt.Errorf("invalid -s %q: must be true or false", cfg.skip)
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return "", fmt.Errorf("invalid chart size %vx%v", cfg.width, cfg.height)
	}
	transform, err := benchseries.ParseTransform(cfg.transform)
	if err != nil {
		return "", fmt.Errorf("invalid -t: %w", err)
	}
	return transform, nil
}

// defaultYLabel describes the values plotted for metric after
// transform, relative to the series relativeTo if it is not "".
func defaultYLabel(metric string, transform benchseries.Transform, relativeTo string) string {
	label := transform.Label(metric)
	if relativeTo != "" {
		label += " relative to " + relativeTo
	}
	return label
}

// writeTable writes g as a table to output, or to w if output is "".
func writeTable(w io.Writer, g *benchseries.Grouping, heading, output string) error {
	if output == "" {
		return g.WriteText(w, heading)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if strings.HasSuffix(output, ".csv") {
		err = g.WriteCSV(f)
	} else {
		err = g.WriteText(f, heading)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return f.Close()
}
