// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gbench reads the result files written by Google Benchmark
// binaries when run with --benchmark_out and --benchmark_format.
//
// Both output formats are supported. A JSON file is an object with a
// "context" member describing the machine and a "benchmarks" array
// with one element per result. A CSV file has a header row naming
// the columns, followed by one row per result.
//
// Each result has a name of the form "Label/input[/more...]". The
// label groups results that belong to the same benchmark function and
// the input is the first argument the benchmark was registered with.
// Results without an argument have input 1.
package gbench

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Metrics lists the measurement columns every Google Benchmark result
// carries, in the order they are offered to users.
var Metrics = []string{
	"real_time",
	"cpu_time",
	"bytes_per_second",
	"items_per_second",
	"iterations",
}

// IsMetric reports whether name is one of Metrics.
func IsMetric(name string) bool {
	for _, m := range Metrics {
		if m == name {
			return true
		}
	}
	return false
}

// Run types reported by Google Benchmark.
const (
	RunIteration = "iteration"
	RunAggregate = "aggregate"
)

// A Result is a single benchmark result from a result file.
type Result struct {
	// Name is the full benchmark name, such as "BM_Angle/128".
	Name string

	// RunName is the name of the run this result belongs to. For
	// aggregates it omits the aggregate suffix, so "BM_Angle/128"
	// for a result named "BM_Angle/128_mean". It equals Name for
	// iteration results.
	RunName string

	// RunType is RunIteration or RunAggregate.
	RunType string

	// AggregateName is "mean", "median", "stddev", etc. for
	// aggregate results and "" otherwise.
	AggregateName string

	// Threads is the number of threads the benchmark ran on, or 0
	// if the file doesn't say.
	Threads int

	// TimeUnit is the unit of real_time and cpu_time: "ns", "us",
	// "ms" or "s".
	TimeUnit string

	ErrorOccurred bool
	ErrorMessage  string

	// Values maps metric names to measurements. In addition to
	// Metrics, JSON results carry user counters here.
	Values map[string]float64

	// Label and Input are derived from RunName by ParseName.
	Label string
	Input int

	// Line is the position of this result in its file: the line
	// number for CSV files and the index in the benchmarks array
	// for JSON files.
	Line int
}

// Value returns the value of metric, or NaN if r does not have that
// metric.
func (r *Result) Value(metric string) float64 {
	if v, ok := r.Values[metric]; ok {
		return v
	}
	return math.NaN()
}

// IsAggregate reports whether r summarizes repetitions of another
// result rather than being a measurement itself.
func (r *Result) IsAggregate() bool {
	return r.RunType == RunAggregate
}

// runModifiers are the name components Google Benchmark adds for
// run options rather than arguments, as in "BM_X/threads:4" or
// "BM_X/real_time".
var runModifiers = map[string]bool{
	"iterations":      true,
	"repeats":         true,
	"min_time":        true,
	"min_warmup_time": true,
	"threads":         true,
	"real_time":       true,
	"manual_time":     true,
	"process_time":    true,
}

// ParseName splits a benchmark name into its label and input size.
// The label is everything before the first "/". The input is the
// integer between the first and second "/", or 1 if name has no "/"
// or the benchmark has no arguments. A named argument such as
// "size:8" has input 8.
func ParseName(name string) (label string, input int, err error) {
	label, rest, ok := strings.Cut(name, "/")
	if !ok {
		return label, 1, nil
	}
	arg, _, _ := strings.Cut(rest, "/")
	key, val, named := strings.Cut(arg, ":")
	if runModifiers[key] {
		return label, 1, nil
	}
	if named {
		arg = val
	}
	input, err = strconv.Atoi(arg)
	if err != nil {
		return label, 0, fmt.Errorf("benchmark %q: input size %q is not an integer", name, arg)
	}
	return label, input, nil
}

// aggregateSuffixes are the statistics Google Benchmark appends to
// run names when --benchmark_repetitions is used.
var aggregateSuffixes = []string{"mean", "median", "stddev", "cv"}

// splitAggregate recognizes aggregate names like "BM_X/8_mean" in
// formats that don't record the run type.
func splitAggregate(name string) (runName, aggregate string) {
	for _, s := range aggregateSuffixes {
		if strings.HasSuffix(name, "_"+s) {
			return name[:len(name)-len(s)-1], s
		}
	}
	return name, ""
}
