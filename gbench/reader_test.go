// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gbench

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// summary is the part of a Result the tests compare.
type summary struct {
	Label string
	Input int
	Value float64
}

func summarize(rs []*Result, metric string) []summary {
	var out []summary
	for _, r := range rs {
		out = append(out, summary{r.Label, r.Input, r.Value(metric)})
	}
	return out
}

func TestReadJSON(t *testing.T) {
	rs, err := ReadFile(filepath.Join("testdata", "angle.json"), "cpu_time")
	if err != nil {
		t.Fatal(err)
	}
	want := []summary{
		{"BM_ANGLE", 128, 158},
		{"BM_ANGLE", 256, 316},
		{"BM_ANGLE_SIMD", 128, 39.5},
		{"BM_ANGLE_SIMD", 256, 79},
	}
	if diff := cmp.Diff(want, summarize(rs, "cpu_time")); diff != "" {
		t.Errorf("results (-want +got):\n%s", diff)
	}

	simd := rs[2]
	if simd.TimeUnit != "ns" || simd.RunType != RunIteration || simd.Threads != 1 {
		t.Errorf("bookkeeping fields: got unit %q, run type %q, threads %d", simd.TimeUnit, simd.RunType, simd.Threads)
	}
	if got := simd.Value("flops"); got != 6.4e9 {
		t.Errorf("user counter flops = %v, want 6.4e9", got)
	}
	// The user label "avx2" doesn't affect grouping.
	if got := rs[3].Label; got != "BM_ANGLE_SIMD" {
		t.Errorf("label = %q, want BM_ANGLE_SIMD", got)
	}
}

func TestReadJSONLabels(t *testing.T) {
	const data = `{"benchmarks": [
		{"name": "A/1", "real_time": 1},
		{"name": "A/2", "real_time": 2},
		{"name": "B/1", "real_time": 3},
		{"name": "B/2", "real_time": 4}
	]}`
	rs, err := ReadJSON(strings.NewReader(data), "test.json")
	if err != nil {
		t.Fatal(err)
	}
	inputs := make(map[string][]int)
	for _, r := range rs {
		inputs[r.Label] = append(inputs[r.Label], r.Input)
	}
	want := map[string][]int{"A": {1, 2}, "B": {1, 2}}
	if diff := cmp.Diff(want, inputs); diff != "" {
		t.Errorf("inputs by label (-want +got):\n%s", diff)
	}
}

func TestReadJSONAggregate(t *testing.T) {
	const data = `{"benchmarks": [
		{"name": "BM_X/8_mean", "run_name": "BM_X/8", "run_type": "aggregate",
		 "aggregate_name": "mean", "real_time": 5, "time_unit": "us"}
	]}`
	rs, err := ReadJSON(strings.NewReader(data), "test.json")
	if err != nil {
		t.Fatal(err)
	}
	r := rs[0]
	if !r.IsAggregate() || r.AggregateName != "mean" || r.Label != "BM_X" || r.Input != 8 {
		t.Errorf("got %+v", r)
	}
}

func TestReadJSONAggregateNoRunType(t *testing.T) {
	// Files without run_type only mark aggregates by name.
	const data = `{"benchmarks": [
		{"name": "A/8", "real_time": 1},
		{"name": "A/8", "real_time": 3},
		{"name": "A/8_mean", "real_time": 2},
		{"name": "A/8_median", "real_time": 2},
		{"name": "A/8_stddev", "real_time": 1},
		{"name": "A/8_cv", "real_time": 0.5}
	]}`
	rs, err := ReadJSON(strings.NewReader(data), "test.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 6 {
		t.Fatalf("got %d results, want 6", len(rs))
	}
	for i, r := range rs {
		wantAgg := i >= 2
		if r.IsAggregate() != wantAgg || r.Label != "A" || r.Input != 8 || r.RunName != "A/8" {
			t.Errorf("%s: got run type %q, run name %q, label %q, input %d", r.Name, r.RunType, r.RunName, r.Label, r.Input)
		}
	}
	if got := rs[4].AggregateName; got != "stddev" {
		t.Errorf("aggregate name = %q, want stddev", got)
	}
}

func TestReadJSONErrors(t *testing.T) {
	for _, test := range []struct {
		name, data, want string
	}{
		{"syntax", "{\n\"benchmarks\": [\n{\"name\": }\n]}", "test.json:3: "},
		{"no benchmarks", `{"context": {}}`, "benchmarks is required"},
		{"bad value", `{"benchmarks": [{"name": "A/1", "real_time": "fast"}]}`, "real_time"},
		{"bad input", `{"benchmarks": [{"name": "A/x", "real_time": 1}]}`, `benchmarks[0]: benchmark "A/x"`},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(test.data), "test.json")
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("want *SyntaxError, got %v", err)
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not contain %q", err, test.want)
			}
		})
	}
}

func TestReadCSV(t *testing.T) {
	rs, err := ReadFile(filepath.Join("testdata", "angle.csv"), "items_per_second")
	if err != nil {
		t.Fatal(err)
	}
	nan := math.NaN()
	want := []summary{
		{"BM_ANGLE", 128, nan},
		{"BM_ANGLE", 256, nan},
		{"BM_ANGLE_SIMD", 128, 3.2e9},
		{"BM_ANGLE_SIMD", 256, nan},
		{"BM_ANGLE_SIMD", 256, nan},
		{"BM_BROKEN", 128, nan},
	}
	if diff := cmp.Diff(want, summarize(rs, "items_per_second"), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("results (-want +got):\n%s", diff)
	}
	if !rs[4].IsAggregate() || rs[4].AggregateName != "mean" {
		t.Errorf("row 5: want mean aggregate, got run type %q", rs[4].RunType)
	}
	if !rs[5].ErrorOccurred || rs[5].ErrorMessage != "vector too short" {
		t.Errorf("row 6: want error %q, got %v %q", "vector too short", rs[5].ErrorOccurred, rs[5].ErrorMessage)
	}
	if rs[0].Line != 2 {
		t.Errorf("row 1: line = %d, want 2", rs[0].Line)
	}
	if _, ok := rs[0].Values["real_time"]; ok {
		t.Errorf("CSV reader kept unselected column real_time")
	}
}

func TestReadCSVErrors(t *testing.T) {
	for _, test := range []struct {
		name, data, want string
	}{
		{"empty", "", "test.csv:1: missing header"},
		{"no metric", "name,real_time\nA/1,3\n", `test.csv:1: missing "cpu_time" column`},
		{"bad value", "name,cpu_time\nA/1,3\nA/2,fast\n", `test.csv:3: A/2: bad cpu_time value "fast"`},
		{"bad input", "name,cpu_time\nA/two,3\n", `test.csv:2: benchmark "A/two"`},
		{"bad quote", "name,cpu_time\n\"A/1,3\n", "test.csv:"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(test.data), "test.csv", "cpu_time")
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("want *SyntaxError, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), test.want) {
				t.Errorf("error %q does not start with %q", err, test.want)
			}
		})
	}
}

func TestUnsupportedExtension(t *testing.T) {
	// The file doesn't exist, so any attempt to open it would
	// produce a different error.
	path := filepath.Join(t.TempDir(), "results.txt")
	_, err := ReadFile(path, "real_time")
	var uerr *UnsupportedExtensionError
	if !errors.As(err, &uerr) {
		t.Fatalf("want *UnsupportedExtensionError, got %v", err)
	}
	if want := `unsupported file extension ".txt"`; err.Error() != want {
		t.Errorf("got %q, want %q", err, want)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("ReadFile created %s", path)
	}

	// An existing file is rejected the same way.
	if _, err := ReadFile(filepath.Join("testdata", "notes.txt"), "real_time"); !errors.As(err, &uerr) {
		t.Errorf("want *UnsupportedExtensionError, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	for path, want := range map[string]string{
		"benchmark_in_one.json": "json",
		"out/benchmark.csv":     "csv",
	} {
		got, err := Format(path)
		if err != nil || got != want {
			t.Errorf("Format(%q) = %q, %v, want %q", path, got, err, want)
		}
	}
	if _, err := Format("benchmark"); err == nil {
		t.Errorf("Format(benchmark): want error")
	}
}
