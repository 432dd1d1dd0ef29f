// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gbench

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// A SyntaxError represents malformed content in a result file.
type SyntaxError struct {
	FileName string
	Line     int // 0 if unknown
	Msg      string
}

func (s *SyntaxError) Error() string {
	if s.Line == 0 {
		return fmt.Sprintf("%s: %s", s.FileName, s.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

// An UnsupportedExtensionError is returned for result files whose
// extension does not name a known format.
type UnsupportedExtensionError struct {
	Ext string
}

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("unsupported file extension %q", e.Ext)
}

// Format returns the --benchmark_format value that produces files
// with path's extension: "json" or "csv".
func Format(path string) (string, error) {
	switch ext := filepath.Ext(path); ext {
	case ".json":
		return "json", nil
	case ".csv":
		return "csv", nil
	default:
		return "", &UnsupportedExtensionError{ext}
	}
}

// ReadFile reads the results in the file at path. The format is
// chosen by the file's extension, which is checked before the file is
// opened. For CSV files only the name column and the metric column
// are read; JSON files are read in full.
func ReadFile(path, metric string) ([]*Result, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if format == "csv" {
		return ReadCSV(f, path, metric)
	}
	return ReadJSON(f, path)
}

// Fields of a JSON result that are bookkeeping rather than
// measurements.
var jsonStringFields = map[string]bool{
	"name":           true,
	"run_name":       true,
	"run_type":       true,
	"aggregate_name": true,
	"aggregate_unit": true,
	"time_unit":      true,
	"label":          true,
	"error_message":  true,
}

var jsonIndexFields = map[string]bool{
	"family_index":              true,
	"per_family_instance_index": true,
	"repetitions":               true,
	"repetition_index":          true,
	"threads":                   true,
}

// ReadJSON reads results in the JSON format from r. fileName is used
// in error messages.
func ReadJSON(r io.Reader, fileName string) ([]*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		var serr *json.SyntaxError
		if errors.As(err, &serr) {
			return nil, &SyntaxError{fileName, lineOf(data, serr.Offset), serr.Error()}
		}
		return nil, &SyntaxError{fileName, 0, err.Error()}
	}
	if err := validate(data); err != nil {
		return nil, &SyntaxError{fileName, 0, err.Error()}
	}

	var doc struct {
		Benchmarks []map[string]interface{} `json:"benchmarks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &SyntaxError{fileName, 0, err.Error()}
	}

	results := make([]*Result, 0, len(doc.Benchmarks))
	for i, b := range doc.Benchmarks {
		res := &Result{Values: make(map[string]float64), Line: i}
		for k, v := range b {
			switch v := v.(type) {
			case string:
				res.setString(k, v)
			case float64:
				if jsonIndexFields[k] {
					res.setIndex(k, int(v))
				} else if !jsonStringFields[k] {
					res.Values[k] = v
				}
			case bool:
				if k == "error_occurred" {
					res.ErrorOccurred = v
				}
			}
		}
		if res.RunType == "" {
			// Older files mark aggregates only by a name suffix.
			res.RunType = RunIteration
			if runName, agg := splitAggregate(res.Name); agg != "" {
				res.RunType = RunAggregate
				if res.AggregateName == "" {
					res.AggregateName = agg
				}
				if res.RunName == "" {
					res.RunName = runName
				}
			}
		}
		if res.RunName == "" {
			res.RunName = res.Name
		}
		if err := res.derive(); err != nil {
			return nil, &SyntaxError{fileName, 0, fmt.Sprintf("benchmarks[%d]: %s", i, err)}
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Result) setString(key, val string) {
	switch key {
	case "name":
		r.Name = val
	case "run_name":
		r.RunName = val
	case "run_type":
		r.RunType = val
	case "aggregate_name":
		r.AggregateName = val
	case "time_unit":
		r.TimeUnit = val
	case "error_message":
		r.ErrorMessage = val
	}
}

func (r *Result) setIndex(key string, val int) {
	switch key {
	case "threads":
		r.Threads = val
	}
}

func (r *Result) derive() error {
	label, input, err := ParseName(r.RunName)
	if err != nil {
		return err
	}
	r.Label, r.Input = label, input
	return nil
}

// lineOf returns the 1-based line number of byte offset off in data.
func lineOf(data []byte, off int64) int {
	if off > int64(len(data)) {
		off = int64(len(data))
	}
	return 1 + bytes.Count(data[:off], []byte("\n"))
}

// ReadCSV reads results in the CSV format from r, keeping only the
// name column, the metric column and the error and time unit columns.
// fileName is used in error messages.
func ReadCSV(r io.Reader, fileName, metric string) ([]*Result, error) {
	cr := csv.NewReader(r)
	// User counters add trailing columns to some rows only.
	cr.FieldsPerRecord = -1

	wrap := func(err error) error {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return &SyntaxError{fileName, perr.Line, perr.Err.Error()}
		}
		return err
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SyntaxError{fileName, 1, "missing header"}
	} else if err != nil {
		return nil, wrap(err)
	}
	col := func(name string) int {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
		return -1
	}
	nameCol, metricCol := col("name"), col(metric)
	if nameCol < 0 {
		return nil, &SyntaxError{fileName, 1, `missing "name" column`}
	}
	if metricCol < 0 {
		return nil, &SyntaxError{fileName, 1, fmt.Sprintf("missing %q column", metric)}
	}
	unitCol, errCol, msgCol := col("time_unit"), col("error_occurred"), col("error_message")

	field := func(rec []string, i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var results []*Result
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, wrap(err)
		}
		line, _ := cr.FieldPos(0)

		res := &Result{
			Name:     field(rec, nameCol),
			RunType:  RunIteration,
			TimeUnit: field(rec, unitCol),
			Values:   make(map[string]float64, 1),
			Line:     line,
		}
		res.RunName, res.AggregateName = splitAggregate(res.Name)
		if res.AggregateName != "" {
			res.RunType = RunAggregate
		}
		res.ErrorOccurred = field(rec, errCol) == "true"
		res.ErrorMessage = field(rec, msgCol)

		val := math.NaN()
		if s := field(rec, metricCol); s != "" {
			val, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &SyntaxError{fileName, line, fmt.Sprintf("%s: bad %s value %q", res.Name, metric, s)}
			}
		}
		res.Values[metric] = val

		if err := res.derive(); err != nil {
			return nil, &SyntaxError{fileName, line, err.Error()}
		}
		results = append(results, res)
	}
	return results, nil
}
