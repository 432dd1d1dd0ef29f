// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gbench

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema describes the parts of the JSON output format this
// package relies on. Members it doesn't mention are allowed.
const resultSchema = `{
  "type": "object",
  "required": ["benchmarks"],
  "properties": {
    "context": {"type": "object"},
    "benchmarks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name":             {"type": "string"},
          "run_name":         {"type": "string"},
          "run_type":         {"enum": ["iteration", "aggregate"]},
          "aggregate_name":   {"type": "string"},
          "repetition_index": {"type": "integer"},
          "threads":          {"type": "integer"},
          "iterations":       {"type": "number"},
          "real_time":        {"type": "number"},
          "cpu_time":         {"type": "number"},
          "bytes_per_second": {"type": "number"},
          "items_per_second": {"type": "number"},
          "time_unit":        {"enum": ["ns", "us", "ms", "s"]},
          "label":            {"type": "string"},
          "error_occurred":   {"type": "boolean"},
          "error_message":    {"type": "string"}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(resultSchema)

// validate checks the JSON document data against resultSchema.
func validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("not a benchmark result file: %s", strings.Join(errs, "; "))
}
