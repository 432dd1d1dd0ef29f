// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit manipulates the units of Google Benchmark
// metrics.
package benchunit

import "strings"

// timeFactors converts the time units Google Benchmark reports into
// seconds.
var timeFactors = map[string]float64{
	"ns": 1e-9,
	"us": 1e-6,
	"ms": 1e-3,
	"s":  1,
}

// Unit returns the base unit of metric: "sec" for times, "B/s" for
// byte throughput, "items/s" for item throughput and "" for counts
// and unknown metrics.
func Unit(metric string) string {
	switch metric {
	case "real_time", "cpu_time":
		return "sec"
	case "bytes_per_second":
		return "B/s"
	case "items_per_second":
		return "items/s"
	}
	return ""
}

// ClassOf returns the Class of unit. Byte quantities use Binary.
func ClassOf(unit string) Class {
	if unit == "B" || strings.HasPrefix(unit, "B/") {
		return Binary
	}
	return Decimal
}

// Tidy converts a value of metric reported in timeUnit into the
// metric's base unit. Only times depend on timeUnit; an unknown or
// empty timeUnit is taken to be nanoseconds, the Google Benchmark
// default.
func Tidy(value float64, metric, timeUnit string) (tidiedValue float64, unit string) {
	unit = Unit(metric)
	if unit != "sec" {
		return value, unit
	}
	f, ok := timeFactors[timeUnit]
	if !ok {
		f = timeFactors["ns"]
	}
	return value * f, unit
}
