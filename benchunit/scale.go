// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Class specifies what metric prefix system to use for a unit.
type Class int

const (
	// Decimal indicates values of a given unit should be scaled
	// by powers of 1000 and use the International System of
	// Units (SI) prefixes.
	Decimal Class = iota
	// Binary indicates values of a given unit should be scaled by
	// powers of 1024 and use the International Electrotechnical
	// Commission (IEC) binary prefixes.
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// A Scaler represents a scaling factor for a number and its
// scientific representation.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", "Ki", etc)
}

// Format formats val and appends the unit prefix according to the
// given scale. For example, with a Decimal scale chosen for
// 123456789, Format(123456789) returns "123.5M".
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

type factor struct {
	factor float64
	prefix string
}

var siFactors = []factor{
	{1e12, "T"}, {1e9, "G"}, {1e6, "M"}, {1e3, "k"}, {1, ""},
	{1e-3, "m"}, {1e-6, "µ"}, {1e-9, "n"},
}

var iecFactors = []factor{
	{1 << 40, "Ti"}, {1 << 30, "Gi"}, {1 << 20, "Mi"}, {1 << 10, "Ki"}, {1, ""},
}

// Scale formats val with four significant digits, appending an SI or
// binary prefix. NaN and infinities are formatted by strconv.
func Scale(val float64, cls Class) string {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return CommonScale([]float64{val}, cls).Format(val)
}

// CommonScale returns a Scaler to apply to all values in vals. The
// scale is chosen by the non-zero value closest to zero, so every
// value shows at least four significant digits.
func CommonScale(vals []float64, cls Class) Scaler {
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0) && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	var factors []factor
	switch cls {
	default:
		panic(fmt.Sprintf("bad Class %v", cls))
	case Decimal:
		factors = siFactors
	case Binary:
		factors = iecFactors
	}

	// Use the largest prefix that leaves at least 1 after rounding
	// to four significant digits, so 999.95 prints as "1.000k".
	f := factors[len(factors)-1]
	scaled := round4(min / f.factor)
	for _, cand := range factors {
		if s := round4(min / cand.factor); s >= 1 {
			f, scaled = cand, s
			break
		}
	}
	prec := 0
	switch {
	case scaled < 1:
		// Below the smallest prefix; add digits until four
		// significant ones show.
		prec = 3 - int(math.Floor(math.Log10(scaled)))
	case scaled < 10:
		prec = 3
	case scaled < 100:
		prec = 2
	case scaled < 1000:
		prec = 1
	}
	return Scaler{prec, f.factor, f.prefix}
}

func round4(x float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'g', 4, 64), 64)
	return r
}
