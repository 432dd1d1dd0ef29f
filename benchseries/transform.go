// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import "fmt"

// A Transform is a function applied to every measurement before
// grouping.
type Transform string

const (
	Identity Transform = ""
	Inverse  Transform = "inverse"
)

// Transforms lists the valid transforms.
var Transforms = []Transform{Identity, Inverse}

// ParseTransform returns the Transform named s.
func ParseTransform(s string) (Transform, error) {
	for _, t := range Transforms {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transform %q", s)
}

// Apply returns t(x).
func (t Transform) Apply(x float64) float64 {
	switch t {
	case Inverse:
		return 1 / x
	}
	return x
}

// Label returns a description of metric after transform t, such as
// "inverse(cpu_time)".
func (t Transform) Label(metric string) string {
	if t == Identity {
		return metric
	}
	return string(t) + "(" + metric + ")"
}
