// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner runs a Google Benchmark binary so that it writes its
// results to a file.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/elastic-ai/benchviz/gbench"
)

// A Runner runs one benchmark binary.
type Runner struct {
	// Bench is the path of the benchmark binary.
	Bench string

	// Skip disables running the binary. Run then only logs.
	Skip bool

	// Stdout and Stderr receive the binary's output. If nil, the
	// output is discarded.
	Stdout, Stderr io.Writer

	// Logf reports progress. It may be nil.
	Logf func(format string, args ...interface{})
}

// Command returns the command that writes results to resultFile. The
// output format follows resultFile's extension.
func (r *Runner) Command(ctx context.Context, resultFile string) (*exec.Cmd, error) {
	format, err := gbench.Format(resultFile)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, r.Bench,
		"--benchmark_out="+resultFile,
		"--benchmark_format="+format)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd, nil
}

// Run runs the benchmark binary and waits for it to exit.
//
// The binary's exit status is logged and otherwise ignored: a
// benchmark that fails part way may still have written usable
// results. Run returns an error only if the binary could not be
// started.
func (r *Runner) Run(ctx context.Context, resultFile string) error {
	logf := r.Logf
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}

	logf("run bench %s", resultFile)
	if r.Skip {
		logf("skip bench")
		return nil
	}

	cmd, err := r.Command(ctx, resultFile)
	if err != nil {
		return err
	}
	logf("%s", shellquote.Join(cmd.Args...))

	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		logf("run bench done: %s", cmd.ProcessState)
	case errors.As(err, &exitErr):
		logf("run bench done: %s", exitErr.ProcessState)
	default:
		return fmt.Errorf("running %s: %w", r.Bench, err)
	}
	return nil
}
