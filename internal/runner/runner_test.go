// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elastic-ai/benchviz/gbench"
)

// fakeBench is a benchmark binary that writes an empty result file
// and fails.
const fakeBench = `#!/bin/sh
for arg; do
	case "$arg" in
	--benchmark_out=*) echo '{"benchmarks": []}' > "${arg#--benchmark_out=}" ;;
	esac
done
echo running
exit 3
`

func writeBench(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "bench")
	if err := os.WriteFile(path, []byte(fakeBench), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

type logger []string

func (l *logger) logf(format string, args ...interface{}) {
	*l = append(*l, fmt.Sprintf(format, args...))
}

func TestCommand(t *testing.T) {
	r := &Runner{Bench: "./bench"}
	for file, format := range map[string]string{"out.json": "json", "out.csv": "csv"} {
		cmd, err := r.Command(context.Background(), file)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"./bench", "--benchmark_out=" + file, "--benchmark_format=" + format}
		if diff := cmp.Diff(want, cmd.Args); diff != "" {
			t.Errorf("%s: args (-want +got):\n%s", file, diff)
		}
	}

	_, err := r.Command(context.Background(), "out.txt")
	var extErr *gbench.UnsupportedExtensionError
	if !errors.As(err, &extErr) {
		t.Errorf("want UnsupportedExtensionError, got %v", err)
	}
}

func TestRun(t *testing.T) {
	bench := writeBench(t)
	out := filepath.Join(t.TempDir(), "result file.json")

	var log logger
	var stdout strings.Builder
	r := &Runner{Bench: bench, Stdout: &stdout, Logf: log.logf}
	if err := r.Run(context.Background(), out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("result file not written: %v", err)
	}
	if got := stdout.String(); got != "running\n" {
		t.Errorf("stdout = %q, want %q", got, "running\n")
	}
	if len(log) != 3 {
		t.Fatalf("log = %q, want 3 lines", log)
	}
	// The path has a space, so the logged command quotes it.
	if want := "'--benchmark_out=" + out + "'"; !strings.Contains(log[1], want) {
		t.Errorf("logged command %q does not contain %q", log[1], want)
	}
	if want := "exit status 3"; !strings.Contains(log[2], want) {
		t.Errorf("log %q does not contain %q", log[2], want)
	}
}

func TestRunSkip(t *testing.T) {
	var log logger
	r := &Runner{Bench: filepath.Join(t.TempDir(), "missing"), Skip: true, Logf: log.logf}
	if err := r.Run(context.Background(), "out.json"); err != nil {
		t.Fatal(err)
	}
	want := logger{"run bench out.json", "skip bench"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("log (-want +got):\n%s", diff)
	}
}

func TestRunMissingBinary(t *testing.T) {
	r := &Runner{Bench: filepath.Join(t.TempDir(), "missing")}
	if err := r.Run(context.Background(), "out.json"); err == nil {
		t.Errorf("want error for a missing binary")
	}
}
