// Copyright 2026 The benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log"
	"os"
	"os/exec"
	"runtime"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/elastic-ai/benchviz/benchseries"
)

// display writes p to a temporary PNG file and opens it in the
// system image viewer. If no viewer can be started, the file is left
// for the user to open.
func display(p *plot.Plot, width, height vg.Length, l *log.Logger) error {
	f, err := os.CreateTemp("", "benchplot-*.png")
	if err != nil {
		return err
	}
	if err := benchseries.WriteChart(f, p, width, height, "png"); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	cmd := viewer(f.Name())
	if err := cmd.Run(); err != nil {
		l.Printf("cannot open viewer: %v", err)
	}
	l.Printf("chart written to %s", f.Name())
	return nil
}

// viewer returns the command that opens path with the platform's
// default application.
func viewer(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	}
	return exec.Command("xdg-open", path)
}
