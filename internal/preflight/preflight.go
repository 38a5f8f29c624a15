// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preflight reports whether the renderer, fonts, and images a build
// needs are in place before any sheet is exported.
package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pdiddy/reportbinder/internal/container"
	"github.com/pdiddy/reportbinder/pkg/types"
)

// Status reports the availability of one requirement.
type Status struct {
	Name        string
	Target      string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// checker holds the probes Check uses, replaceable in tests.
type checker struct {
	lookPath func(string) (string, error)
	detect   func(context.Context) (container.Runtime, error)
}

var defaultChecker = checker{
	lookPath: exec.LookPath,
	detect:   container.DetectRuntime,
}

// Check evaluates every requirement of cfg and reports availability.
func Check(ctx context.Context, cfg types.BuildConfig) []Status {
	return defaultChecker.check(ctx, cfg)
}

// Ready reports whether every required item is available.
func Ready(statuses []Status) bool {
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			return false
		}
	}
	return true
}

func (c checker) check(ctx context.Context, cfg types.BuildConfig) []Status {
	var results []Status
	results = append(results, c.renderer(ctx, cfg.Export)...)

	layout := cfg.Layout
	if strings.TrimSpace(layout.FontPath) == "" {
		results = append(results, Status{
			Name:        "font",
			Description: "cover and TOC text",
			Available:   true,
			Detail:      "using Helvetica; non-Latin titles will not render",
		})
	} else {
		results = append(results, fileStatus("font", layout.FontPath, "cover and TOC text", false))
		if layout.BoldFontPath != "" {
			results = append(results, fileStatus("bold font", layout.BoldFontPath, "cover subtitle and footer", false))
		}
	}
	results = append(results,
		fileStatus("cover image", layout.CoverImage, "cover background", true),
		fileStatus("info image", layout.InfoImage, "note after the TOC", true),
	)
	return results
}

func (c checker) renderer(ctx context.Context, cfg types.ExportConfig) []Status {
	switch cfg.Backend {
	case types.BackendContainer:
		rt, err := c.detect(ctx)
		if err != nil {
			return []Status{{
				Name:        "container runtime",
				Target:      "docker/podman",
				Description: "runs the LibreOffice image",
				Detail:      err.Error(),
			}}
		}
		image := Status{
			Name:        "renderer image",
			Target:      cfg.ContainerImage,
			Description: "LibreOffice in " + rt.Name(),
			Available:   true,
		}
		if err := rt.ImageExists(ctx, cfg.ContainerImage); err != nil {
			image.Available = false
			image.Detail = err.Error()
		}
		return []Status{{
			Name:        "container runtime",
			Target:      rt.Name(),
			Description: "runs the LibreOffice image",
			Available:   true,
		}, image}
	default:
		bin := strings.TrimSpace(cfg.SofficeBin)
		status := Status{
			Name:        "renderer",
			Target:      bin,
			Description: "LibreOffice headless",
		}
		if bin == "" {
			status.Detail = "command not configured"
			return []Status{status}
		}
		if _, err := c.lookPath(bin); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", bin)
			return []Status{status}
		}
		status.Available = true
		return []Status{status}
	}
}

func fileStatus(name, path, desc string, optional bool) Status {
	s := Status{Name: name, Target: path, Description: desc, Optional: optional}
	if strings.TrimSpace(path) == "" {
		s.Detail = "not configured"
		return s
	}
	info, err := os.Stat(path)
	switch {
	case err != nil:
		s.Detail = "file not found"
	case info.IsDir():
		s.Detail = "is a directory"
	default:
		s.Available = true
	}
	return s
}
