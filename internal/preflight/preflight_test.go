// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preflight

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reportbinder/internal/container"
	"github.com/pdiddy/reportbinder/pkg/types"
)

type stubRuntime struct{ imageErr error }

func (s stubRuntime) Name() string                              { return "docker" }
func (s stubRuntime) Available(context.Context) bool            { return true }
func (s stubRuntime) ImageExists(context.Context, string) error { return s.imageErr }
func (s stubRuntime) Run(context.Context, container.RunSpec, io.Writer, io.Writer) error {
	return nil
}

func byName(statuses []Status) map[string]Status {
	m := make(map[string]Status, len(statuses))
	for _, s := range statuses {
		m[s.Name] = s
	}
	return m
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	font := filepath.Join(dir, "font.ttf")
	cover := filepath.Join(dir, "cover.png")
	require.NoError(t, os.WriteFile(font, []byte("ttf"), 0o644))
	require.NoError(t, os.WriteFile(cover, []byte("png"), 0o644))

	found := func(file string) (string, error) { return "/usr/bin/" + file, nil }
	missing := func(string) (string, error) { return "", errors.New("not found") }

	tests := []struct {
		name      string
		checker   checker
		mutate    func(*types.BuildConfig)
		wantReady bool
		check     func(t *testing.T, got map[string]Status)
	}{
		{
			name:      "soffice and fonts present",
			checker:   checker{lookPath: found},
			wantReady: true,
			check: func(t *testing.T, got map[string]Status) {
				assert.True(t, got["renderer"].Available)
				assert.True(t, got["font"].Available)
				assert.True(t, got["cover image"].Available)
				assert.False(t, got["info image"].Available)
				assert.True(t, got["info image"].Optional)
			},
		},
		{
			name:    "soffice missing",
			checker: checker{lookPath: missing},
			check: func(t *testing.T, got map[string]Status) {
				assert.False(t, got["renderer"].Available)
				assert.Contains(t, got["renderer"].Detail, "soffice")
			},
		},
		{
			name:    "font missing",
			checker: checker{lookPath: found},
			mutate:  func(c *types.BuildConfig) { c.Layout.FontPath = filepath.Join(dir, "nope.ttf") },
			check: func(t *testing.T, got map[string]Status) {
				assert.Equal(t, "file not found", got["font"].Detail)
			},
		},
		{
			name:      "no font configured",
			checker:   checker{lookPath: found},
			mutate:    func(c *types.BuildConfig) { c.Layout.FontPath = ""; c.Layout.BoldFontPath = "" },
			wantReady: true,
			check: func(t *testing.T, got map[string]Status) {
				assert.Contains(t, got["font"].Detail, "Helvetica")
				assert.NotContains(t, got, "bold font")
			},
		},
		{
			name: "container image missing",
			checker: checker{detect: func(context.Context) (container.Runtime, error) {
				return stubRuntime{imageErr: errors.New("no such image")}, nil
			}},
			mutate: func(c *types.BuildConfig) { c.Export.Backend = types.BackendContainer },
			check: func(t *testing.T, got map[string]Status) {
				assert.True(t, got["container runtime"].Available)
				assert.False(t, got["renderer image"].Available)
			},
		},
		{
			name: "no container runtime",
			checker: checker{detect: func(context.Context) (container.Runtime, error) {
				return nil, errors.New("no container runtime available")
			}},
			mutate: func(c *types.BuildConfig) { c.Export.Backend = types.BackendContainer },
			check: func(t *testing.T, got map[string]Status) {
				assert.False(t, got["container runtime"].Available)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.DefaultBuildConfig()
			cfg.Layout.FontPath = font
			cfg.Layout.BoldFontPath = font
			cfg.Layout.CoverImage = cover
			cfg.Layout.InfoImage = filepath.Join(dir, "info.png")
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			statuses := tt.checker.check(context.Background(), cfg)
			assert.Equal(t, tt.wantReady, Ready(statuses))
			tt.check(t, byName(statuses))
		})
	}
}
