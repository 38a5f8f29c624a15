// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reportbinder/internal/export"
	"github.com/pdiddy/reportbinder/internal/preflight"
	"github.com/pdiddy/reportbinder/pkg/types"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"build": false, "export": false, "toc": false, "check": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		assert.True(t, found, "subcommand %s not registered", name)
	}
}

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{"/r.pdf"}},
		{"windows", "cmd", []string{"/c", "start", "", "/r.pdf"}},
		{"linux", "xdg-open", []string{"/r.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := openCommand(tt.goos, "/r.pdf")
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

// resetViper gives the test a fresh global viper with defaults registered.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	require.NoError(t, registerDefaults(viper.GetViper()))
}

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("keep-temp", false, "")
	addExportFlags(cmd)
	addLayoutFlags(cmd)
	return cmd
}

func TestLoadBuildConfig_Defaults(t *testing.T) {
	resetViper(t)

	cfg, err := loadBuildConfig(newFlagCmd())
	require.NoError(t, err)
	assert.Equal(t, types.DefaultBuildConfig(), cfg)
}

func TestLoadBuildConfig_FileAndFlags(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "reportbinder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
export:
  backend: container
  container_image: example/libreoffice:7.6
  timeout: 5m
blank_pages:
  min_chars: 4
layout:
  region: New Taipei
`), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--timeout", "30s", "--keep-blank", "--font", "/fonts/a.ttf"}))

	cfg, err := loadBuildConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, types.BackendContainer, cfg.Export.Backend)
	assert.Equal(t, "example/libreoffice:7.6", cfg.Export.ContainerImage)
	assert.Equal(t, 30*time.Second, cfg.Export.Timeout)
	assert.Equal(t, "soffice", cfg.Export.SofficeBin)
	assert.Equal(t, 4, cfg.BlankPages.MinChars)
	assert.False(t, cfg.BlankPages.Enabled)
	assert.Equal(t, "New Taipei", cfg.Layout.Region)
	assert.Equal(t, "臺北市政府衛生局", cfg.Layout.Agency)
	assert.Equal(t, "/fonts/a.ttf", cfg.Layout.FontPath)
}

func TestSheetRows(t *testing.T) {
	sheets := []types.Sheet{
		{Name: "人口", Title: "人口統計", Pages: 2, BlankRemoved: 1},
		{Name: "門診", Title: "門診人次", Pages: 3},
	}
	failed := []export.SheetError{{Sheet: "Bad", Stage: export.StageRender, Err: errors.New("exit status 1")}}

	rows := sheetRows(sheets, failed, false)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0][3])
	assert.Equal(t, "3", rows[1][3])
	assert.Equal(t, "render: exit status 1", rows[2][6])
}

func TestRenderPreflight(t *testing.T) {
	var buf bytes.Buffer
	renderPreflight(&buf, []preflight.Status{
		{Name: "renderer", Target: "soffice", Available: true},
		{Name: "info image", Target: "assets/additionalinfo.png", Optional: true, Detail: "file not found"},
		{Name: "font", Target: "fonts/x.ttf", Detail: "file not found"},
	})
	out := buf.String()
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "ERROR")
	assert.NotContains(t, out, "\x1b[")
}
