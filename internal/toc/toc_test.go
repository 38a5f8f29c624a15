// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toc

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reportbinder/pkg/types"
)

func TestParseCompileDate(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		want       CompileDate
		wantPeriod string
		wantStamp  string
		wantErr    bool
	}{
		{
			name:       "typical",
			in:         "114年11月編製",
			want:       CompileDate{Year: 114, Month: 11},
			wantPeriod: "114年10月",
			wantStamp:  "114年11月編製",
		},
		{
			name:       "january wraps to previous year",
			in:         "115年1月編製",
			want:       CompileDate{Year: 115, Month: 1},
			wantPeriod: "114年12月",
			wantStamp:  "115年1月編製",
		},
		{
			name:       "leading zero month normalised",
			in:         "114年03月編製",
			want:       CompileDate{Year: 114, Month: 3},
			wantPeriod: "114年2月",
			wantStamp:  "114年3月編製",
		},
		{
			name:       "full-width digits and padding",
			in:         "　１１４年７月編製 ",
			want:       CompileDate{Year: 114, Month: 7},
			wantPeriod: "114年6月",
			wantStamp:  "114年7月編製",
		},
		{name: "missing suffix", in: "114年11月", wantErr: true},
		{name: "two digit year", in: "99年11月編製", wantErr: true},
		{name: "month thirteen", in: "114年13月編製", wantErr: true},
		{name: "month zero", in: "114年0月編製", wantErr: true},
		{name: "gregorian", in: "2025-11", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompileDate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCompileDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPeriod, got.CoverPeriod())
			assert.Equal(t, tt.wantStamp, got.Stamp())
		})
	}
}

func TestCurrentCompileDate(t *testing.T) {
	d := CurrentCompileDate(time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, CompileDate{Year: 114, Month: 11}, d)

	parsed, err := ParseCompileDate(d.Stamp())
	require.NoError(t, err)
	assert.Equal(t, d, parsed)
}

func TestEntries(t *testing.T) {
	sheets := []types.Sheet{
		{Name: "s1", Title: "人口概況", Pages: 2},
		{Name: "s2", Title: "門診人次", Pages: 1},
		{Name: "s3", Title: "住院人次", Pages: 3},
		{Name: "s4", Title: "死因統計", Pages: 1},
	}
	want := []types.TOCEntry{
		{Index: 1, Title: "人口概況", Page: 1},
		{Index: 2, Title: "門診人次", Page: 3},
		{Index: 3, Title: "住院人次", Page: 4},
		{Index: 4, Title: "死因統計", Page: 7},
	}
	assert.Equal(t, want, Entries(sheets))
	assert.Empty(t, Entries(nil))
}

// asciiLayout renders with the Helvetica core font so tests need no font files.
func asciiLayout() types.LayoutConfig {
	return types.LayoutConfig{
		CoverTitle: "Health Statistics Digest",
		Region:     "Taipei",
		Agency:     "Department of Health",
		TOCTitle:   "Health Statistics Digest",
		TOCHeading: "Contents",
	}
}

func makeEntries(n int) []types.TOCEntry {
	entries := make([]types.TOCEntry, n)
	for i := range entries {
		entries[i] = types.TOCEntry{Index: i + 1, Title: fmt.Sprintf("Table %d", i+1), Page: i*2 + 1}
	}
	return entries
}

func writePNG(t *testing.T, path string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 0x3A, G: 0x9D, B: 0x7C, A: 0xFF})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func pageText(t *testing.T, path string, page int) string {
	t.Helper()
	f, r, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()
	text, err := r.Page(page).GetPlainText(nil)
	require.NoError(t, err)
	return text
}

func TestRender(t *testing.T) {
	date := CompileDate{Year: 114, Month: 11}

	tests := []struct {
		name      string
		entries   int
		infoImage bool
		wantPages int
	}{
		{name: "no entries still has a contents page", entries: 0, wantPages: 2},
		{name: "one contents page", entries: 10, wantPages: 2},
		{name: "26 entries fill one page", entries: 26, wantPages: 2},
		{name: "27th entry starts a new page", entries: 27, wantPages: 3},
		{name: "info image fits under entries", entries: 1, infoImage: true, wantPages: 2},
		{name: "info image moves to a new page", entries: 26, infoImage: true, wantPages: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			layout := asciiLayout()
			if tt.infoImage {
				layout.InfoImage = writePNG(t, filepath.Join(dir, "info.png"), 100, 20)
			}
			out := filepath.Join(dir, "toc.pdf")

			pages, err := Render(out, makeEntries(tt.entries), date, layout)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, pages)

			n, err := api.PageCountFile(out)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, n)
		})
	}
}

func TestRender_Content(t *testing.T) {
	dir := t.TempDir()
	layout := asciiLayout()
	layout.CoverImage = writePNG(t, filepath.Join(dir, "cover.png"), 60, 80)
	out := filepath.Join(dir, "toc.pdf")

	entries := []types.TOCEntry{
		{Index: 1, Title: "Population", Page: 1},
		{Index: 2, Title: "Outpatient visits", Page: 3},
	}
	_, err := Render(out, entries, CompileDate{Year: 114, Month: 11}, layout)
	require.NoError(t, err)

	cover := pageText(t, out, 1)
	assert.Contains(t, cover, "Taipei")
	assert.Contains(t, cover, "Department of Health")

	contents := pageText(t, out, 2)
	assert.Contains(t, contents, "Contents")
	assert.Contains(t, contents, "Population")
	assert.Contains(t, contents, "Outpatient visits")
	assert.True(t, strings.Contains(contents, "...."), "dot leaders drawn")
}

func TestRender_MissingFont(t *testing.T) {
	layout := asciiLayout()
	layout.FontPath = filepath.Join(t.TempDir(), "missing.ttf")
	_, err := Render(filepath.Join(t.TempDir(), "toc.pdf"), makeEntries(1), CompileDate{Year: 114, Month: 11}, layout)
	require.Error(t, err)
}

func TestCheckLayout(t *testing.T) {
	dir := t.TempDir()
	font := filepath.Join(dir, "regular.ttf")
	require.NoError(t, os.WriteFile(font, []byte("ttf"), 0o644))
	missing := filepath.Join(dir, "missing.ttf")

	tests := []struct {
		name    string
		layout  types.LayoutConfig
		wantErr string
	}{
		{name: "core font", layout: types.LayoutConfig{}},
		{name: "regular only", layout: types.LayoutConfig{FontPath: font}},
		{name: "regular and bold", layout: types.LayoutConfig{FontPath: font, BoldFontPath: font}},
		{name: "regular missing", layout: types.LayoutConfig{FontPath: missing}, wantErr: "font " + missing},
		{name: "bold missing", layout: types.LayoutConfig{FontPath: font, BoldFontPath: missing}, wantErr: "font " + missing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLayout(tt.layout)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
