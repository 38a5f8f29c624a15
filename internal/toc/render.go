// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toc renders the front matter of the report: a cover page followed
// by table of contents pages listing each sheet and its logical start page.
package toc

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/reportbinder/pkg/types"
)

// Page geometry in points, measured from the bottom-left corner.
const (
	leftMargin   = 60.0
	bottomMargin = 80.0
	lineHeight   = 22.0
	firstLineGap = 150.0 // distance from the top edge to the first entry
	entrySize    = 12.0
	dotGap       = 8.0
)

var (
	black = [3]int{0, 0, 0}
	green = [3]int{0x3A, 0x9D, 0x7C}
)

const bodyFamily = "body"

// renderer draws with bottom-left coordinates on top of fpdf, which measures
// from the top-left.
type renderer struct {
	doc    *fpdf.Fpdf
	layout types.LayoutConfig
	family string
	tr     func(string) string
	w, h   float64
}

func newRenderer(layout types.LayoutConfig) (*renderer, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	w, h := doc.GetPageSize()

	r := &renderer{doc: doc, layout: layout, w: w, h: h}
	if layout.FontPath == "" {
		r.family = "Helvetica"
		r.tr = doc.UnicodeTranslatorFromDescriptor("")
		return r, nil
	}

	if err := CheckLayout(layout); err != nil {
		return nil, err
	}
	bold := boldFont(layout)
	doc.AddUTF8Font(bodyFamily, "", layout.FontPath)
	doc.AddUTF8Font(bodyFamily, "B", bold)
	if doc.Err() {
		return nil, fmt.Errorf("loading fonts: %w", doc.Error())
	}
	r.family = bodyFamily
	r.tr = func(s string) string { return s }
	return r, nil
}

func boldFont(layout types.LayoutConfig) string {
	if layout.BoldFontPath == "" {
		return layout.FontPath
	}
	return layout.BoldFontPath
}

// CheckLayout reports a configured font file that cannot be read. An empty
// FontPath selects the core font and needs no file.
func CheckLayout(layout types.LayoutConfig) error {
	if layout.FontPath == "" {
		return nil
	}
	for _, p := range []string{layout.FontPath, boldFont(layout)} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("font %s: %w", p, err)
		}
	}
	return nil
}

func (r *renderer) font(bold bool, size float64) {
	style := ""
	if bold {
		style = "B"
	}
	r.doc.SetFont(r.family, style, size)
}

func (r *renderer) color(c [3]int) {
	r.doc.SetTextColor(c[0], c[1], c[2])
}

func (r *renderer) width(s string) float64 {
	return r.doc.GetStringWidth(r.tr(s))
}

func (r *renderer) text(x, y float64, s string) {
	r.doc.Text(x, r.h-y, r.tr(s))
}

func (r *renderer) centred(x, y float64, s string) {
	r.text(x-r.width(s)/2, y, s)
}

func (r *renderer) right(x, y float64, s string) {
	r.text(x-r.width(s), y, s)
}

// image draws the file at path into the box whose bottom-left corner is
// (x, y). A zero height keeps the aspect ratio of the image at width w;
// fit scales the image to fit inside the box, centred.
func (r *renderer) image(path string, x, y, w, h float64, fit bool) {
	opts := fpdf.ImageOptions{ReadDpi: true}
	info := r.doc.RegisterImageOptions(path, opts)
	if info == nil || r.doc.Err() {
		return
	}
	iw, ih := info.Width(), info.Height()
	switch {
	case h == 0:
		h = ih * (w / iw)
	case fit:
		scale := math.Min(w/iw, h/ih)
		dw, dh := iw*scale, ih*scale
		x, y = x+(w-dw)/2, y+(h-dh)/2
		w, h = dw, dh
	}
	r.doc.ImageOptions(path, x, r.h-y-h, w, h, false, opts, 0, "")
}

// imageHeight returns the height of the image at path when drawn w wide.
func (r *renderer) imageHeight(path string, w float64) (float64, bool) {
	info := r.doc.RegisterImageOptions(path, fpdf.ImageOptions{ReadDpi: true})
	if info == nil || r.doc.Err() || info.Width() == 0 {
		return 0, false
	}
	return info.Height() * (w / info.Width()), true
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Render writes the cover and TOC pages for entries to path and returns the
// number of pages written.
func Render(path string, entries []types.TOCEntry, date CompileDate, layout types.LayoutConfig) (int, error) {
	r, err := newRenderer(layout)
	if err != nil {
		return 0, err
	}

	r.cover(date)
	r.contents(entries)

	if r.doc.Err() {
		return 0, fmt.Errorf("rendering %s: %w", path, r.doc.Error())
	}
	pages := r.doc.PageNo()
	if err := r.doc.OutputFileAndClose(path); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return pages, nil
}

func (r *renderer) cover(date CompileDate) {
	r.doc.AddPage()
	if fileExists(r.layout.CoverImage) {
		r.image(r.layout.CoverImage, 0, 0, r.w, r.h, true)
	}

	// The subtitle hangs left of the main title printed on the cover image.
	r.font(false, 36)
	titleLeft := r.w/2 - r.width(r.layout.CoverTitle)/2

	period := date.CoverPeriod()
	x, y := titleLeft-45, r.h-180
	r.font(true, 21)
	r.color(black)
	r.text(x, y, period)
	r.color(green)
	r.text(x+r.width(period+" "), y, r.layout.Region)

	r.font(true, 17)
	r.right(r.w-40, 75, r.layout.Agency)
	r.right(r.w-40, 50, date.Stamp())
	r.color(black)
}

func (r *renderer) header() {
	r.color(black)
	r.font(false, 18)
	r.centred(r.w/2, r.h-60, r.layout.TOCTitle)
	r.font(false, 22)
	r.centred(r.w/2, r.h-100, r.layout.TOCHeading)
}

func (r *renderer) newContentsPage() float64 {
	r.doc.AddPage()
	r.header()
	r.font(false, entrySize)
	return r.h - firstLineGap
}

func (r *renderer) contents(entries []types.TOCEntry) {
	pageNoX := r.w - leftMargin
	dotEndX := pageNoX - 10

	y := r.newContentsPage()
	for _, e := range entries {
		if y < bottomMargin+40 {
			y = r.newContentsPage()
		}
		left := strconv.Itoa(e.Index) + ". " + e.Title
		r.text(leftMargin, y, left)

		dotStart := leftMargin + r.width(left) + dotGap
		if n := int((dotEndX - dotStart) / r.width(".")); n > 0 {
			r.text(dotStart, y, strings.Repeat(".", n))
		}
		r.right(pageNoX, y, strconv.Itoa(e.Page))
		y -= lineHeight
	}

	if !fileExists(r.layout.InfoImage) {
		return
	}
	imgW := r.w - 2*leftMargin
	imgH, ok := r.imageHeight(r.layout.InfoImage, imgW)
	if !ok {
		return
	}
	if y-imgH < bottomMargin {
		y = r.newContentsPage()
	}
	r.image(r.layout.InfoImage, leftMargin, y-imgH, imgW, 0, false)
}
