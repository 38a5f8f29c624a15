// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// NumberStyle describes the page number stamp.
type NumberStyle struct {
	FontName string
	FontSize int
	// Bottom is the distance in points from the bottom edge to the stamp.
	Bottom float64
}

// DefaultNumberStyle is Helvetica 12 in black, 30pt above the bottom edge.
var DefaultNumberStyle = NumberStyle{FontName: "Helvetica", FontSize: 12, Bottom: 30}

func (s NumberStyle) withDefaults() NumberStyle {
	if s.FontName == "" {
		s.FontName = DefaultNumberStyle.FontName
	}
	if s.FontSize <= 0 {
		s.FontSize = DefaultNumberStyle.FontSize
	}
	if s.Bottom <= 0 {
		s.Bottom = DefaultNumberStyle.Bottom
	}
	return s
}

func (s NumberStyle) description() string {
	return fmt.Sprintf("fontname:%s, points:%d, position:bc, offset:0 %g, scalefactor:1 abs, rotation:0, fillcolor:#000000, opacity:1",
		s.FontName, s.FontSize, s.Bottom)
}

// Numbering maps physical page numbers to the number stamped on them. Front
// matter pages are left out; the first page after them is number 1.
func Numbering(totalPages, frontPages int) map[int]int {
	m := make(map[int]int)
	for page := frontPages + 1; page <= totalPages; page++ {
		m[page] = page - frontPages
	}
	return m
}

// StampPageNumbers writes logical page numbers, centred at the bottom, on
// every page of the PDF at path after the first frontPages pages.
func StampPageNumbers(path string, frontPages int, style NumberStyle) error {
	total, err := PageCount(path)
	if err != nil {
		return err
	}
	numbers := Numbering(total, frontPages)
	if len(numbers) == 0 {
		return nil
	}

	style = style.withDefaults()
	desc := style.description()
	stamps := make(map[int]*model.Watermark, len(numbers))
	for page, n := range numbers {
		wm, err := pdfcpu.ParseTextWatermarkDetails(strconv.Itoa(n), desc, true, types.POINTS)
		if err != nil {
			return fmt.Errorf("page number stamp: %w", err)
		}
		stamps[page] = wm
	}

	tmp := tempPath(path, ".pnum.pdf")
	if err := api.AddWatermarksMapFile(path, tmp, stamps, newConfig()); err != nil {
		return fmt.Errorf("stamping page numbers on %s: %w", path, err)
	}
	return replace(tmp, path)
}
