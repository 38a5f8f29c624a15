// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the reportbinder pipeline.
package types

// Sheet is one exported worksheet. A slice of Sheet is always in the order
// the worksheets appear in the source workbook.
type Sheet struct {
	// Name is the worksheet name.
	Name string `json:"name" yaml:"name"`

	// Title is the heading used in the TOC and outline. It falls back to Name
	// when the first row carries no text.
	Title string `json:"title" yaml:"title"`

	// PDFPath is the exported single-sheet PDF, blank pages already removed.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// Pages is the page count of PDFPath.
	Pages int `json:"pages" yaml:"pages"`

	// BlankRemoved is the number of blank pages dropped from the export.
	BlankRemoved int `json:"blank_removed,omitempty" yaml:"blank_removed,omitempty"`
}

// TOCEntry is one line of the table of contents.
type TOCEntry struct {
	// Index is the 1-based position of the sheet in the report.
	Index int `json:"index" yaml:"index"`

	Title string `json:"title" yaml:"title"`

	// Page is the logical page number, counted from the first page after
	// the front matter.
	Page int `json:"page" yaml:"page"`
}

// Bookmark is one outline entry of the final PDF.
type Bookmark struct {
	Title string `json:"title" yaml:"title"`

	// Page is the 1-based physical page the entry points at.
	Page int `json:"page" yaml:"page"`
}

// TotalPages sums the page counts of sheets.
func TotalPages(sheets []Sheet) int {
	n := 0
	for _, s := range sheets {
		n += s.Pages
	}
	return n
}
