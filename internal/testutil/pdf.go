// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package testutil builds PDF and workbook fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
)

// WritePDF writes an A4 PDF to path with one page per entry of pages. Each
// entry is drawn as a single line of Helvetica text; an empty entry yields an
// empty page.
func WritePDF(t testing.TB, path string, pages ...string) string {
	t.Helper()
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.Text(72, 100, text)
		}
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// PDFInDir writes a fixture named name inside dir and returns its path.
func PDFInDir(t testing.TB, dir, name string, pages ...string) string {
	t.Helper()
	return WritePDF(t, filepath.Join(dir, name), pages...)
}
