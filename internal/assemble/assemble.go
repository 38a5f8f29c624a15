// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble joins the front matter and the exported sheets into the
// final report, stamps page numbers on the body pages, and writes the
// outline. Each step rewrites the output through a temporary file that is
// renamed into place.
package assemble

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func newConfig() *model.Configuration {
	return model.NewDefaultConfiguration()
}

// PageCount returns the number of pages of the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// tempPath returns path with its .pdf extension replaced by suffix, e.g.
// report.pdf -> report.tmp.pdf.
func tempPath(path, suffix string) string {
	return strings.TrimSuffix(path, ".pdf") + suffix
}

// replace renames tmp over path.
func replace(tmp, path string) error {
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Merge writes the front matter at frontPath followed by every sheet PDF, in
// order, to out and returns the number of front matter pages. An existing
// out is replaced.
func Merge(frontPath string, sheetPaths []string, out string) (int, error) {
	front, err := PageCount(frontPath)
	if err != nil {
		return 0, err
	}

	inFiles := make([]string, 0, len(sheetPaths)+1)
	inFiles = append(inFiles, frontPath)
	inFiles = append(inFiles, sheetPaths...)

	tmp := tempPath(out, ".tmp.pdf")
	if err := api.MergeCreateFile(inFiles, tmp, false, newConfig()); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("merging %d files: %w", len(inFiles), err)
	}
	if err := replace(tmp, out); err != nil {
		return 0, err
	}
	return front, nil
}
