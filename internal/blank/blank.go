// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package blank finds and drops pages that carry no meaningful text. A page
// is blank when its extracted text, trimmed, is shorter than a threshold;
// spreadsheet renderers emit such pages for empty print ranges and stray
// formatting past the last used cell.
package blank

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DefaultMinChars is the text length below which a page counts as blank.
const DefaultMinChars = 10

// ErrAllPagesBlank is returned by Remove when no page would remain.
var ErrAllPagesBlank = errors.New("every page is blank")

// IsBlankText reports whether text, trimmed, has fewer than minChars characters.
func IsBlankText(text string, minChars int) bool {
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	return utf8.RuneCountInString(strings.TrimSpace(text)) < minChars
}

// Detect returns the 1-based numbers of the blank pages in the PDF at path
// and its total page count. Pages whose text cannot be extracted are kept.
func Detect(path string, minChars int) (blank []int, total int, err error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	total = r.NumPage()
	for i := 1; i <= total; i++ {
		text, err := pageText(r, i)
		if err != nil {
			continue
		}
		if IsBlankText(text, minChars) {
			blank = append(blank, i)
		}
	}
	return blank, total, nil
}

// pageText extracts the plain text of page num. The pdf package reports some
// malformed content by panicking, which is turned into an error here.
func pageText(r *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read pdf page %d: %v", num, rec)
		}
	}()

	p := r.Page(num)
	if p.V.IsNull() {
		return "", fmt.Errorf("read pdf page %d: no page object", num)
	}
	text, err = p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("read pdf page %d: %w", num, err)
	}
	return text, nil
}

// Remove rewrites the PDF at path without its blank pages. It returns the
// number of pages kept and removed. The file is left untouched when no page
// is blank, and ErrAllPagesBlank is returned when every page is.
func Remove(path string, minChars int) (kept, removed int, err error) {
	blank, total, err := Detect(path, minChars)
	if err != nil {
		return 0, 0, err
	}
	if len(blank) == 0 {
		return total, 0, nil
	}
	if len(blank) == total {
		return 0, total, fmt.Errorf("%s: %w", path, ErrAllPagesBlank)
	}

	pages := make([]string, len(blank))
	for i, n := range blank {
		pages[i] = strconv.Itoa(n)
	}

	tmp := path + ".tmp"
	conf := model.NewDefaultConfiguration()
	if err := api.RemovePagesFile(path, tmp, pages, conf); err != nil {
		os.Remove(tmp)
		return 0, 0, fmt.Errorf("removing blank pages from %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, 0, fmt.Errorf("replacing %s: %w", path, err)
	}
	return total - len(blank), len(blank), nil
}
