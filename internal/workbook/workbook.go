// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workbook reads the source spreadsheet: it locates the workbook,
// lists its worksheets in order, detects each sheet's title, and writes
// single-sheet copies for the renderer.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultTitleColumns is how many first-row cells Title scans by default.
const DefaultTitleColumns = 80

// ErrWorkbookNotFound indicates no workbook exists at the given path.
var ErrWorkbookNotFound = errors.New("workbook not found")

// ErrAmbiguousWorkbook indicates a directory holds more than one workbook.
var ErrAmbiguousWorkbook = errors.New("more than one workbook in directory")

var (
	ordinalPrefix = regexp.MustCompile(`^[\s\p{Zs}]*\p{Nd}+[.、\s\p{Zs}]*`)
	unsafeChars   = regexp.MustCompile(`[\\/:*?"<>|]`)
)

// SheetInfo describes one worksheet of the workbook.
type SheetInfo struct {
	// Index is the 0-based position in the workbook.
	Index  int
	Name   string
	Hidden bool
}

// Workbook wraps an open spreadsheet file.
type Workbook struct {
	path string
	f    *excelize.File
}

// Locate resolves path to a workbook file. A regular file is returned as-is.
// A directory must contain exactly one .xlsx file; Office lock files
// ("~$name.xlsx") are ignored.
func Locate(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrWorkbookNotFound, path)
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("reading directory %s: %w", path, err)
	}
	var found []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			found = append(found, filepath.Join(path, name))
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: no .xlsx file in %s", ErrWorkbookNotFound, path)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: %s holds %d", ErrAmbiguousWorkbook, path, len(found))
	}
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{path: path, f: f}, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string { return w.path }

// Stem returns the workbook file name without its extension.
func (w *Workbook) Stem() string {
	base := filepath.Base(w.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Sheets lists the worksheets in workbook order.
func (w *Workbook) Sheets() []SheetInfo {
	names := w.f.GetSheetList()
	sheets := make([]SheetInfo, 0, len(names))
	for i, name := range names {
		visible, err := w.f.GetSheetVisible(name)
		sheets = append(sheets, SheetInfo{
			Index:  i,
			Name:   name,
			Hidden: err == nil && !visible,
		})
	}
	return sheets
}

// Title returns the first non-blank value of the sheet's first row, scanning
// maxCols cells from the left, with any leading ordinal removed. Cells whose
// value is only an ordinal are passed over. When row 1 yields nothing, A1 is
// tried once more; an empty result means the caller should use the sheet name.
func (w *Workbook) Title(sheet string, maxCols int) string {
	if maxCols <= 0 {
		maxCols = DefaultTitleColumns
	}
	for col := 1; col <= maxCols; col++ {
		cell, err := excelize.CoordinatesToCellName(col, 1)
		if err != nil {
			break
		}
		v, err := w.f.GetCellValue(sheet, cell)
		if err != nil {
			break
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		if t := CleanTitle(v); t != "" {
			return t
		}
	}

	if v, err := w.f.GetCellValue(sheet, "A1"); err == nil {
		return CleanTitle(v)
	}
	return ""
}

// Isolate writes a copy of the workbook to dst in which sheet is the only
// visible and the active worksheet. Other sheets are hidden rather than
// deleted so cross-sheet formulas keep resolving.
func (w *Workbook) Isolate(sheet, dst string) error {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("reopening workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("looking up sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		return fmt.Errorf("sheet %q not in workbook", sheet)
	}

	if err := f.SetSheetVisible(sheet, true); err != nil {
		return fmt.Errorf("showing sheet %q: %w", sheet, err)
	}
	f.SetActiveSheet(idx)
	for _, name := range f.GetSheetList() {
		if name == sheet {
			continue
		}
		if err := f.SetSheetVisible(name, false); err != nil {
			return fmt.Errorf("hiding sheet %q: %w", name, err)
		}
	}

	if err := f.SaveAs(dst); err != nil {
		return fmt.Errorf("saving %s: %w", dst, err)
	}
	return nil
}

// CleanTitle strips a leading ordinal such as "1. ", "12、" or "3 " and
// surrounding whitespace.
func CleanTitle(s string) string {
	return strings.TrimSpace(ordinalPrefix.ReplaceAllString(s, ""))
}

// SafeName replaces characters that are not allowed in file names.
func SafeName(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}
