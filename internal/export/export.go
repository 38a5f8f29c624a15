// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders each worksheet of a workbook to its own PDF with
// pluggable backends, removes blank pages, and records the page counts that
// the TOC and outline are computed from.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/reportbinder/internal/assemble"
	"github.com/pdiddy/reportbinder/internal/blank"
	"github.com/pdiddy/reportbinder/internal/workbook"
	"github.com/pdiddy/reportbinder/pkg/types"
)

// sourceDir is the subdirectory of the work directory holding the
// single-sheet workbooks handed to the renderer.
const sourceDir = "src"

// Exporter renders a workbook to PDF. Different backends (local LibreOffice,
// LibreOffice in a container) implement this interface.
type Exporter interface {
	// Name identifies the backend in logs.
	Name() string

	// Export renders the workbook at workbookPath into outDir and returns
	// the path of the PDF it wrote.
	Export(ctx context.Context, workbookPath, outDir string) (string, error)
}

// Stage names the step of the per-sheet export that failed.
type Stage string

const (
	StageIsolate Stage = "isolate"
	StageRender  Stage = "render"
	StageBlank   Stage = "blank"
	StageCount   Stage = "count"
)

// SheetError records a sheet that could not be exported.
type SheetError struct {
	Sheet string
	Stage Stage
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %s: %v", e.Sheet, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error { return e.Err }

// Result holds the outcome of exporting a workbook.
type Result struct {
	// Sheets are the exported sheets in workbook order.
	Sheets []types.Sheet
	Failed []SheetError
	// Skipped counts hidden sheets that were not exported.
	Skipped int
	// BlankRemoved is the total number of blank pages dropped.
	BlankRemoved int
}

// HasFailures reports whether any sheet failed to export.
func (r Result) HasFailures() bool {
	return len(r.Failed) > 0
}

// PDFPaths returns the exported PDF paths in workbook order.
func (r Result) PDFPaths() []string {
	paths := make([]string, len(r.Sheets))
	for i, s := range r.Sheets {
		paths[i] = s.PDFPath
	}
	return paths
}

// SheetPDFName returns the file name of a sheet's PDF: "<stem>_<sheet>.pdf"
// with characters that are not allowed in file names replaced. ExportSheets
// appends "_2", "_3", ... to the sheet part when two sheets map to one name.
func SheetPDFName(stem, sheet string) string {
	return stem + "_" + workbook.SafeName(sheet) + ".pdf"
}

// ExportSheets exports every visible sheet of wb into workDir, in workbook
// order. A sheet that fails at any stage is logged, recorded in
// Result.Failed, and skipped; the remaining sheets are still exported. Only
// cancellation of ctx stops the batch early.
func ExportSheets(ctx context.Context, ex Exporter, wb *workbook.Workbook, cfg types.BuildConfig, workDir string, log *slog.Logger) (Result, error) {
	var result Result

	srcDir := filepath.Join(workDir, sourceDir)
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return result, fmt.Errorf("creating %s: %w", srcDir, err)
	}

	stem := wb.Stem()
	used := make(map[string]bool)
	for _, info := range wb.Sheets() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if info.Hidden && !cfg.Export.IncludeHidden {
			log.Debug("skipping hidden sheet", "sheet", info.Name)
			result.Skipped++
			continue
		}

		base := uniqueBase(used, stem+"_"+workbook.SafeName(info.Name))
		sheet, serr := exportSheet(ctx, ex, wb, info.Name, base, srcDir, workDir, cfg)
		if serr != nil {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			log.Warn("sheet export failed", "sheet", serr.Sheet, "stage", string(serr.Stage), "error", serr.Err)
			result.Failed = append(result.Failed, *serr)
			continue
		}

		log.Info("sheet exported",
			"sheet", sheet.Name,
			"title", sheet.Title,
			"pages", sheet.Pages,
			"removed", sheet.BlankRemoved,
		)
		result.Sheets = append(result.Sheets, sheet)
		result.BlankRemoved += sheet.BlankRemoved
	}
	return result, nil
}

// uniqueBase returns base, or base with a "_2", "_3", ... suffix when an
// earlier sheet already took it. Sheet names that differ only in characters
// SafeName replaces, or only in case, would otherwise share one file.
func uniqueBase(used map[string]bool, base string) string {
	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func exportSheet(ctx context.Context, ex Exporter, wb *workbook.Workbook, name, base, srcDir, outDir string, cfg types.BuildConfig) (types.Sheet, *SheetError) {
	fail := func(stage Stage, err error) (types.Sheet, *SheetError) {
		return types.Sheet{}, &SheetError{Sheet: name, Stage: stage, Err: err}
	}

	title := wb.Title(name, cfg.Export.TitleColumns)
	if title == "" {
		title = name
	}

	src := filepath.Join(srcDir, base+".xlsx")
	if err := wb.Isolate(name, src); err != nil {
		return fail(StageIsolate, err)
	}

	rctx := ctx
	if cfg.Export.Timeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, cfg.Export.Timeout)
		defer cancel()
	}
	pdfPath, err := ex.Export(rctx, src, outDir)
	if err != nil {
		return fail(StageRender, err)
	}

	sheet := types.Sheet{Name: name, Title: title, PDFPath: pdfPath}
	if cfg.BlankPages.Enabled {
		kept, removed, err := blank.Remove(pdfPath, cfg.BlankPages.MinChars)
		if err != nil {
			return fail(StageBlank, err)
		}
		sheet.Pages = kept
		sheet.BlankRemoved = removed
		return sheet, nil
	}

	n, err := assemble.PageCount(pdfPath)
	if err != nil {
		return fail(StageCount, err)
	}
	if n == 0 {
		return fail(StageCount, errors.New("exported PDF has no pages"))
	}
	sheet.Pages = n
	return sheet, nil
}
