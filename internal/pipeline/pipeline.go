// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a complete build: it exports every sheet of a
// workbook, renders the cover and TOC, merges them, numbers the body pages,
// and writes the outline.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/pdiddy/reportbinder/internal/assemble"
	"github.com/pdiddy/reportbinder/internal/export"
	"github.com/pdiddy/reportbinder/internal/toc"
	"github.com/pdiddy/reportbinder/internal/workbook"
	"github.com/pdiddy/reportbinder/pkg/types"
)

// ErrNoSheetsExported indicates every sheet failed to export.
var ErrNoSheetsExported = errors.New("no sheets exported")

// ErrOutputLocked indicates another build is writing the same output.
var ErrOutputLocked = errors.New("output is locked by another build")

// Request describes one build.
type Request struct {
	// Workbook is a workbook file or a directory holding exactly one.
	Workbook string
	// CompileDate is the compiled-date stamp, e.g. "114年11月編製". Empty
	// means the current month.
	CompileDate string
	// Output is the PDF to write. Empty means "<stem><suffix>.pdf" next to
	// the workbook.
	Output string
	Config types.BuildConfig
	// Exporter overrides the backend selected by Config.Export.
	Exporter export.Exporter
}

// Result summarises a finished build.
type Result struct {
	Output       string
	Sheets       []types.Sheet
	Failed       []export.SheetError
	Skipped      int
	BlankRemoved int
	FrontPages   int
	TotalPages   int
	Bookmarks    []types.Bookmark
	// WorkDir holds the intermediate files when Config.KeepTemp is set.
	WorkDir string
}

// DefaultOutput returns the output path used when none is given.
func DefaultOutput(workbookPath, suffix string) string {
	base := filepath.Base(workbookPath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(filepath.Dir(workbookPath), stem+suffix+".pdf")
}

// Run executes a build. Sheets that fail to export are logged and left out;
// the build fails only when the compiled date is invalid, the workbook
// cannot be found, nothing exports, or assembling the output fails.
func Run(ctx context.Context, req Request, log *slog.Logger) (*Result, error) {
	cfg := req.Config

	date, err := compileDate(req.CompileDate)
	if err != nil {
		return nil, err
	}
	if err := toc.CheckLayout(cfg.Layout); err != nil {
		return nil, err
	}

	path, err := workbook.Locate(req.Workbook)
	if err != nil {
		return nil, err
	}

	output := req.Output
	if output == "" {
		output = DefaultOutput(path, cfg.OutputSuffix)
	}
	if output, err = filepath.Abs(output); err != nil {
		return nil, fmt.Errorf("resolving output path: %w", err)
	}

	lock := flock.New(output + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, output)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("failed to release output lock", "error", err)
		}
		os.Remove(lock.Path())
	}()

	ex := req.Exporter
	if ex == nil {
		if ex, err = export.NewExporter(ctx, cfg.Export); err != nil {
			return nil, err
		}
	}

	wb, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	workDir, err := os.MkdirTemp("", "reportbinder-*")
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	result := &Result{Output: output}
	if cfg.KeepTemp {
		result.WorkDir = workDir
	} else {
		defer os.RemoveAll(workDir)
	}

	log.Info("exporting sheets", "workbook", path, "backend", ex.Name(), "compiled", date.Stamp())
	exported, err := export.ExportSheets(ctx, ex, wb, cfg, workDir, log)
	result.Sheets = exported.Sheets
	result.Failed = exported.Failed
	result.Skipped = exported.Skipped
	result.BlankRemoved = exported.BlankRemoved
	if err != nil {
		return result, err
	}
	if len(exported.Sheets) == 0 {
		return result, fmt.Errorf("%w: %d failed, %d hidden skipped", ErrNoSheetsExported,
			len(exported.Failed), exported.Skipped)
	}

	if err := assembleReport(ctx, result, date, cfg, workDir, log); err != nil {
		return result, err
	}
	return result, nil
}

func compileDate(text string) (toc.CompileDate, error) {
	if text == "" {
		return toc.CurrentCompileDate(time.Now()), nil
	}
	return toc.ParseCompileDate(text)
}

// assembleReport renders the front matter, merges it with the exported
// sheets into result.Output, numbers the pages, writes the outline, and
// checks the outcome.
func assembleReport(ctx context.Context, result *Result, date toc.CompileDate, cfg types.BuildConfig, workDir string, log *slog.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries := toc.Entries(result.Sheets)
	tocPath := filepath.Join(workDir, "toc.pdf")
	rendered, err := toc.Render(tocPath, entries, date, cfg.Layout)
	if err != nil {
		return err
	}
	log.Debug("front matter rendered", "pages", rendered, "entries", len(entries))

	paths := make([]string, len(result.Sheets))
	for i, s := range result.Sheets {
		paths[i] = s.PDFPath
	}
	front, err := assemble.Merge(tocPath, paths, result.Output)
	if err != nil {
		return err
	}
	result.FrontPages = front

	style := assemble.NumberStyle{
		FontName: cfg.PageNumbers.FontName,
		FontSize: cfg.PageNumbers.FontSize,
		Bottom:   cfg.PageNumbers.Bottom,
	}
	if err := assemble.StampPageNumbers(result.Output, front, style); err != nil {
		return err
	}

	bms := assemble.Outline(front, result.Sheets, assemble.OutlineLabels{
		Cover: cfg.Layout.CoverBookmark,
		TOC:   cfg.Layout.TOCBookmark,
	})
	if err := assemble.ApplyBookmarks(result.Output, bms); err != nil {
		return err
	}
	result.Bookmarks = bms

	return verify(result)
}

// verify checks the written PDF: its page count must equal the front matter
// plus every sheet's pages, and its outline must hold the two front matter
// entries plus one per sheet.
func verify(result *Result) error {
	total, err := assemble.PageCount(result.Output)
	if err != nil {
		return err
	}
	result.TotalPages = total
	if want := result.FrontPages + types.TotalPages(result.Sheets); total != want {
		return fmt.Errorf("verifying %s: %d pages, expected %d", result.Output, total, want)
	}

	outline, err := assemble.ReadOutline(result.Output)
	if err != nil {
		return err
	}
	if want := 2 + len(result.Sheets); len(outline) != want {
		return fmt.Errorf("verifying %s: %d bookmarks, expected %d", result.Output, len(outline), want)
	}
	return nil
}
