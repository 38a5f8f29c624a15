// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/pdiddy/reportbinder/internal/export"
	"github.com/pdiddy/reportbinder/internal/preflight"
	"github.com/pdiddy/reportbinder/pkg/types"
)

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if shouldColorize(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	return tw
}

func paint(colorize bool, c text.Colors, s string) string {
	if !colorize {
		return s
	}
	return c.Sprint(s)
}

// sheetRows lists exported sheets with their logical start page, then the
// failed ones.
func sheetRows(sheets []types.Sheet, failed []export.SheetError, colorize bool) []table.Row {
	rows := make([]table.Row, 0, len(sheets)+len(failed))
	page := 1
	for i, s := range sheets {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1), s.Name, s.Title,
			strconv.Itoa(page), strconv.Itoa(s.Pages), strconv.Itoa(s.BlankRemoved),
			paint(colorize, text.Colors{text.FgGreen}, "ok"),
		})
		page += s.Pages
	}
	for _, f := range failed {
		rows = append(rows, table.Row{
			"-", f.Sheet, "", "", "", "",
			paint(colorize, text.Colors{text.FgRed}, fmt.Sprintf("%s: %v", f.Stage, f.Err)),
		})
	}
	return rows
}

// renderSheets prints the per-sheet export summary.
func renderSheets(w io.Writer, sheets []types.Sheet, failed []export.SheetError) {
	if len(sheets) == 0 && len(failed) == 0 {
		return
	}
	tw := newTable(w)
	tw.AppendHeader(table.Row{"#", "Sheet", "Title", "Page", "Pages", "Blank", "Status"})
	tw.AppendRows(sheetRows(sheets, failed, shouldColorize(w)))
	tw.AppendFooter(table.Row{"", "", "", "", strconv.Itoa(types.TotalPages(sheets)), "", ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	tw.Render()
}

func preflightRows(statuses []preflight.Status, colorize bool) []table.Row {
	rows := make([]table.Row, 0, len(statuses))
	for _, s := range statuses {
		state := paint(colorize, text.Colors{text.FgGreen}, "OK")
		switch {
		case s.Available:
		case s.Optional:
			state = paint(colorize, text.Colors{text.FgYellow}, "WARN")
		default:
			state = paint(colorize, text.Colors{text.FgRed}, "ERROR")
		}
		rows = append(rows, table.Row{s.Name, s.Target, s.Description, state, s.Detail})
	}
	return rows
}

// renderPreflight prints the check results.
func renderPreflight(w io.Writer, statuses []preflight.Status) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"Component", "Target", "Used for", "Status", "Detail"})
	tw.AppendRows(preflightRows(statuses, shouldColorize(w)))
	tw.Render()
}
