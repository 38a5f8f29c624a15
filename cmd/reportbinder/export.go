// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reportbinder/internal/export"
	"github.com/pdiddy/reportbinder/internal/workbook"
	"github.com/pdiddy/reportbinder/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <workbook|directory>",
	Short: "Render every worksheet to its own PDF",
	Long: `Export renders each visible worksheet to "<workbook>_<sheet>.pdf" in the
output directory, drops blank pages, and writes manifest.yaml listing the
sheets, their titles, and page counts. The manifest feeds the toc command.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("out-dir", "export", "directory for the sheet PDFs and manifest.yaml")
	addExportFlags(exportCmd)

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadBuildConfig(cmd)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	if outDir, err = filepath.Abs(outDir); err != nil {
		return err
	}

	ex, err := export.NewExporter(cmd.Context(), cfg.Export)
	if err != nil {
		return err
	}
	return exportWorkbook(cmd.Context(), ex, args[0], cfg, outDir, os.Stdout)
}

// exportWorkbook exports the workbook at target into outDir and writes the
// manifest. Sheets that fail are reported and left out of the manifest; the
// command fails only when no sheet exported.
func exportWorkbook(ctx context.Context, ex export.Exporter, target string, cfg types.BuildConfig, outDir string, w io.Writer) error {
	path, err := workbook.Locate(target)
	if err != nil {
		return err
	}
	wb, err := workbook.Open(path)
	if err != nil {
		return err
	}
	defer wb.Close()

	result, err := export.ExportSheets(ctx, ex, wb, cfg, outDir, logger)
	renderSheets(w, result.Sheets, result.Failed)
	if err != nil {
		return err
	}
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets exported from %s", path)
	}

	manifest := filepath.Join(outDir, export.ManifestFile)
	if err := export.WriteManifest(manifest, export.Manifest{
		Workbook:   path,
		ExportedAt: time.Now().UTC(),
		Sheets:     result.Sheets,
	}); err != nil {
		return err
	}
	if result.HasFailures() {
		logger.Warn("some sheets failed export and are left out of the manifest",
			"failed", len(result.Failed), "exported", len(result.Sheets))
	}
	fmt.Fprintf(w, "\nExported %d sheet(s), %d failed; manifest: %s\n", len(result.Sheets), len(result.Failed), manifest)
	return nil
}
