// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reportbinder/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build <workbook|directory>",
	Short: "Build the bookmarked PDF report from a workbook",
	Long: `Build exports every visible worksheet, drops blank pages, renders the cover
and table of contents, merges everything into one PDF, numbers the body pages,
and writes the outline. A directory argument must hold exactly one .xlsx file.

The compiled date is printed on the cover and selects the reporting period,
one month earlier. It defaults to the current month.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("compiled", "", `compiled date, e.g. "114年11月編製" (default current month)`)
	buildCmd.Flags().StringP("output", "o", "", "output PDF (default <workbook>_merged.pdf next to the workbook)")
	buildCmd.Flags().Bool("open", false, "open the report when done")
	buildCmd.Flags().Bool("keep-temp", false, "keep the per-sheet PDFs and the front matter")
	addExportFlags(buildCmd)
	addLayoutFlags(buildCmd)

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadBuildConfig(cmd)
	if err != nil {
		return err
	}
	compiled, _ := cmd.Flags().GetString("compiled")
	output, _ := cmd.Flags().GetString("output")

	result, err := pipeline.Run(cmd.Context(), pipeline.Request{
		Workbook:    args[0],
		CompileDate: compiled,
		Output:      output,
		Config:      cfg,
	}, logger)
	if result != nil && (len(result.Sheets) > 0 || len(result.Failed) > 0) {
		renderSheets(os.Stdout, result.Sheets, result.Failed)
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nWrote %s: %d pages (%d front, %d sheets, %d failed, %d blank pages removed)\n",
		result.Output, result.TotalPages, result.FrontPages,
		len(result.Sheets), len(result.Failed), result.BlankRemoved)
	if result.WorkDir != "" {
		fmt.Printf("Intermediate files kept in %s\n", result.WorkDir)
	}

	if open, _ := cmd.Flags().GetBool("open"); open {
		if err := openFile(result.Output); err != nil {
			logger.Warn("could not open report", "path", result.Output, "error", err)
		}
	}
	return nil
}
