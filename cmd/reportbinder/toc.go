// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reportbinder/internal/export"
	"github.com/pdiddy/reportbinder/internal/toc"
)

var tocCmd = &cobra.Command{
	Use:   "toc",
	Short: "Render the cover and table of contents from an export manifest",
	Long: `Toc renders the cover page and the table of contents for the sheets listed
in a manifest written by the export command. Logical page numbers start at 1
on the first page after the front matter.`,
	Args: cobra.NoArgs,
	RunE: runTOC,
}

func init() {
	tocCmd.Flags().String("manifest", "export/"+export.ManifestFile, "manifest written by the export command")
	tocCmd.Flags().String("compiled", "", `compiled date, e.g. "114年11月編製" (default current month)`)
	tocCmd.Flags().StringP("output", "o", "toc.pdf", "output PDF")
	addLayoutFlags(tocCmd)

	rootCmd.AddCommand(tocCmd)
}

func runTOC(cmd *cobra.Command, args []string) error {
	cfg, err := loadBuildConfig(cmd)
	if err != nil {
		return err
	}
	manifestPath, _ := cmd.Flags().GetString("manifest")
	compiled, _ := cmd.Flags().GetString("compiled")
	output, _ := cmd.Flags().GetString("output")

	date := toc.CurrentCompileDate(time.Now())
	if compiled != "" {
		if date, err = toc.ParseCompileDate(compiled); err != nil {
			return err
		}
	}

	m, err := export.ReadManifest(manifestPath)
	if err != nil {
		return err
	}

	entries := toc.Entries(m.Sheets)
	pages, err := toc.Render(output, entries, date, cfg.Layout)
	if err != nil {
		return err
	}
	logger.Info("front matter rendered", "output", output, "pages", pages, "entries", len(entries))
	fmt.Printf("Wrote %s: %d page(s), %d entries, %s\n", output, pages, len(entries), date.Stamp())
	return nil
}
