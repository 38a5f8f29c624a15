// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/reportbinder/pkg/types"
)

// registerDefaults publishes every default setting to v so nested keys such
// as export.timeout can be overridden from the environment
// (REPORTBINDER_EXPORT_TIMEOUT).
func registerDefaults(v *viper.Viper) error {
	data, err := yaml.Marshal(types.DefaultBuildConfig())
	if err != nil {
		return err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	for key, value := range tree {
		v.SetDefault(key, value)
	}
	return nil
}

// loadBuildConfig merges defaults, the config file, and the environment, then
// applies the stage flags set on cmd.
func loadBuildConfig(cmd *cobra.Command) (types.BuildConfig, error) {
	cfg := types.DefaultBuildConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		b, _ := flags.GetString("backend")
		cfg.Export.Backend = types.ExportBackend(b)
	}
	if flags.Changed("soffice") {
		cfg.Export.SofficeBin, _ = flags.GetString("soffice")
	}
	if flags.Changed("image") {
		cfg.Export.ContainerImage, _ = flags.GetString("image")
	}
	if flags.Changed("timeout") {
		cfg.Export.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("include-hidden") {
		cfg.Export.IncludeHidden, _ = flags.GetBool("include-hidden")
	}
	if flags.Changed("keep-blank") {
		keep, _ := flags.GetBool("keep-blank")
		cfg.BlankPages.Enabled = !keep
	}
	if flags.Changed("font") {
		cfg.Layout.FontPath, _ = flags.GetString("font")
	}
	if flags.Changed("bold-font") {
		cfg.Layout.BoldFontPath, _ = flags.GetString("bold-font")
	}
	if flags.Changed("keep-temp") {
		cfg.KeepTemp, _ = flags.GetBool("keep-temp")
	}
	return cfg, nil
}

// addExportFlags registers the flags that tune sheet export.
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "", "export backend: soffice or container (default soffice)")
	cmd.Flags().String("soffice", "", "LibreOffice binary (default soffice)")
	cmd.Flags().String("image", "", "LibreOffice container image for the container backend")
	cmd.Flags().Duration("timeout", 0, "time limit for rendering one sheet (default 2m)")
	cmd.Flags().Bool("include-hidden", false, "export hidden worksheets too")
	cmd.Flags().Bool("keep-blank", false, "keep blank pages in the exported sheets")
}

// addLayoutFlags registers the flags that tune the cover and TOC pages.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("font", "", "TrueType font for cover and TOC text")
	cmd.Flags().String("bold-font", "", "bold TrueType font for the cover")
}
