// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reportbinder/internal/preflight"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the renderer, fonts, and images a build needs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadBuildConfig(cmd)
		if err != nil {
			return err
		}
		statuses := preflight.Check(cmd.Context(), cfg)
		renderPreflight(os.Stdout, statuses)
		if !preflight.Ready(statuses) {
			return fmt.Errorf("required components are missing")
		}
		return nil
	},
}

func init() {
	addExportFlags(checkCmd)
	addLayoutFlags(checkCmd)

	rootCmd.AddCommand(checkCmd)
}
