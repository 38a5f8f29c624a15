// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the reportbinder CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reportbinder/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from the persistent logging flags before any command runs.
var logger = logging.Discard()

// rootCmd is the base command for the reportbinder CLI.
var rootCmd = &cobra.Command{
	Use:   "reportbinder",
	Short: "Bind a multi-sheet workbook into one bookmarked PDF report",
	Long: `reportbinder turns a statistics workbook into a single PDF report. Every
worksheet is rendered with LibreOffice, blank pages are dropped, and a cover
and table of contents are generated in front. Body pages are numbered and the
outline links the cover, the contents, and every sheet.

Each stage is also a subcommand: export renders the sheets, toc renders the
front matter from an export manifest, and build runs the whole pipeline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")
		l, err := logging.New(logging.Options{
			Level:  firstNonEmpty(level, viper.GetString("log.level")),
			Format: firstNonEmpty(format, viper.GetString("log.format")),
			Writer: os.Stderr,
		})
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./reportbinder.yaml or ~/.config/reportbinder/reportbinder.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, or error (default info)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json (default console)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("reportbinder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "reportbinder"))
		}
	}

	viper.SetEnvPrefix("REPORTBINDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := registerDefaults(viper.GetViper()); err != nil {
		fmt.Fprintln(os.Stderr, "Registering defaults:", err)
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
