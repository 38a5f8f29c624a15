// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExportBackend identifies the tool that renders a worksheet to PDF.
type ExportBackend string

const (
	BackendSoffice   ExportBackend = "soffice"
	BackendContainer ExportBackend = "container"
)

// ExportConfig holds settings for the sheet export stage.
type ExportConfig struct {
	// Backend selects the renderer: soffice (local LibreOffice) or container.
	Backend ExportBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// SofficeBin is the LibreOffice binary name or path (default "soffice").
	SofficeBin string `json:"soffice_bin" yaml:"soffice_bin" mapstructure:"soffice_bin"`

	// ContainerImage is the LibreOffice image used by the container backend.
	ContainerImage string `json:"container_image" yaml:"container_image" mapstructure:"container_image"`

	// ContainerEntrypoint overrides the image entrypoint (default "soffice").
	ContainerEntrypoint string `json:"container_entrypoint" yaml:"container_entrypoint" mapstructure:"container_entrypoint"`

	// Timeout bounds a single sheet conversion (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// IncludeHidden exports hidden worksheets as well.
	IncludeHidden bool `json:"include_hidden" yaml:"include_hidden" mapstructure:"include_hidden"`

	// TitleColumns is how many cells of the first row are scanned for a
	// sheet title (default 80).
	TitleColumns int `json:"title_columns" yaml:"title_columns" mapstructure:"title_columns"`
}

// BlankPageConfig holds settings for blank page removal.
type BlankPageConfig struct {
	// Enabled turns blank page removal on (default true).
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// MinChars is the number of non-whitespace characters a page needs to be
	// kept (default 10).
	MinChars int `json:"min_chars" yaml:"min_chars" mapstructure:"min_chars"`
}

// LayoutConfig holds the text, fonts, and images of the cover and TOC pages.
type LayoutConfig struct {
	// FontPath is a TrueType font used for cover and TOC text. It must cover
	// every glyph in the titles. Empty falls back to the Helvetica core font.
	FontPath string `json:"font_path" yaml:"font_path" mapstructure:"font_path"`

	// BoldFontPath is used for the cover subtitle and footer. Empty reuses FontPath.
	BoldFontPath string `json:"bold_font_path" yaml:"bold_font_path" mapstructure:"bold_font_path"`

	// CoverImage is drawn over the whole cover page when the file exists.
	CoverImage string `json:"cover_image" yaml:"cover_image" mapstructure:"cover_image"`

	// InfoImage is drawn after the last TOC line when the file exists.
	InfoImage string `json:"info_image" yaml:"info_image" mapstructure:"info_image"`

	// CoverTitle is the main cover title, used to align the subtitle.
	CoverTitle string `json:"cover_title" yaml:"cover_title" mapstructure:"cover_title"`

	// Region follows the reporting period on the cover subtitle.
	Region string `json:"region" yaml:"region" mapstructure:"region"`

	// Agency is printed above the compiled date at the bottom of the cover.
	Agency string `json:"agency" yaml:"agency" mapstructure:"agency"`

	// TOCTitle is the report name printed at the top of each TOC page.
	TOCTitle string `json:"toc_title" yaml:"toc_title" mapstructure:"toc_title"`

	// TOCHeading is printed under TOCTitle.
	TOCHeading string `json:"toc_heading" yaml:"toc_heading" mapstructure:"toc_heading"`

	// CoverBookmark and TOCBookmark label the two front-matter outline entries.
	CoverBookmark string `json:"cover_bookmark" yaml:"cover_bookmark" mapstructure:"cover_bookmark"`
	TOCBookmark   string `json:"toc_bookmark" yaml:"toc_bookmark" mapstructure:"toc_bookmark"`
}

// PageNumberConfig describes the page number stamp.
type PageNumberConfig struct {
	FontName string  `json:"font_name" yaml:"font_name" mapstructure:"font_name"`
	FontSize int     `json:"font_size" yaml:"font_size" mapstructure:"font_size"`
	Bottom   float64 `json:"bottom" yaml:"bottom" mapstructure:"bottom"`
}

// BuildConfig groups all stage configurations for the pipeline.
type BuildConfig struct {
	Export      ExportConfig     `json:"export" yaml:"export" mapstructure:"export"`
	BlankPages  BlankPageConfig  `json:"blank_pages" yaml:"blank_pages" mapstructure:"blank_pages"`
	Layout      LayoutConfig     `json:"layout" yaml:"layout" mapstructure:"layout"`
	PageNumbers PageNumberConfig `json:"page_numbers" yaml:"page_numbers" mapstructure:"page_numbers"`

	// OutputSuffix is appended to the workbook stem to name the output PDF.
	OutputSuffix string `json:"output_suffix" yaml:"output_suffix" mapstructure:"output_suffix"`

	// KeepTemp leaves the per-sheet PDFs and the TOC on disk for inspection.
	KeepTemp bool `json:"keep_temp" yaml:"keep_temp" mapstructure:"keep_temp"`
}

// DefaultBuildConfig returns the configuration used when no config file or
// flag overrides a value.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Export: ExportConfig{
			Backend:             BackendSoffice,
			SofficeBin:          "soffice",
			ContainerImage:      "libreoffice:latest",
			ContainerEntrypoint: "soffice",
			Timeout:             2 * time.Minute,
			TitleColumns:        80,
		},
		BlankPages: BlankPageConfig{
			Enabled:  true,
			MinChars: 10,
		},
		Layout: LayoutConfig{
			FontPath:      "fonts/NotoSansTC-Regular.ttf",
			BoldFontPath:  "fonts/NotoSansTC-Bold.ttf",
			CoverImage:    "assets/cover.png",
			InfoImage:     "assets/additionalinfo.png",
			CoverTitle:    "衛生統計摘要速報",
			Region:        "臺北市",
			Agency:        "臺北市政府衛生局",
			TOCTitle:      "臺 北 市 衛 生 統 計 摘 要 速 報",
			TOCHeading:    "目　次",
			CoverBookmark: "封面",
			TOCBookmark:   "目次",
		},
		PageNumbers: PageNumberConfig{
			FontName: "Helvetica",
			FontSize: 12,
			Bottom:   30,
		},
		OutputSuffix: "_merged",
	}
}
