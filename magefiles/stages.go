//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Export renders every sheet of workbook into export/ with a manifest.
func Export(workbook string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "export", workbook, "--out-dir", "export")
}

// Toc renders the cover and contents from export/manifest.yaml.
func Toc(compiled string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "toc", "--manifest", "export/manifest.yaml", "--compiled", compiled, "-o", "export/toc.pdf")
}

// Report runs the whole pipeline on workbook.
func Report(workbook, compiled string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "build", workbook, "--compiled", compiled)
}
