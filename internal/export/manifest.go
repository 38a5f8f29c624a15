// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/reportbinder/pkg/types"
)

// ManifestFile is the name of the manifest written next to exported PDFs.
const ManifestFile = "manifest.yaml"

// Manifest lists the sheets of one export run so later stages can run
// separately.
type Manifest struct {
	Workbook   string        `yaml:"workbook"`
	ExportedAt time.Time     `yaml:"exported_at"`
	Sheets     []types.Sheet `yaml:"sheets"`
}

// WriteManifest writes m to path as YAML.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest. Every listed PDF
// must still exist.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	for _, s := range m.Sheets {
		if _, err := os.Stat(s.PDFPath); err != nil {
			return m, fmt.Errorf("manifest %s: sheet %q: %w", path, s.Name, err)
		}
	}
	return m, nil
}
