// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/reportbinder/internal/container"
)

const (
	mountIn  = "/in"
	mountOut = "/out"
)

// ContainerExporter renders workbooks with LibreOffice inside a container
// image. It depends on a container.Runtime (docker or podman) injected at
// construction time.
type ContainerExporter struct {
	runtime    container.Runtime
	image      string
	entrypoint string
}

// NewContainerExporter creates an exporter that runs image with rt. It
// verifies that the image exists locally before returning.
func NewContainerExporter(ctx context.Context, rt container.Runtime, image, entrypoint string) (*ContainerExporter, error) {
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("LibreOffice image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerExporter{runtime: rt, image: image, entrypoint: entrypoint}, nil
}

// Name returns the backend name with the runtime, e.g. "container/podman".
func (c *ContainerExporter) Name() string { return "container/" + c.runtime.Name() }

// Export converts the workbook at workbookPath to PDF in outDir. The
// workbook's directory is mounted read-only at /in and outDir at /out.
func (c *ContainerExporter) Export(ctx context.Context, workbookPath, outDir string) (string, error) {
	srcDir, err := filepath.Abs(filepath.Dir(workbookPath))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", workbookPath, err)
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", outDir, err)
	}

	inside := mountIn + "/" + filepath.Base(workbookPath)
	spec := container.RunSpec{
		Image:      c.image,
		Entrypoint: c.entrypoint,
		Mounts: []container.Mount{
			{Source: srcDir, Target: mountIn, ReadOnly: true},
			{Source: absOut, Target: mountOut},
		},
		Workdir: mountOut,
		Args:    convertArgs(inside, mountOut, profileURL(mountOut+"/"+ProfileDir)),
	}

	out := expectedPDF(workbookPath, absOut)
	os.Remove(out)

	var stderr bytes.Buffer
	if err := c.runtime.Run(ctx, spec, io.Discard, &stderr); err != nil {
		return "", fmt.Errorf("converting %s: %w", filepath.Base(workbookPath), err)
	}
	if err := checkOutput(out, &stderr); err != nil {
		return "", err
	}
	return out, nil
}
