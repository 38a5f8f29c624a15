// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// commander abstracts process execution for testing.
type commander interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

type osCommander struct{}

func (osCommander) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osCommander) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// ProfileDir is the LibreOffice user profile created inside the output
// directory. A private profile keeps a running LibreOffice instance, which
// holds the default profile, from swallowing the conversion.
const ProfileDir = ".lo-profile"

// profileURL returns the file URL LibreOffice expects for a profile at dir.
func profileURL(dir string) string {
	p := filepath.ToSlash(dir)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// convertArgs returns the LibreOffice arguments that convert src to PDF in
// outDir using the user profile at profile (a file URL).
func convertArgs(src, outDir, profile string) []string {
	return []string{
		"-env:UserInstallation=" + profile,
		"--headless", "--norestore", "--convert-to", "pdf", "--outdir", outDir, src,
	}
}

// expectedPDF is the file LibreOffice writes for src: the same base name
// with a .pdf extension.
func expectedPDF(src, outDir string) string {
	base := filepath.Base(src)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
}

// checkOutput confirms the renderer wrote a non-empty PDF at path. The
// renderer's stderr is attached to the error when it has anything to say.
func checkOutput(path string, stderr *bytes.Buffer) error {
	info, err := os.Stat(path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		msg = "no output"
	}
	return fmt.Errorf("renderer wrote no PDF at %s: %s", path, msg)
}

// SofficeExporter renders workbooks with a LibreOffice installation on the
// host.
type SofficeExporter struct {
	bin  string
	exec commander
}

// NewSofficeExporter creates an exporter that runs bin. It verifies that bin
// can be found on PATH.
func NewSofficeExporter(bin string) (*SofficeExporter, error) {
	return newSofficeExporter(bin, osCommander{})
}

func newSofficeExporter(bin string, c commander) (*SofficeExporter, error) {
	if bin == "" {
		bin = "soffice"
	}
	path, err := c.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("LibreOffice binary %q not found: %w", bin, err)
	}
	return &SofficeExporter{bin: path, exec: c}, nil
}

// Name returns "soffice".
func (s *SofficeExporter) Name() string { return "soffice" }

// Export converts the workbook at workbookPath to PDF in outDir.
func (s *SofficeExporter) Export(ctx context.Context, workbookPath, outDir string) (string, error) {
	out := expectedPDF(workbookPath, outDir)
	os.Remove(out)

	var stderr bytes.Buffer
	args := convertArgs(workbookPath, outDir, profileURL(filepath.Join(outDir, ProfileDir)))
	if err := s.exec.Run(ctx, s.bin, args, io.Discard, &stderr); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("converting %s: %w", filepath.Base(workbookPath), ctxErr)
		}
		return "", fmt.Errorf("converting %s: %w: %s", filepath.Base(workbookPath), err, strings.TrimSpace(stderr.String()))
	}
	if err := checkOutput(out, &stderr); err != nil {
		return "", err
	}
	return out, nil
}
