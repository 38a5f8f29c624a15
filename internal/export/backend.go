// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"

	"github.com/pdiddy/reportbinder/internal/container"
	"github.com/pdiddy/reportbinder/pkg/types"
)

// NewExporter selects the backend named by cfg.Backend. An empty backend
// means soffice.
func NewExporter(ctx context.Context, cfg types.ExportConfig) (Exporter, error) {
	switch cfg.Backend {
	case types.BackendSoffice, "":
		return NewSofficeExporter(cfg.SofficeBin)
	case types.BackendContainer:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewContainerExporter(ctx, rt, cfg.ContainerImage, cfg.ContainerEntrypoint)
	default:
		return nil, fmt.Errorf("unknown export backend %q (want %s or %s)",
			cfg.Backend, types.BackendSoffice, types.BackendContainer)
	}
}
