package ports

import (
	"context"

	"github.com/dailyvote/api/internal/core/domain"
)

type ExportService interface {
	// Export dumps every table; exportedBy is recorded in the metadata.
	Export(ctx context.Context, exportedBy string) (*domain.Export, error)
}
