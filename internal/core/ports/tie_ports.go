package ports

import (
	"context"

	"github.com/dailyvote/api/internal/core/domain"
)

type TieRepository interface {
	Create(ctx context.Context, resolution *domain.TieResolution) error
	GetByDate(ctx context.Context, date string) (*domain.TieResolution, error)
	List(ctx context.Context) ([]domain.TieResolution, error)
}
