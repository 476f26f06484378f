package ports

import (
	"context"

	"github.com/dailyvote/api/internal/core/domain"
)

type DateRepository interface {
	List(ctx context.Context) ([]domain.VotingDate, error)
	Get(ctx context.Context, date string) (*domain.VotingDate, error)
	Ensure(ctx context.Context, date domain.VotingDate) (bool, error)
}

type DateService interface {
	List(ctx context.Context) ([]domain.VotingDate, error)
}
