package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
