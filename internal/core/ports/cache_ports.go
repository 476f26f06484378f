package ports

import (
	"context"

	"github.com/dailyvote/api/internal/core/domain"
)

// CandidateCache holds the candidate list between user-management mutations.
//
// Every Invalidate advances the generation. Set only stores a list when the
// generation it was read under is still current, so a list loaded before a
// mutation never outlives it.
type CandidateCache interface {
	Get(ctx context.Context) ([]domain.Candidate, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, generation int64, candidates []domain.Candidate) (bool, error)
	Invalidate(ctx context.Context) error
}
