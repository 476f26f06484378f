package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
)

type VoteRepository interface {
	Save(ctx context.Context, vote *domain.Vote) error
	GetByVoterAndDate(ctx context.Context, voterID uuid.UUID, date string) (*domain.Vote, error)
	ListByVoter(ctx context.Context, voterID uuid.UUID) ([]domain.Vote, error)
	ListByDate(ctx context.Context, date string) ([]domain.Vote, error)
	ListAll(ctx context.Context) ([]domain.Vote, error)
}

type CastVoteInput struct {
	VoterID    uuid.UUID
	Date       string
	VotedForID *uuid.UUID
	IsNullVote bool
}

type VoteService interface {
	Cast(ctx context.Context, actor domain.Identity, input CastVoteInput) (*domain.Vote, error)
	Check(ctx context.Context, actor domain.Identity, userID uuid.UUID, date string) (*domain.VoteRecord, error)
	History(ctx context.Context, actor domain.Identity, userID uuid.UUID) ([]domain.VoteRecord, error)
}
