package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

type voteService struct {
	dateRepo ports.DateRepository
	userRepo ports.UserRepository
	voteRepo ports.VoteRepository
	logger   *slog.Logger
}

func NewVoteService(dateRepo ports.DateRepository, userRepo ports.UserRepository, voteRepo ports.VoteRepository, logger *slog.Logger) ports.VoteService {
	return &voteService{
		dateRepo: dateRepo,
		userRepo: userRepo,
		voteRepo: voteRepo,
		logger:   resolveLogger(logger),
	}
}

// Cast records a single, immutable vote. Duplicates are rejected by the
// store's unique constraint on (voter, date).
func (s *voteService) Cast(ctx context.Context, actor domain.Identity, input ports.CastVoteInput) (*domain.Vote, error) {
	if input.VoterID == uuid.Nil {
		return nil, fmt.Errorf("%w: voter ID and date are required", domain.ErrInvalidInput)
	}
	if actor.ID != input.VoterID {
		return nil, domain.ErrVoteForOthers
	}

	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}

	vote := &domain.Vote{
		ID:         uuid.New(),
		VoterID:    input.VoterID,
		Date:       date,
		VotedForID: input.VotedForID,
		IsNullVote: input.IsNullVote,
	}
	if !vote.Valid() {
		return nil, fmt.Errorf("%w: provide either votedForId or isNullVote, not both", domain.ErrInvalidInput)
	}

	votingDate, err := s.dateRepo.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	if !votingDate.IsActive {
		return nil, domain.ErrDateInactive
	}

	if input.VotedForID != nil {
		candidate, err := s.userRepo.GetByID(ctx, *input.VotedForID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrInvalidCandidate
			}
			return nil, fmt.Errorf("failed to get candidate: %w", err)
		}
		if !candidate.IsEmployee() {
			return nil, domain.ErrInvalidCandidate
		}
	}

	if err := s.voteRepo.Save(ctx, vote); err != nil {
		return nil, err
	}

	s.logger.Info("vote cast", "vote_id", vote.ID, "voter_id", vote.VoterID, "date", vote.Date, "null_vote", vote.IsNullVote)
	return vote, nil
}

// Check returns the vote userID cast on date, or nil when there is none.
func (s *voteService) Check(ctx context.Context, actor domain.Identity, userID uuid.UUID, date string) (*domain.VoteRecord, error) {
	if err := authorizeSelfOrAdmin(actor, userID); err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}

	vote, err := s.voteRepo.GetByVoterAndDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check vote: %w", err)
	}
	if vote == nil {
		return nil, nil
	}

	names, err := s.names(ctx)
	if err != nil {
		return nil, err
	}
	record := toVoteRecord(*vote, names)
	return &record, nil
}

func (s *voteService) History(ctx context.Context, actor domain.Identity, userID uuid.UUID) ([]domain.VoteRecord, error) {
	if err := authorizeSelfOrAdmin(actor, userID); err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.ListByVoter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	names, err := s.names(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]domain.VoteRecord, 0, len(votes))
	for _, v := range votes {
		records = append(records, toVoteRecord(v, names))
	}
	return records, nil
}

func (s *voteService) names(ctx context.Context) (map[uuid.UUID]string, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func toVoteRecord(v domain.Vote, names map[uuid.UUID]string) domain.VoteRecord {
	record := domain.VoteRecord{
		Date:       v.Date,
		IsNullVote: v.IsNullVote,
		VotedAt:    v.VotedAt,
	}
	if !v.IsNullVote && v.VotedForID != nil {
		record.VotedFor = &domain.UserRef{ID: *v.VotedForID, Name: names[*v.VotedForID]}
	}
	return record
}

func authorizeSelfOrAdmin(actor domain.Identity, userID uuid.UUID) error {
	if actor.ID != userID && !actor.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}
