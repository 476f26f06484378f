package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
	"github.com/dailyvote/api/internal/core/tally"
)

type resultsService struct {
	dateRepo ports.DateRepository
	userRepo ports.UserRepository
	voteRepo ports.VoteRepository
	tieRepo  ports.TieRepository
	logger   *slog.Logger
}

func NewResultsService(dateRepo ports.DateRepository, userRepo ports.UserRepository, voteRepo ports.VoteRepository, tieRepo ports.TieRepository, logger *slog.Logger) ports.ResultsService {
	return &resultsService{
		dateRepo: dateRepo,
		userRepo: userRepo,
		voteRepo: voteRepo,
		tieRepo:  tieRepo,
		logger:   resolveLogger(logger),
	}
}

func (s *resultsService) DateResults(ctx context.Context, date string) (*domain.DateResults, error) {
	date, err := s.votingDate(ctx, date)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	votes, err := s.voteRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	resolution, err := s.tieRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get tie resolution: %w", err)
	}

	results := tally.Results(date, users, votes, resolution)
	return &results, nil
}

func (s *resultsService) Standings(ctx context.Context) (*domain.StandingsReport, error) {
	users, votes, resolutions, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	report := tally.Standings(users, votes, resolutions)
	return &report, nil
}

func (s *resultsService) UnresolvedTies(ctx context.Context) ([]domain.UnresolvedTie, error) {
	users, votes, resolutions, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return tally.UnresolvedTies(users, votes, resolutions), nil
}

// ResolveTie records the admin's pick for a tied date. A date can be
// resolved only once; later attempts fail with ErrTieAlreadyResolved.
func (s *resultsService) ResolveTie(ctx context.Context, actor domain.Identity, input ports.ResolveTieInput) (*domain.ResolvedTie, error) {
	if input.WinnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: date and winnerId are required", domain.ErrInvalidInput)
	}

	date, err := s.votingDate(ctx, input.Date)
	if err != nil {
		return nil, err
	}

	existing, err := s.tieRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get tie resolution: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrTieAlreadyResolved
	}

	votes, err := s.voteRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	outcome := tally.Decide(tally.Count(date, votes), nil)
	if outcome.State != domain.TieStateUnresolved {
		return nil, domain.ErrNoTie
	}
	if !outcome.IsTied(input.WinnerID) {
		return nil, domain.ErrWinnerNotTied
	}

	winner, err := s.userRepo.GetByID(ctx, input.WinnerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrWinnerNotTied
		}
		return nil, fmt.Errorf("failed to get winner: %w", err)
	}

	resolvedBy := actor.ID
	resolution := &domain.TieResolution{
		ID:         uuid.New(),
		Date:       date,
		WinnerID:   input.WinnerID,
		ResolvedBy: &resolvedBy,
	}
	if err := s.tieRepo.Create(ctx, resolution); err != nil {
		return nil, err
	}

	s.logger.Info("tie resolved", "date", date, "winner_id", winner.ID, "resolved_by", actor.ID)

	return &domain.ResolvedTie{
		ID:         resolution.ID,
		Date:       resolution.Date,
		WinnerID:   winner.ID,
		WinnerName: winner.Name,
		ResolvedAt: resolution.ResolvedAt,
	}, nil
}

func (s *resultsService) Progress(ctx context.Context, date string) (*domain.Progress, error) {
	date, err := s.votingDate(ctx, date)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	votes, err := s.voteRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	progress := tally.DateProgress(date, users, votes)
	return &progress, nil
}

func (s *resultsService) ProgressAll(ctx context.Context) (map[string]domain.ProgressSummary, error) {
	dates, err := s.dateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list voting dates: %w", err)
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	votes, err := s.voteRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return tally.ProgressByDate(dates, users, votes), nil
}

func (s *resultsService) votingDate(ctx context.Context, date string) (string, error) {
	date, err := domain.ParseDate(date)
	if err != nil {
		return "", err
	}
	if _, err := s.dateRepo.Get(ctx, date); err != nil {
		return "", err
	}
	return date, nil
}

func (s *resultsService) loadAll(ctx context.Context) ([]domain.User, []domain.Vote, []domain.TieResolution, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list users: %w", err)
	}
	votes, err := s.voteRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list votes: %w", err)
	}
	resolutions, err := s.tieRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list tie resolutions: %w", err)
	}
	return users, votes, resolutions, nil
}
