package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
)

type ResolveTieInput struct {
	Date     string
	WinnerID uuid.UUID
}

type ResultsService interface {
	DateResults(ctx context.Context, date string) (*domain.DateResults, error)
	Standings(ctx context.Context) (*domain.StandingsReport, error)
	UnresolvedTies(ctx context.Context) ([]domain.UnresolvedTie, error)
	ResolveTie(ctx context.Context, actor domain.Identity, input ResolveTieInput) (*domain.ResolvedTie, error)
	Progress(ctx context.Context, date string) (*domain.Progress, error)
	ProgressAll(ctx context.Context) (map[string]domain.ProgressSummary, error)
}
