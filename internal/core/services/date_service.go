package services

import (
	"context"
	"fmt"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

type dateService struct {
	repo ports.DateRepository
}

func NewDateService(repo ports.DateRepository) ports.DateService {
	return &dateService{
		repo: repo,
	}
}

func (s *dateService) List(ctx context.Context) ([]domain.VotingDate, error) {
	dates, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list voting dates: %w", err)
	}
	return dates, nil
}
