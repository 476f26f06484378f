package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

type userService struct {
	repo   ports.UserRepository
	cache  ports.CandidateCache
	logger *slog.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.CandidateCache, logger *slog.Logger) ports.UserService {
	return &userService{
		repo:   repo,
		cache:  cache,
		logger: resolveLogger(logger),
	}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if err := input.Normalize(); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     input.Name,
		Username: input.Username,
		Password: input.Password,
		IsAdmin:  input.IsAdmin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.invalidateCandidates(ctx)
	s.logger.Info("user created", "user_id", user.ID, "username", user.Username, "is_admin", user.IsAdmin)
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, update ports.UserUpdate) (*domain.User, error) {
	if err := update.Normalize(); err != nil {
		return nil, err
	}

	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidateCandidates(ctx)
	s.logger.Info("user updated", "user_id", user.ID)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) (*domain.User, error) {
	if actor.ID == id {
		return nil, domain.ErrSelfDeletion
	}

	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidateCandidates(ctx)
	s.logger.Info("user deleted", "user_id", user.ID, "deleted_by", actor.ID)
	return user, nil
}

// Candidates serves the employee list from the cache, filling it on a miss.
// Cache failures are logged and fall through to the repository.
func (s *userService) Candidates(ctx context.Context) ([]domain.Candidate, error) {
	candidates, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("candidate cache read failed", "error", err)
	}
	if ok {
		return candidates, nil
	}

	gen, genErr := s.cache.Generation(ctx)
	if genErr != nil {
		s.logger.Warn("candidate cache generation read failed", "error", genErr)
	}

	candidates, err = s.repo.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	if genErr == nil {
		if _, err := s.cache.Set(ctx, gen, candidates); err != nil {
			s.logger.Warn("candidate cache write failed", "error", err)
		}
	}
	return candidates, nil
}

func (s *userService) invalidateCandidates(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("candidate cache invalidation failed", "error", err)
	}
}
