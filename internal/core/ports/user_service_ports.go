package ports

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
)

type CreateUserInput struct {
	Name     string
	Username string
	Password string
	IsAdmin  bool
}

func (in *CreateUserInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = NormalizeUsername(in.Username)
	if in.Name == "" || in.Username == "" || in.Password == "" {
		return fmt.Errorf("%w: name, username, and password are required", domain.ErrInvalidInput)
	}
	return nil
}

// UserUpdate changes only the fields that are set.
type UserUpdate struct {
	Name     *string
	Username *string
	Password *string
	IsAdmin  *bool
}

func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Username == nil && u.Password == nil && u.IsAdmin == nil
}

// Normalize trims and lower-cases the provided fields and rejects blank values.
func (u *UserUpdate) Normalize() error {
	if u.Empty() {
		return domain.ErrNothingToApply
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		u.Name = &name
	}
	if u.Username != nil {
		username := NormalizeUsername(*u.Username)
		if username == "" {
			return fmt.Errorf("%w: username cannot be empty", domain.ErrInvalidInput)
		}
		u.Username = &username
	}
	if u.Password != nil && *u.Password == "" {
		return fmt.Errorf("%w: password cannot be empty", domain.ErrInvalidInput)
	}
	return nil
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) (*domain.User, error)
	Candidates(ctx context.Context) ([]domain.Candidate, error)
}
