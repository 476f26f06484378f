package ports

import (
	"context"

	"github.com/dailyvote/api/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error) // returns access_token, user, error
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

// Authorizer decides whether a role may perform method on path.
type Authorizer interface {
	Authorize(role, path, method string) (bool, error)
}
