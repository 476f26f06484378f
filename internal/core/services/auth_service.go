package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

const DefaultTokenTTL = 24 * time.Hour

type AuthService struct {
	userRepo  ports.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger
}

func NewAuthService(userRepo ports.UserRepository, jwtSecret []byte, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	if len(jwtSecret) == 0 {
		resolveLogger(logger).Warn("JWT secret is empty, tokens are not protected")
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    resolveLogger(logger),
	}
}

// Login checks the stored password as-is; passwords are kept in plain text.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = ports.NormalizeUsername(username)
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return token, user, nil
}

// Authenticate validates the token and reloads its user so that deleted
// accounts and role changes take effect immediately.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.Identity, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: no authentication token provided", domain.ErrUnauthenticated)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token has expired", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token subject", domain.ErrUnauthenticated)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token subject", domain.ErrUnauthenticated)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user not found", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &domain.Identity{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
