package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

type contextKey string

const identityKey contextKey = "identity"

const accessTokenCookie = "access_token"

type AuthMiddleware struct {
	authService ports.AuthService
	authorizer  ports.Authorizer
	logger      *slog.Logger
}

func NewAuthMiddleware(authService ports.AuthService, authorizer ports.Authorizer, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		authService: authService,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// Authenticate resolves the caller from the bearer token, falling back to
// the access_token cookie.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.authService.Authenticate(r.Context(), tokenFromRequest(r))
		if err != nil {
			writeError(w, r, m.logger, err)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, *identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authorize checks the caller's role against the route policy.
func (m *AuthMiddleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFrom(r.Context())
		if !ok {
			writeError(w, r, m.logger, domain.ErrUnauthenticated)
			return
		}

		allowed, err := m.authorizer.Authorize(identity.Role(), r.URL.Path, r.Method)
		if err != nil {
			writeError(w, r, m.logger, err)
			return
		}
		if !allowed {
			writeErrorMessage(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
