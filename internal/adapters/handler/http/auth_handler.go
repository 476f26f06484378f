package http

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService ports.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	IsAdmin  bool      `json:"isAdmin"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type verifyResponse struct {
	User userResponse `json:"user"`
}

// Login godoc
// @Summary      Logs a user in
// @Description  Checks the username and password and returns a bearer token valid for 24 hours.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User: userResponse{
			ID:       user.ID,
			Name:     user.Name,
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		},
	})
}

// Verify godoc
// @Summary      Verifies the caller's token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  verifyResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/verify [post]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrUnauthenticated)
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{User: userResponse{
		ID:       identity.ID,
		Name:     identity.Name,
		Username: identity.Username,
		IsAdmin:  identity.IsAdmin,
	}})
}
