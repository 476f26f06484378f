package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dailyvote/api/internal/core/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: http.StatusText(status), Message: message})
}

// writeError maps domain errors to their HTTP status. Anything unknown is
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeErrorMessage(w, status, domain.ErrInternal.Error())
		return
	}
	writeErrorMessage(w, status, err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrVoteForOthers):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrTieAlreadyResolved),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrUserIsWinner),
		errors.Is(err, domain.ErrHasVotes):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDateNotFound),
		errors.Is(err, domain.ErrDateInactive),
		errors.Is(err, domain.ErrInvalidCandidate),
		errors.Is(err, domain.ErrNoTie),
		errors.Is(err, domain.ErrWinnerNotTied),
		errors.Is(err, domain.ErrSelfDeletion),
		errors.Is(err, domain.ErrNothingToApply):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	return nil
}
