package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

type VoteHandler struct {
	service        ports.VoteService
	userService    ports.UserService
	resultsService ports.ResultsService
	logger         *slog.Logger
}

func NewVoteHandler(service ports.VoteService, userService ports.UserService, resultsService ports.ResultsService, logger *slog.Logger) *VoteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VoteHandler{
		service:        service,
		userService:    userService,
		resultsService: resultsService,
		logger:         logger,
	}
}

type castVoteRequest struct {
	VoterID    uuid.UUID  `json:"voterId"`
	Date       string     `json:"date"`
	VotedForID *uuid.UUID `json:"votedForId"`
	IsNullVote bool       `json:"isNullVote"`
}

type castVoteResponse struct {
	Message string    `json:"message"`
	VoteID  uuid.UUID `json:"voteId"`
	VotedAt time.Time `json:"votedAt"`
}

type checkVoteResponse struct {
	HasVoted bool               `json:"hasVoted"`
	Vote     *domain.VoteRecord `json:"vote,omitempty"`
}

type voteHistoryResponse struct {
	Votes []domain.VoteRecord `json:"votes"`
}

type candidatesResponse struct {
	Candidates []domain.Candidate `json:"candidates"`
}

// CastVote godoc
// @Summary      Casts the caller's vote for a date
// @Description  Either votedForId or isNullVote must be set, not both. Each user votes once per date.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      castVoteRequest  true  "Vote"
// @Success      201   {object}  castVoteResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /votes/cast [post]
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrUnauthenticated)
		return
	}

	var req castVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.VoterID == uuid.Nil || req.Date == "" {
		writeError(w, r, h.logger, fmt.Errorf("%w: voter ID and date are required", domain.ErrInvalidInput))
		return
	}

	vote, err := h.service.Cast(r.Context(), identity, ports.CastVoteInput{
		VoterID:    req.VoterID,
		Date:       req.Date,
		VotedForID: req.VotedForID,
		IsNullVote: req.IsNullVote,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, castVoteResponse{
		Message: "Vote cast successfully",
		VoteID:  vote.ID,
		VotedAt: vote.VotedAt,
	})
}

// CheckVote godoc
// @Summary      Checks whether a user voted on a date
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Param        date    path      string  true  "Date (YYYY-MM-DD)"
// @Success      200     {object}  checkVoteResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /votes/check/{userId}/{date} [get]
func (h *VoteHandler) CheckVote(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrUnauthenticated)
		return
	}

	userID, err := uuidParam(r, "userId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	record, err := h.service.Check(r.Context(), identity, userID, chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, checkVoteResponse{HasVoted: record != nil, Vote: record})
}

// VoteHistory godoc
// @Summary      Lists the votes a user has cast
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  voteHistoryResponse
// @Failure      403     {object}  errorResponse
// @Router       /votes/user/{userId} [get]
func (h *VoteHandler) VoteHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrUnauthenticated)
		return
	}

	userID, err := uuidParam(r, "userId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	votes, err := h.service.History(r.Context(), identity, userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, voteHistoryResponse{Votes: votes})
}

// Candidates godoc
// @Summary      Lists the employees that can receive votes
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  candidatesResponse
// @Router       /votes/candidates [get]
func (h *VoteHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.userService.Candidates(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if candidates == nil {
		candidates = []domain.Candidate{}
	}
	writeJSON(w, http.StatusOK, candidatesResponse{Candidates: candidates})
}

// Standings godoc
// @Summary      Shows the cumulative standings
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.StandingsReport
// @Router       /votes/standings [get]
func (h *VoteHandler) Standings(w http.ResponseWriter, r *http.Request) {
	report, err := h.resultsService.Standings(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", domain.ErrInvalidInput, name)
	}
	return id, nil
}
