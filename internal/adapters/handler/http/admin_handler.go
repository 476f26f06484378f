package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

type AdminHandler struct {
	resultsService ports.ResultsService
	exportService  ports.ExportService
	logger         *slog.Logger
}

func NewAdminHandler(resultsService ports.ResultsService, exportService ports.ExportService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		resultsService: resultsService,
		exportService:  exportService,
		logger:         logger,
	}
}

type unresolvedTiesResponse struct {
	UnresolvedTies []domain.UnresolvedTie `json:"unresolvedTies"`
}

type resolveTieRequest struct {
	Date     string    `json:"date"`
	WinnerID uuid.UUID `json:"winnerId"`
}

type resolveTieResponse struct {
	Message    string             `json:"message"`
	Resolution domain.ResolvedTie `json:"resolution"`
}

type progressAllResponse struct {
	Progress map[string]domain.ProgressSummary `json:"progress"`
}

// DateResults godoc
// @Summary      Shows the vote breakdown of a date
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  domain.DateResults
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/results/{date} [get]
func (h *AdminHandler) DateResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultsService.DateResults(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Standings godoc
// @Summary      Shows the cumulative standings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.StandingsReport
// @Failure      403  {object}  errorResponse
// @Router       /admin/standings [get]
func (h *AdminHandler) Standings(w http.ResponseWriter, r *http.Request) {
	report, err := h.resultsService.Standings(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// UnresolvedTies godoc
// @Summary      Lists the dates with an unresolved tie
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  unresolvedTiesResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/ties/unresolved [get]
func (h *AdminHandler) UnresolvedTies(w http.ResponseWriter, r *http.Request) {
	ties, err := h.resultsService.UnresolvedTies(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, unresolvedTiesResponse{UnresolvedTies: ties})
}

// ResolveTie godoc
// @Summary      Picks the winner of a tied date
// @Description  A date can be resolved only once.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resolveTieRequest  true  "Resolution"
// @Success      201   {object}  resolveTieResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/ties/resolve [post]
func (h *AdminHandler) ResolveTie(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrUnauthenticated)
		return
	}

	var req resolveTieRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Date == "" || req.WinnerID == uuid.Nil {
		writeError(w, r, h.logger, fmt.Errorf("%w: date and winnerId are required", domain.ErrInvalidInput))
		return
	}

	resolution, err := h.resultsService.ResolveTie(r.Context(), identity, ports.ResolveTieInput{
		Date:     req.Date,
		WinnerID: req.WinnerID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, resolveTieResponse{
		Message:    "Tie resolved successfully",
		Resolution: *resolution,
	})
}

// Progress godoc
// @Summary      Shows how many employees voted
// @Description  Pass a date for the detailed view or "all" for a summary of every voting date.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        dateOrAll  path      string  true  "Date (YYYY-MM-DD) or all"
// @Success      200        {object}  domain.Progress
// @Failure      400        {object}  errorResponse
// @Router       /admin/progress/{dateOrAll} [get]
func (h *AdminHandler) Progress(w http.ResponseWriter, r *http.Request) {
	dateOrAll := chi.URLParam(r, "dateOrAll")
	if dateOrAll == "all" {
		progress, err := h.resultsService.ProgressAll(r.Context())
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, progressAllResponse{Progress: progress})
		return
	}

	progress, err := h.resultsService.Progress(r.Context(), dateOrAll)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Export godoc
// @Summary      Downloads a full backup of the voting data
// @Tags         admin
// @Produce      json
// @Produce      application/yaml
// @Security     BearerAuth
// @Param        format  query     string  false  "json (default) or yaml"
// @Success      200     {object}  domain.Export
// @Failure      400     {object}  errorResponse
// @Router       /admin/export [get]
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrUnauthenticated)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "yaml" {
		writeError(w, r, h.logger, fmt.Errorf("%w: format must be json or yaml", domain.ErrInvalidInput))
		return
	}

	export, err := h.exportService.Export(r.Context(), identity.Username)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	filename := fmt.Sprintf("vote-backup-%s.%s", time.Now().UTC().Format(domain.DateLayout), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "json" {
		writeJSON(w, http.StatusOK, export)
		return
	}

	body, err := yaml.Marshal(export)
	if err != nil {
		writeError(w, r, h.logger, fmt.Errorf("failed to encode export: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
