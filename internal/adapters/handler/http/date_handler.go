package http

import (
	"log/slog"
	"net/http"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

type DateHandler struct {
	service ports.DateService
	logger  *slog.Logger
}

func NewDateHandler(service ports.DateService, logger *slog.Logger) *DateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DateHandler{
		service: service,
		logger:  logger,
	}
}

type datesResponse struct {
	Dates []domain.VotingDate `json:"dates"`
}

// ListDates godoc
// @Summary      Lists the voting dates
// @Tags         dates
// @Produce      json
// @Success      200  {object}  datesResponse
// @Router       /dates [get]
func (h *DateHandler) ListDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, datesResponse{Dates: dates})
}
