package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/partsflow/procurement-service/internal/services"
	"github.com/partsflow/procurement-service/internal/utils"

	"go.uber.org/zap"
)

// StatsHandler serves the admin workbench counters.
type StatsHandler struct {
	Service *services.StatsService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.StatsService, logger *zap.Logger, timeout time.Duration) *StatsHandler {
	return &StatsHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetOverview handles requests for the workbench overview counters.
func (h *StatsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	stats, err := h.Service.FetchOverview(ctx)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch overview")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, stats)
}
