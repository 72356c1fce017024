package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/partsflow/procurement-service/internal/metrics"
	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/services"
	"github.com/partsflow/procurement-service/internal/utils"

	"go.uber.org/zap"
)

// DemandHandler serves the demand endpoints for all three clients.
type DemandHandler struct {
	Service *services.DemandService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewDemandHandler creates a new DemandHandler.
func NewDemandHandler(service *services.DemandService, logger *zap.Logger, timeout time.Duration) *DemandHandler {
	return &DemandHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetDemands handles requests for the filtered demand list.
func (h *DemandHandler) GetDemands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	keyword := r.URL.Query().Get("keyword")
	shopID := r.URL.Query().Get("shopId")
	statuses := r.URL.Query()["status"]

	demands, err := h.Service.FetchDemands(ctx, limitStr, offsetStr, keyword, shopID, statuses)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch demands")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, demands)
}

// CreateDemand handles requests to publish a new demand.
func (h *DemandHandler) CreateDemand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var demandReq models.DemandRequest
	if err := json.NewDecoder(r.Body).Decode(&demandReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	demand, err := h.Service.CreateDemand(ctx, demandReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to create demand")
		return
	}

	h.Logger.Info("demand published",
		zap.String("demand_id", demand.ID),
		zap.String("demand_no", demand.DemandNo))
	utils.SendJSONResponse(w, http.StatusOK, demand)
}

// GetDemand handles requests for a single demand.
func (h *DemandHandler) GetDemand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	demandID := r.PathValue("demandId")

	demand, err := h.Service.GetDemand(ctx, demandID)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch demand")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, demand)
}

// GetDemandStatus handles requests for a demand's status.
func (h *DemandHandler) GetDemandStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	demandID := r.PathValue("demandId")

	status, err := h.Service.GetDemandStatus(ctx, demandID)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch demand status")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, status)
}

// AwardQuote handles the buyer's award decision on a demand.
func (h *DemandHandler) AwardQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	demandID := r.PathValue("demandId")

	var awardReq struct {
		QuoteID string `json:"quoteId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&awardReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.AwardQuote(ctx, demandID, awardReq.QuoteID)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to award quote")
		return
	}

	metrics.AwardsTotal.Inc()
	h.Logger.Info("quote awarded",
		zap.String("demand_id", demandID),
		zap.String("quote_id", awardReq.QuoteID),
		zap.String("order_id", order.ID))
	utils.SendJSONResponse(w, http.StatusOK, order)
}

// SweepExpiredDemands handles the deadline-expiry sweep, invoked by the admin
// client or an external scheduler.
func (h *DemandHandler) SweepExpiredDemands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	swept, err := h.Service.SweepExpiredDemands(ctx)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to sweep expired demands")
		return
	}

	if len(swept) > 0 {
		h.Logger.Info("expired demands swept", zap.Strings("demand_ids", swept))
	}
	utils.SendJSONResponse(w, http.StatusOK, map[string][]string{"sweptDemandIds": swept})
}
