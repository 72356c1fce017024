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

// QuoteHandler serves the quote endpoints.
type QuoteHandler struct {
	Service *services.QuoteService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(service *services.QuoteService, logger *zap.Logger, timeout time.Duration) *QuoteHandler {
	return &QuoteHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// SubmitQuote handles a supplier submitting a quote against a demand.
func (h *QuoteHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	demandID := r.PathValue("demandId")

	var quoteReq models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&quoteReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.Service.SubmitQuote(ctx, demandID, quoteReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to submit quote")
		return
	}

	metrics.QuotesSubmittedTotal.Inc()
	h.Logger.Info("quote submitted",
		zap.String("demand_id", demandID),
		zap.String("quote_id", quote.ID),
		zap.String("supplier_code", quote.SupplierCode))
	utils.SendJSONResponse(w, http.StatusOK, quote)
}

// GetDemandQuotes handles the buyer's quote-comparison view for a demand.
func (h *QuoteHandler) GetDemandQuotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	demandID := r.PathValue("demandId")
	sortBy := r.URL.Query().Get("sortBy")
	sortOrder := r.URL.Query().Get("sortOrder")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	quotes, err := h.Service.FetchDemandQuotes(ctx, demandID, sortBy, sortOrder, limitStr, offsetStr)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch quotes")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, quotes)
}

// GetMyQuotes handles a supplier listing their own quotes.
func (h *QuoteHandler) GetMyQuotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	supplierID := r.URL.Query().Get("supplierId")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	quotes, err := h.Service.FetchSupplierQuotes(ctx, supplierID, limitStr, offsetStr)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch quotes")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, quotes)
}

// FlagAbnormal handles an operator marking a quote as abnormal.
func (h *QuoteHandler) FlagAbnormal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	quoteID := r.PathValue("quoteId")

	var flagReq struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&flagReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.Service.FlagAbnormal(ctx, quoteID, flagReq.Reason)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to flag quote")
		return
	}

	metrics.AbnormalFlagsTotal.WithLabelValues("quote").Inc()
	h.Logger.Warn("quote flagged abnormal",
		zap.String("quote_id", quoteID),
		zap.String("reason", flagReq.Reason))
	utils.SendJSONResponse(w, http.StatusOK, quote)
}
