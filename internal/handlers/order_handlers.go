package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/partsflow/procurement-service/internal/metrics"
	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/services"
	"github.com/partsflow/procurement-service/internal/utils"

	"go.uber.org/zap"
)

// OrderHandler serves the fulfillment endpoints.
type OrderHandler struct {
	Service *services.OrderService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, logger *zap.Logger, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetOrders handles requests for the filtered order list.
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	shopID := r.URL.Query().Get("shopId")
	supplierID := r.URL.Query().Get("supplierId")
	statuses := r.URL.Query()["status"]
	abnormalOnly, _ := strconv.ParseBool(r.URL.Query().Get("abnormal"))

	orders, err := h.Service.FetchOrders(ctx, limitStr, offsetStr, shopID, supplierID, statuses, abnormalOnly)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch orders")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, orders)
}

// GetOrder handles requests for a single order.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	orderID := r.PathValue("orderId")

	order, err := h.Service.GetOrder(ctx, orderID)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch order")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, order)
}

// RecordShipment handles the supplier recording a shipment.
func (h *OrderHandler) RecordShipment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	orderID := r.PathValue("orderId")

	var shipReq models.ShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&shipReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.RecordShipment(ctx, orderID, shipReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to record shipment")
		return
	}

	h.Logger.Info("order shipped",
		zap.String("order_id", orderID),
		zap.String("tracking_no", shipReq.TrackingNo))
	utils.SendJSONResponse(w, http.StatusOK, order)
}

// ConfirmReceipt handles the buyer confirming receipt, with an optional
// evaluation.
func (h *OrderHandler) ConfirmReceipt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	orderID := r.PathValue("orderId")

	var receiptReq struct {
		Evaluation *models.Evaluation `json:"evaluation"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&receiptReq); err != nil {
			utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	order, err := h.Service.ConfirmReceipt(ctx, orderID, receiptReq.Evaluation)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to confirm receipt")
		return
	}

	h.Logger.Info("order received", zap.String("order_id", orderID))
	utils.SendJSONResponse(w, http.StatusOK, order)
}

// FlagAbnormal handles an operator marking an order as abnormal.
func (h *OrderHandler) FlagAbnormal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	orderID := r.PathValue("orderId")

	var flagReq struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&flagReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.FlagAbnormal(ctx, orderID, flagReq.Reason)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to flag order")
		return
	}

	metrics.AbnormalFlagsTotal.WithLabelValues("order").Inc()
	h.Logger.Warn("order flagged abnormal",
		zap.String("order_id", orderID),
		zap.String("reason", flagReq.Reason))
	utils.SendJSONResponse(w, http.StatusOK, order)
}
