package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/partsflow/procurement-service/internal/lifecycle"
	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/repository"
	"github.com/partsflow/procurement-service/internal/utils"
)

type OrderService struct {
	Repo   repository.OrderRepository
	Store  lifecycle.Store
	Engine *lifecycle.Engine
}

// NewOrderService creates a new OrderService.
func NewOrderService(repo repository.OrderRepository, store lifecycle.Store, engine *lifecycle.Engine) *OrderService {
	return &OrderService{Repo: repo, Store: store, Engine: engine}
}

var allowedOrderStatuses = map[models.OrderStatus]bool{
	models.PendingShipmentOrder: true,
	models.ShippedOrder:         true,
	models.CompletedOrder:       true,
}

// FetchOrders returns a filtered page of orders.
func (s *OrderService) FetchOrders(ctx context.Context, limitStr, offsetStr, shopID, supplierID string, statuses []string, abnormalOnly bool) ([]models.Order, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	for _, status := range statuses {
		if !allowedOrderStatuses[models.OrderStatus(status)] {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "unsupported order status: "+status)
		}
	}
	return s.Repo.GetOrders(ctx, limit, offset, statuses, shopID, supplierID, abnormalOnly)
}

// GetOrder returns a single order.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "orderId is required")
	}

	order, err := s.Store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, lifecycle.ErrOrderNotFound) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "order not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch order")
	}
	return order, nil
}

// RecordShipment moves an order to shipped with a tracking number.
func (s *OrderService) RecordShipment(ctx context.Context, orderID string, shipReq models.ShipmentRequest) (*models.Order, error) {
	if orderID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "orderId is required")
	}

	order, err := s.Engine.RecordShipment(ctx, orderID, shipReq.TrackingNo, shipReq.LogisticsCompany)
	if err != nil {
		return nil, mapLifecycleError(err, "failed to record shipment")
	}
	return order, nil
}

// ConfirmReceipt completes a shipped order with an optional evaluation.
func (s *OrderService) ConfirmReceipt(ctx context.Context, orderID string, eval *models.Evaluation) (*models.Order, error) {
	if orderID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "orderId is required")
	}

	order, err := s.Engine.ConfirmReceipt(ctx, orderID, eval)
	if err != nil {
		return nil, mapLifecycleError(err, "failed to confirm receipt")
	}
	return order, nil
}

// FlagAbnormal marks an order as abnormal with a reason.
func (s *OrderService) FlagAbnormal(ctx context.Context, orderID, reason string) (*models.Order, error) {
	if orderID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "orderId is required")
	}

	order, err := s.Engine.FlagOrderAbnormal(ctx, orderID, reason)
	if err != nil {
		return nil, mapLifecycleError(err, "failed to flag order")
	}
	return order, nil
}
