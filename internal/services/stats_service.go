package services

import (
	"context"
	"net/http"

	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/repository"
)

type StatsService struct {
	Demands repository.DemandRepository
	Orders  repository.OrderRepository
	Vendors repository.VendorRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(demands repository.DemandRepository, orders repository.OrderRepository, vendors repository.VendorRepository) *StatsService {
	return &StatsService{Demands: demands, Orders: orders, Vendors: vendors}
}

// FetchOverview collects the admin workbench counters.
func (s *StatsService) FetchOverview(ctx context.Context) (*models.OverviewStats, error) {
	openDemands, err := s.Demands.CountOpenDemands(ctx)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to count open demands")
	}
	pendingAudits, err := s.Vendors.CountPendingAudits(ctx)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to count pending audits")
	}
	abnormalOrders, err := s.Orders.CountAbnormalOrders(ctx)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to count abnormal orders")
	}
	totalOrders, err := s.Orders.CountOrders(ctx)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to count orders")
	}

	return &models.OverviewStats{
		OpenDemands:    openDemands,
		PendingAudits:  pendingAudits,
		AbnormalOrders: abnormalOrders,
		TotalOrders:    totalOrders,
	}, nil
}
