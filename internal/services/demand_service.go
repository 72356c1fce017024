package services

import (
	"context"
	"net/http"
	"time"

	"github.com/partsflow/procurement-service/internal/lifecycle"
	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/repository"
	"github.com/partsflow/procurement-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DemandService struct {
	Repo   repository.DemandRepository
	Engine *lifecycle.Engine
	dbPool *pgxpool.Pool
}

// NewDemandService creates a new DemandService.
func NewDemandService(repo repository.DemandRepository, engine *lifecycle.Engine, dbPool *pgxpool.Pool) *DemandService {
	return &DemandService{Repo: repo, Engine: engine, dbPool: dbPool}
}

var allowedDemandStatuses = map[models.DemandStatus]bool{
	models.PendingDemand:   true,
	models.QuotedDemand:    true,
	models.ConfirmedDemand: true,
	models.CompletedDemand: true,
	models.CancelledDemand: true,
	models.ClosedDemand:    true,
}

// FetchDemands returns a filtered page of demands.
func (s *DemandService) FetchDemands(ctx context.Context, limitStr, offsetStr, keyword, shopID string, statuses []string) ([]models.Demand, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	for _, status := range statuses {
		if !allowedDemandStatuses[models.DemandStatus(status)] {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "unsupported demand status: "+status)
		}
	}
	return s.Repo.GetDemands(ctx, limit, offset, statuses, keyword, shopID)
}

// CreateDemand publishes a new demand for a shop.
func (s *DemandService) CreateDemand(ctx context.Context, demandReq models.DemandRequest) (*models.Demand, error) {
	if demandReq.Title == "" || demandReq.PartName == "" || demandReq.ShopID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}
	if demandReq.Quantity <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "quantity must be positive")
	}
	if demandReq.BudgetCents < 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "budget must not be negative")
	}
	if !demandReq.Deadline.After(time.Now().UTC()) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "quote deadline must be in the future")
	}

	exists, err := utils.CheckShopExists(ctx, s.dbPool, demandReq.ShopID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !exists {
		return nil, models.NewErrorResponse(http.StatusNotFound, "shop does not exist")
	}

	return s.Repo.CreateDemand(ctx, demandReq)
}

// GetDemand returns a single demand.
func (s *DemandService) GetDemand(ctx context.Context, demandID string) (*models.Demand, error) {
	if demandID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "demandId is required")
	}
	demand, err := s.Repo.GetDemandByID(ctx, demandID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "demand not found")
	}
	return demand, nil
}

// GetDemandStatus returns the status of a demand.
func (s *DemandService) GetDemandStatus(ctx context.Context, demandID string) (models.DemandStatus, error) {
	if demandID == "" {
		return "", models.NewErrorResponse(http.StatusBadRequest, "demandId is required")
	}
	status, err := s.Repo.GetDemandStatus(ctx, demandID)
	if err != nil {
		return "", models.NewErrorResponse(http.StatusNotFound, "demand not found")
	}
	return status, nil
}

// AwardQuote awards one quote on a demand; siblings lose and an order is created.
func (s *DemandService) AwardQuote(ctx context.Context, demandID, quoteID string) (*models.Order, error) {
	if demandID == "" || quoteID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "demandId and quoteId are required")
	}

	order, err := s.Engine.AwardQuote(ctx, demandID, quoteID)
	if err != nil {
		return nil, mapLifecycleError(err, "failed to award quote")
	}
	return order, nil
}

// SweepExpiredDemands closes demands whose deadline has passed.
func (s *DemandService) SweepExpiredDemands(ctx context.Context) ([]string, error) {
	swept, err := s.Engine.SweepExpiredDemands(ctx, time.Now().UTC())
	if err != nil {
		return nil, mapLifecycleError(err, "failed to sweep expired demands")
	}
	return swept, nil
}
