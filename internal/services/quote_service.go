package services

import (
	"context"
	"net/http"

	"github.com/partsflow/procurement-service/internal/lifecycle"
	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/repository"
	"github.com/partsflow/procurement-service/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type QuoteService struct {
	Repo   repository.QuoteRepository
	Engine *lifecycle.Engine
	dbPool *pgxpool.Pool
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(repo repository.QuoteRepository, engine *lifecycle.Engine, dbPool *pgxpool.Pool) *QuoteService {
	return &QuoteService{Repo: repo, Engine: engine, dbPool: dbPool}
}

// SubmitQuote records a supplier's quote against a demand. Only approved
// suppliers may quote.
func (s *QuoteService) SubmitQuote(ctx context.Context, demandID string, quoteReq models.QuoteRequest) (*models.Quote, error) {
	if demandID == "" || quoteReq.SupplierID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}
	if quoteReq.PriceCents <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "price must be positive")
	}
	if quoteReq.Quantity <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "quantity must be positive")
	}

	approved, err := utils.CheckSupplierApproved(ctx, s.dbPool, quoteReq.SupplierID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !approved {
		return nil, models.NewErrorResponse(http.StatusForbidden, "supplier is not approved to quote")
	}

	quote, err := s.Engine.SubmitQuote(ctx, demandID, quoteReq)
	if err != nil {
		return nil, mapLifecycleError(err, "failed to submit quote")
	}
	return quote, nil
}

// FetchDemandQuotes returns the quotes on a demand for the buyer's comparison
// view. Supplier contact details stay hidden until a quote has won.
func (s *QuoteService) FetchDemandQuotes(ctx context.Context, demandID, sortBy, sortOrder, limitStr, offsetStr string) ([]models.Quote, error) {
	if demandID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "demandId is required")
	}
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	exists, err := utils.CheckDemandExists(ctx, s.dbPool, demandID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !exists {
		return nil, models.NewErrorResponse(http.StatusNotFound, "demand not found")
	}

	quotes, err := s.Repo.GetDemandQuotes(ctx, demandID, sortBy, sortOrder, limit, offset)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch quotes")
	}
	return anonymizeQuotes(quotes), nil
}

// FetchSupplierQuotes returns a supplier's own quotes.
func (s *QuoteService) FetchSupplierQuotes(ctx context.Context, supplierID, limitStr, offsetStr string) ([]models.Quote, error) {
	if supplierID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "supplierId is required")
	}
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	return s.Repo.GetSupplierQuotes(ctx, supplierID, limit, offset)
}

// FlagAbnormal marks a quote as abnormal with a reason.
func (s *QuoteService) FlagAbnormal(ctx context.Context, quoteID, reason string) (*models.Quote, error) {
	if quoteID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "quoteId is required")
	}

	quote, err := s.Engine.FlagQuoteAbnormal(ctx, quoteID, reason)
	if err != nil {
		return nil, mapLifecycleError(err, "failed to flag quote")
	}
	return quote, nil
}

// anonymizeQuotes blanks supplier identity and contact fields on quotes that
// have not won. Buyers compare on supplier code alone until the award.
func anonymizeQuotes(quotes []models.Quote) []models.Quote {
	for i := range quotes {
		if quotes[i].Status == models.WonQuote {
			continue
		}
		quotes[i].SupplierID = ""
		quotes[i].ContactName = ""
		quotes[i].ContactPhone = ""
	}
	return quotes
}
