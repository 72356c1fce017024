package lifecycle

import (
	"context"
	"time"

	"github.com/partsflow/procurement-service/internal/models"
)

// Store is the persistence boundary of the engine. Implementations return the
// package's *NotFound errors for missing ids and ErrVersionConflict when an
// update loses an optimistic-lock race. Multi-write cascades run inside InTx:
// either every write in fn commits or none do.
type Store interface {
	GetDemand(ctx context.Context, id string) (*models.Demand, error)
	GetQuote(ctx context.Context, id string) (*models.Quote, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListQuotesByDemand(ctx context.Context, demandID string) ([]models.Quote, error)
	ListOpenDemands(ctx context.Context) ([]models.Demand, error)
	CreateQuote(ctx context.Context, quote *models.Quote) error
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateDemand(ctx context.Context, demand *models.Demand) error
	UpdateQuote(ctx context.Context, quote *models.Quote) error
	UpdateOrder(ctx context.Context, order *models.Order) error
	InTx(ctx context.Context, fn func(Store) error) error
}

// Clock abstracts time for deadline comparison.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
