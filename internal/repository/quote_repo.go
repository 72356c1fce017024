package repository

import (
	"context"
	"fmt"

	"github.com/partsflow/procurement-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const quoteSelectColumns = `SELECT id, quote_no, demand_id, supplier_id, supplier_code, price_cents, brand,
	quantity, warranty_months, delivery_hours, contact_name, contact_phone, status, abnormal,
	abnormal_reason, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*models.Quote, error) {
	var quote models.Quote
	err := row.Scan(
		&quote.ID,
		&quote.QuoteNo,
		&quote.DemandID,
		&quote.SupplierID,
		&quote.SupplierCode,
		&quote.PriceCents,
		&quote.Brand,
		&quote.Quantity,
		&quote.WarrantyMonths,
		&quote.DeliveryHours,
		&quote.ContactName,
		&quote.ContactPhone,
		&quote.Status,
		&quote.Abnormal,
		&quote.AbnormalReason,
		&quote.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// QuoteRepository provides read access to quotes outside the lifecycle engine.
type QuoteRepository interface {
	GetDemandQuotes(ctx context.Context, demandID, sortBy, sortOrder string, limit, offset int) ([]models.Quote, error)
	GetSupplierQuotes(ctx context.Context, supplierID string, limit, offset int) ([]models.Quote, error)
}

// PostgresQuoteRepository is the database-backed QuoteRepository.
type PostgresQuoteRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresQuoteRepository creates a new PostgresQuoteRepository.
func NewPostgresQuoteRepository(db *pgxpool.Pool) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{DB: db}
}

// GetDemandQuotes returns the quotes submitted against a demand, sortable by
// price or delivery time for the buyer's comparison view.
func (r *PostgresQuoteRepository) GetDemandQuotes(ctx context.Context, demandID, sortBy, sortOrder string, limit, offset int) ([]models.Quote, error) {
	orderColumn := "created_at"
	switch sortBy {
	case "price":
		orderColumn = "price_cents"
	case "delivery":
		orderColumn = "delivery_hours"
	}
	direction := "ASC"
	if sortOrder == "desc" {
		direction = "DESC"
	}

	query := quoteSelectColumns + fmt.Sprintf(
		` FROM quote WHERE demand_id = $1 ORDER BY %s %s LIMIT $2 OFFSET $3`, orderColumn, direction)
	rows, err := r.DB.Query(ctx, query, demandID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *quote)
	}
	return quotes, rows.Err()
}

// GetSupplierQuotes returns a supplier's own quotes, newest first.
func (r *PostgresQuoteRepository) GetSupplierQuotes(ctx context.Context, supplierID string, limit, offset int) ([]models.Quote, error) {
	query := quoteSelectColumns + ` FROM quote WHERE supplier_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *quote)
	}
	return quotes, rows.Err()
}
