package repository

import (
	"context"
	"errors"

	"github.com/partsflow/procurement-service/internal/lifecycle"
	"github.com/partsflow/procurement-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error code for a unique-constraint violation.
const pgUniqueViolation = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same store
// code runs inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresLifecycleStore implements lifecycle.Store on top of pgx. Demand and
// order updates are version-checked: a stale write surfaces as
// lifecycle.ErrVersionConflict instead of silently clobbering a cascade.
type PostgresLifecycleStore struct {
	db   querier
	pool *pgxpool.Pool // nil when the store is already inside a transaction
}

// NewPostgresLifecycleStore creates a lifecycle store over a connection pool.
func NewPostgresLifecycleStore(pool *pgxpool.Pool) *PostgresLifecycleStore {
	return &PostgresLifecycleStore{db: pool, pool: pool}
}

// InTx runs fn against a transactional view of the store. Nested calls reuse
// the surrounding transaction.
func (s *PostgresLifecycleStore) InTx(ctx context.Context, fn func(lifecycle.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&PostgresLifecycleStore{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresLifecycleStore) GetDemand(ctx context.Context, id string) (*models.Demand, error) {
	query := `SELECT id, demand_no, title, description, category_id, brand, part_name, quantity,
	                 budget_cents, deadline, status, quote_count, shop_id, attachments, version, created_at
	          FROM demand WHERE id = $1`
	var demand models.Demand
	err := s.db.QueryRow(ctx, query, id).Scan(
		&demand.ID,
		&demand.DemandNo,
		&demand.Title,
		&demand.Description,
		&demand.CategoryID,
		&demand.Brand,
		&demand.PartName,
		&demand.Quantity,
		&demand.BudgetCents,
		&demand.Deadline,
		&demand.Status,
		&demand.QuoteCount,
		&demand.ShopID,
		&demand.Attachments,
		&demand.Version,
		&demand.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lifecycle.ErrDemandNotFound
	}
	if err != nil {
		return nil, err
	}
	return &demand, nil
}

func (s *PostgresLifecycleStore) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	query := quoteSelectColumns + ` FROM quote WHERE id = $1`
	quote, err := scanQuote(s.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lifecycle.ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *PostgresLifecycleStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	query := orderSelectColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(s.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lifecycle.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *PostgresLifecycleStore) ListQuotesByDemand(ctx context.Context, demandID string) ([]models.Quote, error) {
	query := quoteSelectColumns + ` FROM quote WHERE demand_id = $1 ORDER BY created_at`
	rows, err := s.db.Query(ctx, query, demandID)
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

func (s *PostgresLifecycleStore) ListOpenDemands(ctx context.Context) ([]models.Demand, error) {
	query := `SELECT id, demand_no, title, description, category_id, brand, part_name, quantity,
	                 budget_cents, deadline, status, quote_count, shop_id, attachments, version, created_at
	          FROM demand WHERE status IN ('pending', 'quoted') ORDER BY deadline`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var demands []models.Demand
	for rows.Next() {
		var demand models.Demand
		if err := rows.Scan(
			&demand.ID,
			&demand.DemandNo,
			&demand.Title,
			&demand.Description,
			&demand.CategoryID,
			&demand.Brand,
			&demand.PartName,
			&demand.Quantity,
			&demand.BudgetCents,
			&demand.Deadline,
			&demand.Status,
			&demand.QuoteCount,
			&demand.ShopID,
			&demand.Attachments,
			&demand.Version,
			&demand.CreatedAt,
		); err != nil {
			return nil, err
		}
		demands = append(demands, demand)
	}
	return demands, rows.Err()
}

// One quote per supplier per demand; the unique constraint backs this up and
// surfaces as ErrDuplicateQuote.
func (s *PostgresLifecycleStore) CreateQuote(ctx context.Context, quote *models.Quote) error {
	query := `INSERT INTO quote (id, quote_no, demand_id, supplier_id, supplier_code, price_cents, brand,
	                             quantity, warranty_months, delivery_hours, contact_name, contact_phone,
	                             status, abnormal, abnormal_reason, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := s.db.Exec(ctx, query,
		quote.ID,
		quote.QuoteNo,
		quote.DemandID,
		quote.SupplierID,
		quote.SupplierCode,
		quote.PriceCents,
		quote.Brand,
		quote.Quantity,
		quote.WarrantyMonths,
		quote.DeliveryHours,
		quote.ContactName,
		quote.ContactPhone,
		quote.Status,
		quote.Abnormal,
		quote.AbnormalReason,
		quote.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return lifecycle.ErrDuplicateQuote
	}
	return err
}

func (s *PostgresLifecycleStore) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `INSERT INTO orders (id, order_no, demand_id, quote_id, supplier_id, shop_id, amount_cents,
	                              status, tracking_no, logistics_company, abnormal, abnormal_reason,
	                              version, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := s.db.Exec(ctx, query,
		order.ID,
		order.OrderNo,
		order.DemandID,
		order.QuoteID,
		order.SupplierID,
		order.ShopID,
		order.AmountCents,
		order.Status,
		order.TrackingNo,
		order.LogisticsCompany,
		order.Abnormal,
		order.AbnormalReason,
		order.Version,
		order.CreatedAt,
	)
	return err
}

func (s *PostgresLifecycleStore) UpdateDemand(ctx context.Context, demand *models.Demand) error {
	query := `UPDATE demand SET status = $1, quote_count = $2, version = version + 1
	          WHERE id = $3 AND version = $4`
	tag, err := s.db.Exec(ctx, query, demand.Status, demand.QuoteCount, demand.ID, demand.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.staleOrMissing(ctx, "demand", demand.ID, lifecycle.ErrDemandNotFound)
	}
	return nil
}

func (s *PostgresLifecycleStore) UpdateQuote(ctx context.Context, quote *models.Quote) error {
	query := `UPDATE quote SET status = $1, abnormal = $2, abnormal_reason = $3 WHERE id = $4`
	tag, err := s.db.Exec(ctx, query, quote.Status, quote.Abnormal, quote.AbnormalReason, quote.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrQuoteNotFound
	}
	return nil
}

func (s *PostgresLifecycleStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	var deliveryScore, qualityScore *int
	var comment *string
	if order.Evaluation != nil {
		deliveryScore = &order.Evaluation.DeliveryScore
		qualityScore = &order.Evaluation.QualityScore
		comment = &order.Evaluation.Comment
	}

	query := `UPDATE orders SET status = $1, tracking_no = $2, logistics_company = $3, abnormal = $4,
	                            abnormal_reason = $5, delivery_score = $6, quality_score = $7,
	                            evaluation_comment = $8, shipped_at = $9, completed_at = $10,
	                            version = version + 1
	          WHERE id = $11 AND version = $12`
	tag, err := s.db.Exec(ctx, query,
		order.Status,
		order.TrackingNo,
		order.LogisticsCompany,
		order.Abnormal,
		order.AbnormalReason,
		deliveryScore,
		qualityScore,
		comment,
		order.ShippedAt,
		order.CompletedAt,
		order.ID,
		order.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.staleOrMissing(ctx, "orders", order.ID, lifecycle.ErrOrderNotFound)
	}
	return nil
}

// staleOrMissing distinguishes a version-check loss from a missing row.
func (s *PostgresLifecycleStore) staleOrMissing(ctx context.Context, table, id string, notFound error) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM ` + table + ` WHERE id = $1)`
	if err := s.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return notFound
	}
	return lifecycle.ErrVersionConflict
}
