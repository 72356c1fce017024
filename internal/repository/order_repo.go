package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/partsflow/procurement-service/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const orderSelectColumns = `SELECT id, order_no, demand_id, quote_id, supplier_id, shop_id, amount_cents,
	status, tracking_no, logistics_company, abnormal, abnormal_reason, delivery_score, quality_score,
	evaluation_comment, version, created_at, shipped_at, completed_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var deliveryScore, qualityScore *int
	var comment *string
	err := row.Scan(
		&order.ID,
		&order.OrderNo,
		&order.DemandID,
		&order.QuoteID,
		&order.SupplierID,
		&order.ShopID,
		&order.AmountCents,
		&order.Status,
		&order.TrackingNo,
		&order.LogisticsCompany,
		&order.Abnormal,
		&order.AbnormalReason,
		&deliveryScore,
		&qualityScore,
		&comment,
		&order.Version,
		&order.CreatedAt,
		&order.ShippedAt,
		&order.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if deliveryScore != nil && qualityScore != nil {
		order.Evaluation = &models.Evaluation{
			DeliveryScore: *deliveryScore,
			QualityScore:  *qualityScore,
		}
		if comment != nil {
			order.Evaluation.Comment = *comment
		}
	}
	return &order, nil
}

// OrderRepository provides read access to orders outside the lifecycle engine.
type OrderRepository interface {
	GetOrders(ctx context.Context, limit, offset int, statuses []string, shopID, supplierID string, abnormalOnly bool) ([]models.Order, error)
	CountAbnormalOrders(ctx context.Context) (int, error)
	CountOrders(ctx context.Context) (int, error)
}

// PostgresOrderRepository is the database-backed OrderRepository.
type PostgresOrderRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository.
func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// GetOrders returns a filtered page of orders, newest first.
func (r *PostgresOrderRepository) GetOrders(ctx context.Context, limit, offset int, statuses []string, shopID, supplierID string, abnormalOnly bool) ([]models.Order, error) {
	query := orderSelectColumns + ` FROM orders`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(statuses) > 0 {
		filters = append(filters, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}
	if shopID != "" {
		filters = append(filters, fmt.Sprintf("shop_id = $%d", argIndex))
		args = append(args, shopID)
		argIndex++
	}
	if supplierID != "" {
		filters = append(filters, fmt.Sprintf("supplier_id = $%d", argIndex))
		args = append(args, supplierID)
		argIndex++
	}
	if abnormalOnly {
		filters = append(filters, "abnormal = TRUE")
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// CountAbnormalOrders counts orders carrying the abnormal flag.
func (r *PostgresOrderRepository) CountAbnormalOrders(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM orders WHERE abnormal = TRUE`
	err := r.DB.QueryRow(ctx, query).Scan(&count)
	return count, err
}

// CountOrders counts all orders.
func (r *PostgresOrderRepository) CountOrders(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM orders`
	err := r.DB.QueryRow(ctx, query).Scan(&count)
	return count, err
}
