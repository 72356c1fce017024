package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const demandSelectColumns = `SELECT id, demand_no, title, description, category_id, brand, part_name,
	quantity, budget_cents, deadline, status, quote_count, shop_id, attachments, version, created_at`

// DemandRepository provides access to demands.
type DemandRepository interface {
	GetDemands(ctx context.Context, limit, offset int, statuses []string, keyword, shopID string) ([]models.Demand, error)
	CreateDemand(ctx context.Context, demandReq models.DemandRequest) (*models.Demand, error)
	GetDemandByID(ctx context.Context, demandID string) (*models.Demand, error)
	GetDemandStatus(ctx context.Context, demandID string) (models.DemandStatus, error)
	CountOpenDemands(ctx context.Context) (int, error)
}

// PostgresDemandRepository is the database-backed DemandRepository.
type PostgresDemandRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresDemandRepository creates a new PostgresDemandRepository.
func NewPostgresDemandRepository(db *pgxpool.Pool) *PostgresDemandRepository {
	return &PostgresDemandRepository{DB: db}
}

// GetDemands returns a filtered page of demands, newest first.
func (r *PostgresDemandRepository) GetDemands(ctx context.Context, limit, offset int, statuses []string, keyword, shopID string) ([]models.Demand, error) {
	query := demandSelectColumns + ` FROM demand`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(statuses) > 0 {
		filters = append(filters, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}
	if keyword != "" {
		filters = append(filters, fmt.Sprintf("(title ILIKE $%d OR part_name ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+keyword+"%")
		argIndex++
	}
	if shopID != "" {
		filters = append(filters, fmt.Sprintf("shop_id = $%d", argIndex))
		args = append(args, shopID)
		argIndex++
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

// CreateDemand publishes a new demand in pending status.
func (r *PostgresDemandRepository) CreateDemand(ctx context.Context, demandReq models.DemandRequest) (*models.Demand, error) {
	now := time.Now().UTC()
	newDemand := models.Demand{
		ID:          uuid.New().String(),
		DemandNo:    utils.NewSequenceNo("D", now),
		Title:       demandReq.Title,
		Description: demandReq.Description,
		CategoryID:  demandReq.CategoryID,
		Brand:       demandReq.Brand,
		PartName:    demandReq.PartName,
		Quantity:    demandReq.Quantity,
		BudgetCents: demandReq.BudgetCents,
		Deadline:    demandReq.Deadline,
		Status:      models.PendingDemand,
		ShopID:      demandReq.ShopID,
		Attachments: demandReq.Attachments,
		Version:     1,
		CreatedAt:   now,
	}

	insertQuery := `INSERT INTO demand (id, demand_no, title, description, category_id, brand, part_name,
	                                    quantity, budget_cents, deadline, status, quote_count, shop_id,
	                                    attachments, version, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newDemand.ID,
		newDemand.DemandNo,
		newDemand.Title,
		newDemand.Description,
		newDemand.CategoryID,
		newDemand.Brand,
		newDemand.PartName,
		newDemand.Quantity,
		newDemand.BudgetCents,
		newDemand.Deadline,
		newDemand.Status,
		0,
		newDemand.ShopID,
		newDemand.Attachments,
		newDemand.Version,
		newDemand.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &newDemand, nil
}

// GetDemandByID returns a single demand.
func (r *PostgresDemandRepository) GetDemandByID(ctx context.Context, demandID string) (*models.Demand, error) {
	query := demandSelectColumns + ` FROM demand WHERE id = $1`
	var demand models.Demand
	err := r.DB.QueryRow(ctx, query, demandID).Scan(
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
	if err != nil {
		return nil, err
	}
	return &demand, nil
}

// GetDemandStatus returns the status of a demand.
func (r *PostgresDemandRepository) GetDemandStatus(ctx context.Context, demandID string) (models.DemandStatus, error) {
	var status models.DemandStatus
	query := `SELECT status FROM demand WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, demandID).Scan(&status)
	return status, err
}

// CountOpenDemands counts demands still waiting for quotes or a decision.
func (r *PostgresDemandRepository) CountOpenDemands(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM demand WHERE status IN ('pending', 'quoted')`
	err := r.DB.QueryRow(ctx, query).Scan(&count)
	return count, err
}
