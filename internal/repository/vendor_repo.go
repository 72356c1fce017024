package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/partsflow/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VendorRepository provides access to the reference entities around the core
// lifecycle: suppliers with their approval flow and buyer-side shops.
type VendorRepository interface {
	GetSuppliers(ctx context.Context, limit, offset int, name, region, status string) ([]models.Supplier, error)
	GetSupplierByID(ctx context.Context, supplierID string) (*models.Supplier, error)
	CreateSupplier(ctx context.Context, req models.SupplierRequest) (*models.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID string, req models.SupplierRequest) (*models.Supplier, error)
	DeleteSupplier(ctx context.Context, supplierID string) error
	UpdateSupplierStatus(ctx context.Context, supplierID string, status models.SupplierStatus, reason string) (*models.Supplier, error)
	CountPendingAudits(ctx context.Context) (int, error)

	GetShops(ctx context.Context, limit, offset int, name, contractStatus string) ([]models.Shop, error)
	CreateShop(ctx context.Context, req models.ShopRequest) (*models.Shop, error)
	UpdateShop(ctx context.Context, shopID string, req models.ShopRequest) (*models.Shop, error)
	DeleteShop(ctx context.Context, shopID string) error
	BindShopUser(ctx context.Context, shopID, userID string) error
}

// PostgresVendorRepository is the database-backed VendorRepository.
type PostgresVendorRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresVendorRepository creates a new PostgresVendorRepository.
func NewPostgresVendorRepository(db *pgxpool.Pool) *PostgresVendorRepository {
	return &PostgresVendorRepository{DB: db}
}

const supplierSelectColumns = `SELECT id, name, region, address, manager, phone, email, status,
	audit_reason, user_id, created_at`

func scanSupplier(row rowScanner) (*models.Supplier, error) {
	var supplier models.Supplier
	var userID *string
	err := row.Scan(
		&supplier.ID,
		&supplier.Name,
		&supplier.Region,
		&supplier.Address,
		&supplier.Manager,
		&supplier.Phone,
		&supplier.Email,
		&supplier.Status,
		&supplier.AuditReason,
		&userID,
		&supplier.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		supplier.UserID = *userID
	}
	return &supplier, nil
}

// GetSuppliers returns a filtered page of suppliers.
func (r *PostgresVendorRepository) GetSuppliers(ctx context.Context, limit, offset int, name, region, status string) ([]models.Supplier, error) {
	query := supplierSelectColumns + ` FROM supplier`
	var filters []string
	var args []interface{}
	argIndex := 1

	if name != "" {
		filters = append(filters, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+name+"%")
		argIndex++
	}
	if region != "" {
		filters = append(filters, fmt.Sprintf("region = $%d", argIndex))
		args = append(args, region)
		argIndex++
	}
	if status != "" {
		filters = append(filters, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, status)
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

	var suppliers []models.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, *supplier)
	}
	return suppliers, rows.Err()
}

// GetSupplierByID returns a single supplier.
func (r *PostgresVendorRepository) GetSupplierByID(ctx context.Context, supplierID string) (*models.Supplier, error) {
	query := supplierSelectColumns + ` FROM supplier WHERE id = $1`
	return scanSupplier(r.DB.QueryRow(ctx, query, supplierID))
}

// CreateSupplier registers a supplier in pending status.
func (r *PostgresVendorRepository) CreateSupplier(ctx context.Context, req models.SupplierRequest) (*models.Supplier, error) {
	newSupplier := models.Supplier{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Region:    req.Region,
		Address:   req.Address,
		Manager:   req.Manager,
		Phone:     req.Phone,
		Email:     req.Email,
		Status:    models.PendingSupplier,
		CreatedAt: time.Now().UTC(),
	}

	insertQuery := `INSERT INTO supplier (id, name, region, address, manager, phone, email, status, audit_reason, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(ctx, insertQuery,
		newSupplier.ID,
		newSupplier.Name,
		newSupplier.Region,
		newSupplier.Address,
		newSupplier.Manager,
		newSupplier.Phone,
		newSupplier.Email,
		newSupplier.Status,
		"",
		newSupplier.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &newSupplier, nil
}

// UpdateSupplier edits a supplier's profile fields.
func (r *PostgresVendorRepository) UpdateSupplier(ctx context.Context, supplierID string, req models.SupplierRequest) (*models.Supplier, error) {
	query := `UPDATE supplier SET name = $1, region = $2, address = $3, manager = $4, phone = $5, email = $6
	          WHERE id = $7`
	_, err := r.DB.Exec(ctx, query, req.Name, req.Region, req.Address, req.Manager, req.Phone, req.Email, supplierID)
	if err != nil {
		return nil, err
	}
	return r.GetSupplierByID(ctx, supplierID)
}

// DeleteSupplier removes a supplier.
func (r *PostgresVendorRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM supplier WHERE id = $1`, supplierID)
	return err
}

// UpdateSupplierStatus advances a supplier through its approval flow.
func (r *PostgresVendorRepository) UpdateSupplierStatus(ctx context.Context, supplierID string, status models.SupplierStatus, reason string) (*models.Supplier, error) {
	query := `UPDATE supplier SET status = $1, audit_reason = $2 WHERE id = $3`
	_, err := r.DB.Exec(ctx, query, status, reason, supplierID)
	if err != nil {
		return nil, err
	}
	return r.GetSupplierByID(ctx, supplierID)
}

// CountPendingAudits counts suppliers awaiting review.
func (r *PostgresVendorRepository) CountPendingAudits(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM supplier WHERE status IN ('pending', 'reviewing')`
	err := r.DB.QueryRow(ctx, query).Scan(&count)
	return count, err
}

const shopSelectColumns = `SELECT id, name, manager, phone, address, business_hours, contract_status,
	user_id, created_at`

func scanShop(row rowScanner) (*models.Shop, error) {
	var shop models.Shop
	var userID *string
	err := row.Scan(
		&shop.ID,
		&shop.Name,
		&shop.Manager,
		&shop.Phone,
		&shop.Address,
		&shop.BusinessHours,
		&shop.ContractStatus,
		&userID,
		&shop.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		shop.UserID = *userID
	}
	return &shop, nil
}

// GetShops returns a filtered page of shops.
func (r *PostgresVendorRepository) GetShops(ctx context.Context, limit, offset int, name, contractStatus string) ([]models.Shop, error) {
	query := shopSelectColumns + ` FROM shop`
	var filters []string
	var args []interface{}
	argIndex := 1

	if name != "" {
		filters = append(filters, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+name+"%")
		argIndex++
	}
	if contractStatus != "" {
		filters = append(filters, fmt.Sprintf("contract_status = $%d", argIndex))
		args = append(args, contractStatus)
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

	var shops []models.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, *shop)
	}
	return shops, rows.Err()
}

// CreateShop registers a shop with an active contract.
func (r *PostgresVendorRepository) CreateShop(ctx context.Context, req models.ShopRequest) (*models.Shop, error) {
	contractStatus := req.ContractStatus
	if contractStatus == "" {
		contractStatus = models.ActiveContract
	}
	newShop := models.Shop{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Manager:        req.Manager,
		Phone:          req.Phone,
		Address:        req.Address,
		BusinessHours:  req.BusinessHours,
		ContractStatus: contractStatus,
		CreatedAt:      time.Now().UTC(),
	}

	insertQuery := `INSERT INTO shop (id, name, manager, phone, address, business_hours, contract_status, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(ctx, insertQuery,
		newShop.ID,
		newShop.Name,
		newShop.Manager,
		newShop.Phone,
		newShop.Address,
		newShop.BusinessHours,
		newShop.ContractStatus,
		newShop.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &newShop, nil
}

// UpdateShop edits a shop's profile and contract status.
func (r *PostgresVendorRepository) UpdateShop(ctx context.Context, shopID string, req models.ShopRequest) (*models.Shop, error) {
	query := `UPDATE shop SET name = $1, manager = $2, phone = $3, address = $4, business_hours = $5,
	                          contract_status = $6
	          WHERE id = $7`
	_, err := r.DB.Exec(ctx, query, req.Name, req.Manager, req.Phone, req.Address, req.BusinessHours, req.ContractStatus, shopID)
	if err != nil {
		return nil, err
	}
	return scanShop(r.DB.QueryRow(ctx, shopSelectColumns+` FROM shop WHERE id = $1`, shopID))
}

// DeleteShop removes a shop.
func (r *PostgresVendorRepository) DeleteShop(ctx context.Context, shopID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM shop WHERE id = $1`, shopID)
	return err
}

// BindShopUser links a shop to a login account.
func (r *PostgresVendorRepository) BindShopUser(ctx context.Context, shopID, userID string) error {
	_, err := r.DB.Exec(ctx, `UPDATE shop SET user_id = $1 WHERE id = $2`, userID, shopID)
	return err
}
