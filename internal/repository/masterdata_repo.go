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

// MasterDataRepository provides access to the brand and category reference
// data maintained by the admin client.
type MasterDataRepository interface {
	GetBrands(ctx context.Context, limit, offset int, name string) ([]models.Brand, error)
	GetBrandByID(ctx context.Context, brandID string) (*models.Brand, error)
	CreateBrand(ctx context.Context, req models.BrandRequest) (*models.Brand, error)
	UpdateBrand(ctx context.Context, brandID string, req models.BrandRequest) (*models.Brand, error)
	DeleteBrand(ctx context.Context, brandID string) error

	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error)
	CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req models.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	CountCategoryChildren(ctx context.Context, categoryID string) (int, error)
}

// PostgresMasterDataRepository is the database-backed MasterDataRepository.
type PostgresMasterDataRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresMasterDataRepository creates a new PostgresMasterDataRepository.
func NewPostgresMasterDataRepository(db *pgxpool.Pool) *PostgresMasterDataRepository {
	return &PostgresMasterDataRepository{DB: db}
}

const brandSelectColumns = `SELECT id, name, logo, description, created_at`

func scanBrand(row rowScanner) (*models.Brand, error) {
	var brand models.Brand
	err := row.Scan(
		&brand.ID,
		&brand.Name,
		&brand.Logo,
		&brand.Description,
		&brand.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// GetBrands returns a filtered page of brands, ordered by name.
func (r *PostgresMasterDataRepository) GetBrands(ctx context.Context, limit, offset int, name string) ([]models.Brand, error) {
	query := brandSelectColumns + ` FROM brand`
	var args []interface{}
	argIndex := 1

	if name != "" {
		query += fmt.Sprintf(" WHERE name ILIKE $%d", argIndex)
		args = append(args, "%"+name+"%")
		argIndex++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, *brand)
	}
	return brands, rows.Err()
}

// GetBrandByID returns a single brand.
func (r *PostgresMasterDataRepository) GetBrandByID(ctx context.Context, brandID string) (*models.Brand, error) {
	query := brandSelectColumns + ` FROM brand WHERE id = $1`
	return scanBrand(r.DB.QueryRow(ctx, query, brandID))
}

// CreateBrand registers a new brand.
func (r *PostgresMasterDataRepository) CreateBrand(ctx context.Context, req models.BrandRequest) (*models.Brand, error) {
	newBrand := models.Brand{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Logo:        req.Logo,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	insertQuery := `INSERT INTO brand (id, name, logo, description, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.Exec(ctx, insertQuery,
		newBrand.ID,
		newBrand.Name,
		newBrand.Logo,
		newBrand.Description,
		newBrand.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &newBrand, nil
}

// UpdateBrand edits a brand.
func (r *PostgresMasterDataRepository) UpdateBrand(ctx context.Context, brandID string, req models.BrandRequest) (*models.Brand, error) {
	query := `UPDATE brand SET name = $1, logo = $2, description = $3 WHERE id = $4`
	_, err := r.DB.Exec(ctx, query, req.Name, req.Logo, req.Description, brandID)
	if err != nil {
		return nil, err
	}
	return r.GetBrandByID(ctx, brandID)
}

// DeleteBrand removes a brand.
func (r *PostgresMasterDataRepository) DeleteBrand(ctx context.Context, brandID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM brand WHERE id = $1`, brandID)
	return err
}

const categorySelectColumns = `SELECT id, name, parent_id, sort, created_at`

func scanCategory(row rowScanner) (*models.Category, error) {
	var category models.Category
	var parentID *string
	err := row.Scan(
		&category.ID,
		&category.Name,
		&parentID,
		&category.Sort,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		category.ParentID = *parentID
	}
	return &category, nil
}

// GetCategories returns the whole category table ordered for tree assembly.
func (r *PostgresMasterDataRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	query := categorySelectColumns + ` FROM category ORDER BY sort, name`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

// GetCategoryByID returns a single category.
func (r *PostgresMasterDataRepository) GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error) {
	query := categorySelectColumns + ` FROM category WHERE id = $1`
	return scanCategory(r.DB.QueryRow(ctx, query, categoryID))
}

// CreateCategory adds a category node.
func (r *PostgresMasterDataRepository) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	newCategory := models.Category{
		ID:        uuid.New().String(),
		Name:      req.Name,
		ParentID:  req.ParentID,
		Sort:      req.Sort,
		CreatedAt: time.Now().UTC(),
	}

	var parentID *string
	if newCategory.ParentID != "" {
		parentID = &newCategory.ParentID
	}

	insertQuery := `INSERT INTO category (id, name, parent_id, sort, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.Exec(ctx, insertQuery,
		newCategory.ID,
		newCategory.Name,
		parentID,
		newCategory.Sort,
		newCategory.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &newCategory, nil
}

// UpdateCategory edits a category's name, parent and sort position.
func (r *PostgresMasterDataRepository) UpdateCategory(ctx context.Context, categoryID string, req models.CategoryRequest) (*models.Category, error) {
	var parentID *string
	if trimmed := strings.TrimSpace(req.ParentID); trimmed != "" {
		parentID = &trimmed
	}

	query := `UPDATE category SET name = $1, parent_id = $2, sort = $3 WHERE id = $4`
	_, err := r.DB.Exec(ctx, query, req.Name, parentID, req.Sort, categoryID)
	if err != nil {
		return nil, err
	}
	return r.GetCategoryByID(ctx, categoryID)
}

// DeleteCategory removes a category node.
func (r *PostgresMasterDataRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM category WHERE id = $1`, categoryID)
	return err
}

// CountCategoryChildren counts a category's direct children.
func (r *PostgresMasterDataRepository) CountCategoryChildren(ctx context.Context, categoryID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM category WHERE parent_id = $1`
	err := r.DB.QueryRow(ctx, query, categoryID).Scan(&count)
	return count, err
}
