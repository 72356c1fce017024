package services

import (
	"context"
	"net/http"

	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/repository"
	"github.com/partsflow/procurement-service/internal/utils"
)

type MasterDataService struct {
	Repo repository.MasterDataRepository
}

// NewMasterDataService creates a new MasterDataService.
func NewMasterDataService(repo repository.MasterDataRepository) *MasterDataService {
	return &MasterDataService{Repo: repo}
}

// FetchBrands returns a filtered page of brands.
func (s *MasterDataService) FetchBrands(ctx context.Context, limitStr, offsetStr, name string) ([]models.Brand, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	return s.Repo.GetBrands(ctx, limit, offset, name)
}

// CreateBrand registers a new brand.
func (s *MasterDataService) CreateBrand(ctx context.Context, req models.BrandRequest) (*models.Brand, error) {
	if req.Name == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "brand name is required")
	}
	return s.Repo.CreateBrand(ctx, req)
}

// UpdateBrand edits a brand.
func (s *MasterDataService) UpdateBrand(ctx context.Context, brandID string, req models.BrandRequest) (*models.Brand, error) {
	if brandID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "brandId is required")
	}
	if req.Name == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "brand name is required")
	}
	if _, err := s.Repo.GetBrandByID(ctx, brandID); err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "brand not found")
	}
	return s.Repo.UpdateBrand(ctx, brandID, req)
}

// DeleteBrand removes a brand.
func (s *MasterDataService) DeleteBrand(ctx context.Context, brandID string) error {
	if brandID == "" {
		return models.NewErrorResponse(http.StatusBadRequest, "brandId is required")
	}
	if _, err := s.Repo.GetBrandByID(ctx, brandID); err != nil {
		return models.NewErrorResponse(http.StatusNotFound, "brand not found")
	}
	return s.Repo.DeleteBrand(ctx, brandID)
}

// FetchCategoryTree returns the category hierarchy as nested nodes.
func (s *MasterDataService) FetchCategoryTree(ctx context.Context) ([]models.CategoryNode, error) {
	categories, err := s.Repo.GetCategories(ctx)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch categories")
	}
	return BuildCategoryTree(categories), nil
}

// CreateCategory adds a category node, optionally under an existing parent.
func (s *MasterDataService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "category name is required")
	}
	if req.ParentID != "" {
		if _, err := s.Repo.GetCategoryByID(ctx, req.ParentID); err != nil {
			return nil, models.NewErrorResponse(http.StatusNotFound, "parent category not found")
		}
	}
	return s.Repo.CreateCategory(ctx, req)
}

// UpdateCategory edits a category's name, parent and sort position.
func (s *MasterDataService) UpdateCategory(ctx context.Context, categoryID string, req models.CategoryRequest) (*models.Category, error) {
	if categoryID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "categoryId is required")
	}
	if req.Name == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "category name is required")
	}
	if req.ParentID == categoryID {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "category cannot be its own parent")
	}
	if _, err := s.Repo.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "category not found")
	}
	if req.ParentID != "" {
		if _, err := s.Repo.GetCategoryByID(ctx, req.ParentID); err != nil {
			return nil, models.NewErrorResponse(http.StatusNotFound, "parent category not found")
		}
	}
	return s.Repo.UpdateCategory(ctx, categoryID, req)
}

// DeleteCategory removes a leaf category. Nodes with children stay put.
func (s *MasterDataService) DeleteCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return models.NewErrorResponse(http.StatusBadRequest, "categoryId is required")
	}
	if _, err := s.Repo.GetCategoryByID(ctx, categoryID); err != nil {
		return models.NewErrorResponse(http.StatusNotFound, "category not found")
	}
	children, err := s.Repo.CountCategoryChildren(ctx, categoryID)
	if err != nil {
		return models.NewErrorResponse(http.StatusInternalServerError, "failed to check category children")
	}
	if children > 0 {
		return models.NewErrorResponse(http.StatusConflict, "category still has child categories")
	}
	return s.Repo.DeleteCategory(ctx, categoryID)
}

// BuildCategoryTree assembles flat categories into root-level nodes with
// nested children, preserving the input order within each level.
func BuildCategoryTree(categories []models.Category) []models.CategoryNode {
	childrenByParent := make(map[string][]models.Category)
	for _, category := range categories {
		childrenByParent[category.ParentID] = append(childrenByParent[category.ParentID], category)
	}

	var build func(parentID string) []models.CategoryNode
	build = func(parentID string) []models.CategoryNode {
		var nodes []models.CategoryNode
		for _, category := range childrenByParent[parentID] {
			nodes = append(nodes, models.CategoryNode{
				Category: category,
				Children: build(category.ID),
			})
		}
		return nodes
	}
	return build("")
}
