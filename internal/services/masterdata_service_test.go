package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/partsflow/procurement-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMasterDataRepo struct {
	brands     map[string]*models.Brand
	categories []models.Category
}

func newMockMasterDataRepo() *mockMasterDataRepo {
	return &mockMasterDataRepo{brands: make(map[string]*models.Brand)}
}

func (m *mockMasterDataRepo) GetBrands(ctx context.Context, limit, offset int, name string) ([]models.Brand, error) {
	var out []models.Brand
	for _, b := range m.brands {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockMasterDataRepo) GetBrandByID(ctx context.Context, brandID string) (*models.Brand, error) {
	brand, ok := m.brands[brandID]
	if !ok {
		return nil, models.NewErrorResponse(http.StatusNotFound, "brand not found")
	}
	copied := *brand
	return &copied, nil
}

func (m *mockMasterDataRepo) CreateBrand(ctx context.Context, req models.BrandRequest) (*models.Brand, error) {
	brand := &models.Brand{
		ID:          "brand-" + req.Name,
		Name:        req.Name,
		Logo:        req.Logo,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	m.brands[brand.ID] = brand
	return brand, nil
}

func (m *mockMasterDataRepo) UpdateBrand(ctx context.Context, brandID string, req models.BrandRequest) (*models.Brand, error) {
	brand := m.brands[brandID]
	brand.Name = req.Name
	brand.Logo = req.Logo
	brand.Description = req.Description
	copied := *brand
	return &copied, nil
}

func (m *mockMasterDataRepo) DeleteBrand(ctx context.Context, brandID string) error {
	delete(m.brands, brandID)
	return nil
}

func (m *mockMasterDataRepo) GetCategories(ctx context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), m.categories...), nil
}

func (m *mockMasterDataRepo) GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.ID == categoryID {
			copied := c
			return &copied, nil
		}
	}
	return nil, models.NewErrorResponse(http.StatusNotFound, "category not found")
}

func (m *mockMasterDataRepo) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	category := models.Category{
		ID:        "cat-" + req.Name,
		Name:      req.Name,
		ParentID:  req.ParentID,
		Sort:      req.Sort,
		CreatedAt: time.Now().UTC(),
	}
	m.categories = append(m.categories, category)
	return &category, nil
}

func (m *mockMasterDataRepo) UpdateCategory(ctx context.Context, categoryID string, req models.CategoryRequest) (*models.Category, error) {
	for i := range m.categories {
		if m.categories[i].ID == categoryID {
			m.categories[i].Name = req.Name
			m.categories[i].ParentID = req.ParentID
			m.categories[i].Sort = req.Sort
			copied := m.categories[i]
			return &copied, nil
		}
	}
	return nil, models.NewErrorResponse(http.StatusNotFound, "category not found")
}

func (m *mockMasterDataRepo) DeleteCategory(ctx context.Context, categoryID string) error {
	for i := range m.categories {
		if m.categories[i].ID == categoryID {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockMasterDataRepo) CountCategoryChildren(ctx context.Context, categoryID string) (int, error) {
	count := 0
	for _, c := range m.categories {
		if c.ParentID == categoryID {
			count++
		}
	}
	return count, nil
}

func TestCreateBrandRequiresName(t *testing.T) {
	service := NewMasterDataService(newMockMasterDataRepo())

	_, err := service.CreateBrand(context.Background(), models.BrandRequest{Logo: "bosch.png"})
	require.Error(t, err)
	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errResp.StatusCode)
}

func TestDeleteBrandNotFound(t *testing.T) {
	service := NewMasterDataService(newMockMasterDataRepo())

	err := service.DeleteBrand(context.Background(), "missing")
	require.Error(t, err)
	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
}

func TestCreateCategoryUnknownParent(t *testing.T) {
	service := NewMasterDataService(newMockMasterDataRepo())

	_, err := service.CreateCategory(context.Background(), models.CategoryRequest{
		Name:     "Brake System",
		ParentID: "missing",
	})
	require.Error(t, err)
	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
}

func TestUpdateCategoryCannotBeOwnParent(t *testing.T) {
	repo := newMockMasterDataRepo()
	service := NewMasterDataService(repo)
	category, err := service.CreateCategory(context.Background(), models.CategoryRequest{Name: "Engine"})
	require.NoError(t, err)

	_, err = service.UpdateCategory(context.Background(), category.ID, models.CategoryRequest{
		Name:     "Engine",
		ParentID: category.ID,
	})
	require.Error(t, err)
	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errResp.StatusCode)
}

func TestDeleteCategoryWithChildrenRejected(t *testing.T) {
	repo := newMockMasterDataRepo()
	service := NewMasterDataService(repo)
	ctx := context.Background()

	parent, err := service.CreateCategory(ctx, models.CategoryRequest{Name: "Engine"})
	require.NoError(t, err)
	child, err := service.CreateCategory(ctx, models.CategoryRequest{Name: "Pistons", ParentID: parent.ID})
	require.NoError(t, err)

	err = service.DeleteCategory(ctx, parent.ID)
	require.Error(t, err)
	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, errResp.StatusCode)

	require.NoError(t, service.DeleteCategory(ctx, child.ID))
	require.NoError(t, service.DeleteCategory(ctx, parent.ID))
}

func TestFetchCategoryTreeNestsChildren(t *testing.T) {
	repo := newMockMasterDataRepo()
	service := NewMasterDataService(repo)
	ctx := context.Background()

	engine, err := service.CreateCategory(ctx, models.CategoryRequest{Name: "Engine", Sort: 1})
	require.NoError(t, err)
	_, err = service.CreateCategory(ctx, models.CategoryRequest{Name: "Pistons", ParentID: engine.ID})
	require.NoError(t, err)
	_, err = service.CreateCategory(ctx, models.CategoryRequest{Name: "Brakes", Sort: 2})
	require.NoError(t, err)

	tree, err := service.FetchCategoryTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Engine", tree[0].Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Pistons", tree[0].Children[0].Name)
	assert.Empty(t, tree[1].Children)
}

func TestBuildCategoryTreePreservesLevelOrder(t *testing.T) {
	categories := []models.Category{
		{ID: "c1", Name: "Engine"},
		{ID: "c2", Name: "Brakes"},
		{ID: "c3", Name: "Pads", ParentID: "c2"},
		{ID: "c4", Name: "Discs", ParentID: "c2"},
	}

	tree := BuildCategoryTree(categories)

	require.Len(t, tree, 2)
	assert.Equal(t, "Engine", tree[0].Name)
	assert.Equal(t, "Brakes", tree[1].Name)
	require.Len(t, tree[1].Children, 2)
	assert.Equal(t, "Pads", tree[1].Children[0].Name)
	assert.Equal(t, "Discs", tree[1].Children[1].Name)
}
