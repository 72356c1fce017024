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

type mockVendorRepo struct {
	suppliers map[string]*models.Supplier
}

func newMockVendorRepo() *mockVendorRepo {
	return &mockVendorRepo{suppliers: make(map[string]*models.Supplier)}
}

func (m *mockVendorRepo) GetSuppliers(ctx context.Context, limit, offset int, name, region, status string) ([]models.Supplier, error) {
	var out []models.Supplier
	for _, s := range m.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockVendorRepo) GetSupplierByID(ctx context.Context, supplierID string) (*models.Supplier, error) {
	supplier, ok := m.suppliers[supplierID]
	if !ok {
		return nil, models.NewErrorResponse(http.StatusNotFound, "supplier not found")
	}
	copied := *supplier
	return &copied, nil
}

func (m *mockVendorRepo) CreateSupplier(ctx context.Context, req models.SupplierRequest) (*models.Supplier, error) {
	supplier := &models.Supplier{
		ID:        "sup-" + req.Name,
		Name:      req.Name,
		Manager:   req.Manager,
		Phone:     req.Phone,
		Status:    models.PendingSupplier,
		CreatedAt: time.Now().UTC(),
	}
	m.suppliers[supplier.ID] = supplier
	return supplier, nil
}

func (m *mockVendorRepo) UpdateSupplier(ctx context.Context, supplierID string, req models.SupplierRequest) (*models.Supplier, error) {
	supplier := m.suppliers[supplierID]
	supplier.Name = req.Name
	supplier.Manager = req.Manager
	supplier.Phone = req.Phone
	copied := *supplier
	return &copied, nil
}

func (m *mockVendorRepo) DeleteSupplier(ctx context.Context, supplierID string) error {
	delete(m.suppliers, supplierID)
	return nil
}

func (m *mockVendorRepo) UpdateSupplierStatus(ctx context.Context, supplierID string, status models.SupplierStatus, reason string) (*models.Supplier, error) {
	supplier := m.suppliers[supplierID]
	supplier.Status = status
	supplier.AuditReason = reason
	copied := *supplier
	return &copied, nil
}

func (m *mockVendorRepo) CountPendingAudits(ctx context.Context) (int, error) {
	count := 0
	for _, s := range m.suppliers {
		if s.Status == models.PendingSupplier || s.Status == models.ReviewingSupplier {
			count++
		}
	}
	return count, nil
}

func (m *mockVendorRepo) GetShops(ctx context.Context, limit, offset int, name, contractStatus string) ([]models.Shop, error) {
	return nil, nil
}

func (m *mockVendorRepo) CreateShop(ctx context.Context, req models.ShopRequest) (*models.Shop, error) {
	return &models.Shop{ID: "shop-1", Name: req.Name, Manager: req.Manager}, nil
}

func (m *mockVendorRepo) UpdateShop(ctx context.Context, shopID string, req models.ShopRequest) (*models.Shop, error) {
	return &models.Shop{ID: shopID, Name: req.Name}, nil
}

func (m *mockVendorRepo) DeleteShop(ctx context.Context, shopID string) error { return nil }

func (m *mockVendorRepo) BindShopUser(ctx context.Context, shopID, userID string) error { return nil }

func seedSupplier(t *testing.T, repo *mockVendorRepo, status models.SupplierStatus) string {
	t.Helper()
	supplier, err := repo.CreateSupplier(context.Background(), models.SupplierRequest{
		Name:    "Wuhan Auto Parts",
		Manager: "Li Wei",
		Phone:   "13800000000",
	})
	require.NoError(t, err)
	supplier.Status = status
	repo.suppliers[supplier.ID] = supplier
	return supplier.ID
}

func TestAuditSupplierApprove(t *testing.T) {
	repo := newMockVendorRepo()
	service := NewVendorService(repo)
	supplierID := seedSupplier(t, repo, models.PendingSupplier)

	supplier, err := service.AuditSupplier(context.Background(), supplierID, "approved", "")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovedSupplier, supplier.Status)
}

func TestAuditSupplierReviewThenReject(t *testing.T) {
	repo := newMockVendorRepo()
	service := NewVendorService(repo)
	supplierID := seedSupplier(t, repo, models.PendingSupplier)

	_, err := service.AuditSupplier(context.Background(), supplierID, "reviewing", "")
	require.NoError(t, err)

	supplier, err := service.AuditSupplier(context.Background(), supplierID, "rejected", "incomplete business license")
	require.NoError(t, err)
	assert.Equal(t, models.RejectedSupplier, supplier.Status)
	assert.Equal(t, "incomplete business license", supplier.AuditReason)
}

func TestAuditSupplierRejectionRequiresReason(t *testing.T) {
	repo := newMockVendorRepo()
	service := NewVendorService(repo)
	supplierID := seedSupplier(t, repo, models.PendingSupplier)

	_, err := service.AuditSupplier(context.Background(), supplierID, "rejected", "  ")
	require.Error(t, err)
	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errResp.StatusCode)
}

func TestAuditSupplierTerminalStatusIsFinal(t *testing.T) {
	repo := newMockVendorRepo()
	service := NewVendorService(repo)

	for _, status := range []models.SupplierStatus{models.ApprovedSupplier, models.RejectedSupplier} {
		supplierID := seedSupplier(t, repo, status)

		_, err := service.AuditSupplier(context.Background(), supplierID, "reviewing", "")
		require.Error(t, err)
		errResp, ok := err.(*models.ErrorResponse)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, errResp.StatusCode)
	}
}

func TestAuditSupplierNotFound(t *testing.T) {
	repo := newMockVendorRepo()
	service := NewVendorService(repo)

	_, err := service.AuditSupplier(context.Background(), "missing", "approved", "")
	require.Error(t, err)
	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
}
