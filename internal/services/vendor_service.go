package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/repository"
	"github.com/partsflow/procurement-service/internal/utils"
)

type VendorService struct {
	Repo repository.VendorRepository
}

// NewVendorService creates a new VendorService.
func NewVendorService(repo repository.VendorRepository) *VendorService {
	return &VendorService{Repo: repo}
}

// The supplier approval flow moves forward only; a rejected or approved
// supplier needs a new registration to re-enter review.
var allowedAuditTransitions = map[models.SupplierStatus][]models.SupplierStatus{
	models.PendingSupplier:   {models.ReviewingSupplier, models.ApprovedSupplier, models.RejectedSupplier},
	models.ReviewingSupplier: {models.ApprovedSupplier, models.RejectedSupplier},
	models.ApprovedSupplier:  {},
	models.RejectedSupplier:  {},
}

// FetchSuppliers returns a filtered page of suppliers.
func (s *VendorService) FetchSuppliers(ctx context.Context, limitStr, offsetStr, name, region, status string) ([]models.Supplier, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	return s.Repo.GetSuppliers(ctx, limit, offset, name, region, status)
}

// CreateSupplier registers a supplier pending audit.
func (s *VendorService) CreateSupplier(ctx context.Context, req models.SupplierRequest) (*models.Supplier, error) {
	if req.Name == "" || req.Manager == "" || req.Phone == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}
	return s.Repo.CreateSupplier(ctx, req)
}

// UpdateSupplier edits a supplier's profile.
func (s *VendorService) UpdateSupplier(ctx context.Context, supplierID string, req models.SupplierRequest) (*models.Supplier, error) {
	if supplierID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "supplierId is required")
	}
	if _, err := s.Repo.GetSupplierByID(ctx, supplierID); err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "supplier not found")
	}
	return s.Repo.UpdateSupplier(ctx, supplierID, req)
}

// DeleteSupplier removes a supplier.
func (s *VendorService) DeleteSupplier(ctx context.Context, supplierID string) error {
	if supplierID == "" {
		return models.NewErrorResponse(http.StatusBadRequest, "supplierId is required")
	}
	if _, err := s.Repo.GetSupplierByID(ctx, supplierID); err != nil {
		return models.NewErrorResponse(http.StatusNotFound, "supplier not found")
	}
	return s.Repo.DeleteSupplier(ctx, supplierID)
}

// AuditSupplier advances a supplier through the approval flow. Rejection
// requires a reason.
func (s *VendorService) AuditSupplier(ctx context.Context, supplierID, status, reason string) (*models.Supplier, error) {
	if supplierID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "supplierId is required")
	}
	newStatus := models.SupplierStatus(status)
	if newStatus == models.RejectedSupplier && strings.TrimSpace(reason) == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "rejection requires a reason")
	}

	supplier, err := s.Repo.GetSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "supplier not found")
	}

	valid := false
	for _, allowed := range allowedAuditTransitions[supplier.Status] {
		if allowed == newStatus {
			valid = true
		}
	}
	if !valid {
		return nil, models.NewErrorResponse(http.StatusConflict, "invalid audit status transition")
	}
	return s.Repo.UpdateSupplierStatus(ctx, supplierID, newStatus, reason)
}

// FetchShops returns a filtered page of shops.
func (s *VendorService) FetchShops(ctx context.Context, limitStr, offsetStr, name, contractStatus string) ([]models.Shop, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	return s.Repo.GetShops(ctx, limit, offset, name, contractStatus)
}

// CreateShop registers a new shop.
func (s *VendorService) CreateShop(ctx context.Context, req models.ShopRequest) (*models.Shop, error) {
	if req.Name == "" || req.Manager == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}
	return s.Repo.CreateShop(ctx, req)
}

// UpdateShop edits a shop's profile and contract status.
func (s *VendorService) UpdateShop(ctx context.Context, shopID string, req models.ShopRequest) (*models.Shop, error) {
	if shopID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "shopId is required")
	}
	switch req.ContractStatus {
	case models.ActiveContract, models.InactiveContract, models.ExpiredContract:
	default:
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid contract status")
	}

	shop, err := s.Repo.UpdateShop(ctx, shopID, req)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "shop not found")
	}
	return shop, nil
}

// DeleteShop removes a shop.
func (s *VendorService) DeleteShop(ctx context.Context, shopID string) error {
	if shopID == "" {
		return models.NewErrorResponse(http.StatusBadRequest, "shopId is required")
	}
	return s.Repo.DeleteShop(ctx, shopID)
}

// BindShopUser links a shop to a login account.
func (s *VendorService) BindShopUser(ctx context.Context, shopID, userID string) error {
	if shopID == "" || userID == "" {
		return models.NewErrorResponse(http.StatusBadRequest, "shopId and userId are required")
	}
	return s.Repo.BindShopUser(ctx, shopID, userID)
}
