package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/services"
	"github.com/partsflow/procurement-service/internal/utils"

	"go.uber.org/zap"
)

// VendorHandler serves the supplier and shop management endpoints.
type VendorHandler struct {
	Service *services.VendorService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(service *services.VendorService, logger *zap.Logger, timeout time.Duration) *VendorHandler {
	return &VendorHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetSuppliers handles requests for the filtered supplier list.
func (h *VendorHandler) GetSuppliers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	name := r.URL.Query().Get("name")
	region := r.URL.Query().Get("region")
	status := r.URL.Query().Get("status")

	suppliers, err := h.Service.FetchSuppliers(ctx, limitStr, offsetStr, name, region, status)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch suppliers")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, suppliers)
}

// CreateSupplier handles a supplier registration.
func (h *VendorHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var supplierReq models.SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&supplierReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	supplier, err := h.Service.CreateSupplier(ctx, supplierReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to create supplier")
		return
	}

	h.Logger.Info("supplier registered",
		zap.String("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	utils.SendJSONResponse(w, http.StatusOK, supplier)
}

// UpdateSupplier handles edits to a supplier's profile.
func (h *VendorHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PATCH is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	supplierID := r.PathValue("supplierId")

	var supplierReq models.SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&supplierReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	supplier, err := h.Service.UpdateSupplier(ctx, supplierID, supplierReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to update supplier")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, supplier)
}

// DeleteSupplier handles removing a supplier.
func (h *VendorHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only DELETE is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	supplierID := r.PathValue("supplierId")

	if err := h.Service.DeleteSupplier(ctx, supplierID); err != nil {
		writeServiceError(w, h.Logger, err, "failed to delete supplier")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// AuditSupplier handles the admin's audit decision on a supplier.
func (h *VendorHandler) AuditSupplier(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	supplierID := r.PathValue("supplierId")

	var auditReq struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&auditReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	supplier, err := h.Service.AuditSupplier(ctx, supplierID, auditReq.Status, auditReq.Reason)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to audit supplier")
		return
	}

	h.Logger.Info("supplier audited",
		zap.String("supplier_id", supplierID),
		zap.String("status", auditReq.Status))
	utils.SendJSONResponse(w, http.StatusOK, supplier)
}

// GetShops handles requests for the filtered shop list.
func (h *VendorHandler) GetShops(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	name := r.URL.Query().Get("name")
	contractStatus := r.URL.Query().Get("contractStatus")

	shops, err := h.Service.FetchShops(ctx, limitStr, offsetStr, name, contractStatus)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch shops")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, shops)
}

// CreateShop handles registering a new shop.
func (h *VendorHandler) CreateShop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var shopReq models.ShopRequest
	if err := json.NewDecoder(r.Body).Decode(&shopReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shop, err := h.Service.CreateShop(ctx, shopReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to create shop")
		return
	}

	h.Logger.Info("shop registered",
		zap.String("shop_id", shop.ID),
		zap.String("name", shop.Name))
	utils.SendJSONResponse(w, http.StatusOK, shop)
}

// UpdateShop handles edits to a shop's profile.
func (h *VendorHandler) UpdateShop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PATCH is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	shopID := r.PathValue("shopId")

	var shopReq models.ShopRequest
	if err := json.NewDecoder(r.Body).Decode(&shopReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shop, err := h.Service.UpdateShop(ctx, shopID, shopReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to update shop")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, shop)
}

// DeleteShop handles removing a shop.
func (h *VendorHandler) DeleteShop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only DELETE is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	shopID := r.PathValue("shopId")

	if err := h.Service.DeleteShop(ctx, shopID); err != nil {
		writeServiceError(w, h.Logger, err, "failed to delete shop")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// BindShopUser handles linking a shop to a login account.
func (h *VendorHandler) BindShopUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	shopID := r.PathValue("shopId")

	var bindReq struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&bindReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.BindShopUser(ctx, shopID, bindReq.UserID); err != nil {
		writeServiceError(w, h.Logger, err, "failed to bind shop user")
		return
	}

	h.Logger.Info("shop user bound",
		zap.String("shop_id", shopID),
		zap.String("user_id", bindReq.UserID))
	w.WriteHeader(http.StatusOK)
}
