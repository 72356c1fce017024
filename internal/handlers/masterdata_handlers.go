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

// MasterDataHandler serves the brand and category reference-data endpoints.
type MasterDataHandler struct {
	Service *services.MasterDataService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewMasterDataHandler creates a new MasterDataHandler.
func NewMasterDataHandler(service *services.MasterDataService, logger *zap.Logger, timeout time.Duration) *MasterDataHandler {
	return &MasterDataHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetBrands handles requests for the filtered brand list.
func (h *MasterDataHandler) GetBrands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	name := r.URL.Query().Get("name")

	brands, err := h.Service.FetchBrands(ctx, limitStr, offsetStr, name)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch brands")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, brands)
}

// CreateBrand handles registering a new brand.
func (h *MasterDataHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var brandReq models.BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&brandReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand, err := h.Service.CreateBrand(ctx, brandReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to create brand")
		return
	}

	h.Logger.Info("brand created",
		zap.String("brand_id", brand.ID),
		zap.String("name", brand.Name))
	utils.SendJSONResponse(w, http.StatusOK, brand)
}

// UpdateBrand handles edits to a brand.
func (h *MasterDataHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PATCH is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	brandID := r.PathValue("brandId")

	var brandReq models.BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&brandReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand, err := h.Service.UpdateBrand(ctx, brandID, brandReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to update brand")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, brand)
}

// DeleteBrand handles removing a brand.
func (h *MasterDataHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only DELETE is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	brandID := r.PathValue("brandId")

	if err := h.Service.DeleteBrand(ctx, brandID); err != nil {
		writeServiceError(w, h.Logger, err, "failed to delete brand")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetCategoryTree handles requests for the nested category hierarchy.
func (h *MasterDataHandler) GetCategoryTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	tree, err := h.Service.FetchCategoryTree(ctx)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch category tree")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, tree)
}

// CreateCategory handles adding a category node.
func (h *MasterDataHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var categoryReq models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&categoryReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.Service.CreateCategory(ctx, categoryReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to create category")
		return
	}

	h.Logger.Info("category created",
		zap.String("category_id", category.ID),
		zap.String("name", category.Name))
	utils.SendJSONResponse(w, http.StatusOK, category)
}

// UpdateCategory handles edits to a category node.
func (h *MasterDataHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PATCH is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	categoryID := r.PathValue("categoryId")

	var categoryReq models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&categoryReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.Service.UpdateCategory(ctx, categoryID, categoryReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to update category")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, category)
}

// DeleteCategory handles removing a leaf category.
func (h *MasterDataHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only DELETE is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	categoryID := r.PathValue("categoryId")

	if err := h.Service.DeleteCategory(ctx, categoryID); err != nil {
		writeServiceError(w, h.Logger, err, "failed to delete category")
		return
	}
	w.WriteHeader(http.StatusOK)
}
