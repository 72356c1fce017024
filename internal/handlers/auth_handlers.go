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

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	Service *services.AuthService
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *services.AuthService, logger *zap.Logger, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// Login handles credential verification and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var loginReq models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(ctx, loginReq)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to log in")
		return
	}

	h.Logger.Info("user logged in", zap.String("username", loginReq.Username))
	utils.SendJSONResponse(w, http.StatusOK, resp)
}

// Register handles account creation.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var registerReq struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.Register(ctx, registerReq.Username, registerReq.Password, models.UserRole(registerReq.Role))
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to register")
		return
	}

	h.Logger.Info("user registered",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	utils.SendJSONResponse(w, http.StatusOK, user)
}

// GetUsers handles the admin's filtered account list.
func (h *AuthHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	username := r.URL.Query().Get("username")
	status := r.URL.Query().Get("status")

	users, err := h.Service.FetchUsers(ctx, limitStr, offsetStr, username, status)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to fetch users")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, users)
}

// ToggleUserStatus handles the admin flipping an account between active and
// inactive.
func (h *AuthHandler) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userID := r.PathValue("userId")

	user, err := h.Service.ToggleUserStatus(ctx, userID)
	if err != nil {
		writeServiceError(w, h.Logger, err, "failed to toggle user status")
		return
	}

	h.Logger.Info("user status toggled",
		zap.String("user_id", userID),
		zap.String("status", string(user.Status)))
	utils.SendJSONResponse(w, http.StatusOK, user)
}

// ResetUserPassword handles the admin resetting an account's password.
func (h *AuthHandler) ResetUserPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userID := r.PathValue("userId")

	var resetReq struct {
		Password string `json:"password"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&resetReq); err != nil {
			utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := h.Service.ResetUserPassword(ctx, userID, resetReq.Password); err != nil {
		writeServiceError(w, h.Logger, err, "failed to reset password")
		return
	}

	h.Logger.Info("user password reset", zap.String("user_id", userID))
	w.WriteHeader(http.StatusOK)
}
