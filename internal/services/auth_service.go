package services

import (
	"context"
	"net/http"
	"time"

	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/repository"
	"github.com/partsflow/procurement-service/internal/utils"
	"github.com/partsflow/procurement-service/pkg/jwtutil"

	"golang.org/x/crypto/bcrypt"
)

// defaultResetPassword is applied when an admin resets an account without
// choosing a new password. Users are expected to change it on first login.
const defaultResetPassword = "parts123456"

type AuthService struct {
	Repo      repository.UserRepository
	JWTSecret string
	TokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{Repo: repo, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

// Login verifies credentials and issues a token. Missing users and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, loginReq models.LoginRequest) (*models.LoginResponse, error) {
	if loginReq.Username == "" || loginReq.Password == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "username and password are required")
	}

	user, err := s.Repo.GetUserByUsername(ctx, loginReq.Username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(loginReq.Password)); err != nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid username or password")
	}
	if user.Status == models.InactiveUser {
		return nil, models.NewErrorResponse(http.StatusForbidden, "account is disabled")
	}

	token, err := jwtutil.GenerateToken(s.JWTSecret, s.TokenTTL, user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to issue token")
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string, role models.UserRole) (*models.User, error) {
	if username == "" || len(password) < 8 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "username is required and password must be at least 8 characters")
	}
	switch role {
	case models.AdminRole, models.SupplierRole, models.BuyerRole:
	default:
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to hash password")
	}

	user, err := s.Repo.CreateUser(ctx, username, string(hash), role)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusConflict, "username already taken")
	}
	return user, nil
}

// FetchUsers returns a filtered page of accounts for the admin user list.
func (s *AuthService) FetchUsers(ctx context.Context, limitStr, offsetStr, username, status string) ([]models.User, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	if status != "" && status != string(models.ActiveUser) && status != string(models.InactiveUser) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "unsupported user status: "+status)
	}
	return s.Repo.GetUsers(ctx, limit, offset, username, status)
}

// ToggleUserStatus flips an account between active and inactive.
func (s *AuthService) ToggleUserStatus(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "userId is required")
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "user not found")
	}

	newStatus := models.InactiveUser
	if user.Status == models.InactiveUser {
		newStatus = models.ActiveUser
	}
	if err := s.Repo.UpdateUserStatus(ctx, userID, newStatus); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to update user status")
	}
	user.Status = newStatus
	return user, nil
}

// ResetUserPassword replaces an account's password. An empty newPassword
// resets to the default the admin hands out offline.
func (s *AuthService) ResetUserPassword(ctx context.Context, userID, newPassword string) error {
	if userID == "" {
		return models.NewErrorResponse(http.StatusBadRequest, "userId is required")
	}
	if newPassword == "" {
		newPassword = defaultResetPassword
	}
	if len(newPassword) < 8 {
		return models.NewErrorResponse(http.StatusBadRequest, "password must be at least 8 characters")
	}

	if _, err := s.Repo.GetUserByID(ctx, userID); err != nil {
		return models.NewErrorResponse(http.StatusNotFound, "user not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewErrorResponse(http.StatusInternalServerError, "failed to hash password")
	}
	if err := s.Repo.UpdateUserPassword(ctx, userID, string(hash)); err != nil {
		return models.NewErrorResponse(http.StatusInternalServerError, "failed to reset password")
	}
	return nil
}
