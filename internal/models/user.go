package models

import "time"

type (
	UserRole   string
	UserStatus string
)

const (
	AdminRole    UserRole = "admin"
	SupplierRole UserRole = "supplier"
	BuyerRole    UserRole = "buyer"

	ActiveUser   UserStatus = "active"
	InactiveUser UserStatus = "inactive"
)

// User represents a login account for any of the three client roles.
// An inactive account keeps its data but cannot log in.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// LoginRequest represents the credentials payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the account it belongs to.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
