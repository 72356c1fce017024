package models

import "time"

type (
	SupplierStatus string // Approval status of a supplier profile
	ContractStatus string // Contract status of a shop
)

const (
	PendingSupplier   SupplierStatus = "pending"
	ReviewingSupplier SupplierStatus = "reviewing"
	ApprovedSupplier  SupplierStatus = "approved"
	RejectedSupplier  SupplierStatus = "rejected"

	ActiveContract   ContractStatus = "active"
	InactiveContract ContractStatus = "inactive"
	ExpiredContract  ContractStatus = "expired"
)

// Supplier represents a parts vendor with an independent approval lifecycle.
type Supplier struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Region      string         `json:"region"`
	Address     string         `json:"address"`
	Manager     string         `json:"manager"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Status      SupplierStatus `json:"status"`
	AuditReason string         `json:"auditReason,omitempty"`
	UserID      string         `json:"userId,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// SupplierRequest represents the payload for creating or updating a supplier.
type SupplierRequest struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Address string `json:"address"`
	Manager string `json:"manager"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Shop represents a buyer-side repair shop.
type Shop struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Manager        string         `json:"manager"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	BusinessHours  string         `json:"businessHours"`
	ContractStatus ContractStatus `json:"contractStatus"`
	UserID         string         `json:"userId,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// ShopRequest represents the payload for creating or updating a shop.
type ShopRequest struct {
	Name           string         `json:"name"`
	Manager        string         `json:"manager"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	BusinessHours  string         `json:"businessHours"`
	ContractStatus ContractStatus `json:"contractStatus"`
}
