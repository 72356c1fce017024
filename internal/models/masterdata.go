package models

import "time"

// Brand represents a parts brand maintained by the admin as master data.
// Demands and quotes reference brands by name.
type Brand struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Logo        string    `json:"logo,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BrandRequest represents the payload for creating or updating a brand.
type BrandRequest struct {
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
}

// Category represents a node in the parts category hierarchy. A root category
// has an empty ParentID.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parentId,omitempty"`
	Sort      int       `json:"sort"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryRequest represents the payload for creating or updating a category.
type CategoryRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId"`
	Sort     int    `json:"sort"`
}

// CategoryNode is a category with its children, as served by the tree endpoint.
type CategoryNode struct {
	Category
	Children []CategoryNode `json:"children,omitempty"`
}
