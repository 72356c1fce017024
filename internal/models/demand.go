package models

import "time"

type DemandStatus string // Lifecycle status of a purchase demand

const (
	PendingDemand   DemandStatus = "pending"   // Published, waiting for the first quote
	QuotedDemand    DemandStatus = "quoted"    // Has at least one quote
	ConfirmedDemand DemandStatus = "confirmed" // Buyer awarded a quote
	CompletedDemand DemandStatus = "completed" // Linked order was received
	CancelledDemand DemandStatus = "cancelled" // Expired with no quotes
	ClosedDemand    DemandStatus = "closed"    // Expired with unresolved quotes
)

// Demand represents a buyer's purchase request for an auto part.
type Demand struct {
	ID          string       `json:"id"`
	DemandNo    string       `json:"demandNo"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CategoryID  string       `json:"categoryId"`
	Brand       string       `json:"brand"`
	PartName    string       `json:"partName"`
	Quantity    int          `json:"quantity"`
	BudgetCents int64        `json:"budgetCents"`
	Deadline    time.Time    `json:"deadline"`
	Status      DemandStatus `json:"status"`
	QuoteCount  int          `json:"quoteCount"`
	ShopID      string       `json:"shopId"`
	Attachments []string     `json:"attachments"`
	Version     int32        `json:"version"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// DemandRequest represents the payload for publishing a new demand.
type DemandRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	Brand       string    `json:"brand"`
	PartName    string    `json:"partName"`
	Quantity    int       `json:"quantity"`
	BudgetCents int64     `json:"budgetCents"`
	Deadline    time.Time `json:"deadline"`
	ShopID      string    `json:"shopId"`
	Attachments []string  `json:"attachments"`
}

// IsTerminal reports whether the demand can no longer change status.
func (s DemandStatus) IsTerminal() bool {
	return s == CompletedDemand || s == CancelledDemand || s == ClosedDemand
}
