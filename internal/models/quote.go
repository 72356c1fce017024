package models

import "time"

type QuoteStatus string // Lifecycle status of a supplier quote

const (
	PendingQuote QuoteStatus = "pending" // Submitted, waiting for the buyer's decision
	WonQuote     QuoteStatus = "won"     // Selected by the buyer
	LostQuote    QuoteStatus = "lost"    // A sibling quote was selected
	ExpiredQuote QuoteStatus = "expired" // Demand deadline passed before a decision
)

// Quote represents a supplier's priced response to a demand. The supplier is
// shown to buyers under an anonymized code until the quote wins.
type Quote struct {
	ID             string      `json:"id"`
	QuoteNo        string      `json:"quoteNo"`
	DemandID       string      `json:"demandId"`
	SupplierID     string      `json:"supplierId"`
	SupplierCode   string      `json:"supplierCode"`
	PriceCents     int64       `json:"priceCents"`
	Brand          string      `json:"brand"`
	Quantity       int         `json:"quantity"`
	WarrantyMonths int         `json:"warrantyMonths"`
	DeliveryHours  int         `json:"deliveryHours"`
	ContactName    string      `json:"contactName,omitempty"`
	ContactPhone   string      `json:"contactPhone,omitempty"`
	Status         QuoteStatus `json:"status"`
	Abnormal       bool        `json:"abnormal"`
	AbnormalReason string      `json:"abnormalReason,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// QuoteRequest represents the payload for submitting a quote against a demand.
type QuoteRequest struct {
	SupplierID     string `json:"supplierId"`
	PriceCents     int64  `json:"priceCents"`
	Brand          string `json:"brand"`
	Quantity       int    `json:"quantity"`
	WarrantyMonths int    `json:"warrantyMonths"`
	DeliveryHours  int    `json:"deliveryHours"`
	ContactName    string `json:"contactName"`
	ContactPhone   string `json:"contactPhone"`
}
