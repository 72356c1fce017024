package models

import "time"

type OrderStatus string // Fulfillment status of an order

const (
	PendingShipmentOrder OrderStatus = "pending_shipment" // Created by an award, supplier preparing
	ShippedOrder         OrderStatus = "shipped"          // Supplier recorded a tracking number
	CompletedOrder       OrderStatus = "completed"        // Buyer confirmed receipt
)

// Evaluation holds the buyer's optional feedback attached on receipt.
// Both scores use a 1-5 scale.
type Evaluation struct {
	DeliveryScore int    `json:"deliveryScore"`
	QualityScore  int    `json:"qualityScore"`
	Comment       string `json:"comment,omitempty"`
}

// Order represents the fulfillment record created when a quote is awarded.
// Exactly one order exists per awarded demand. The abnormal flag is additive
// metadata layered over the status, never a status value of its own.
type Order struct {
	ID               string      `json:"id"`
	OrderNo          string      `json:"orderNo"`
	DemandID         string      `json:"demandId"`
	QuoteID          string      `json:"quoteId"`
	SupplierID       string      `json:"supplierId"`
	ShopID           string      `json:"shopId"`
	AmountCents      int64       `json:"amountCents"`
	Status           OrderStatus `json:"status"`
	TrackingNo       string      `json:"trackingNo,omitempty"`
	LogisticsCompany string      `json:"logisticsCompany,omitempty"`
	Abnormal         bool        `json:"abnormal"`
	AbnormalReason   string      `json:"abnormalReason,omitempty"`
	Evaluation       *Evaluation `json:"evaluation,omitempty"`
	Version          int32       `json:"version"`
	CreatedAt        time.Time   `json:"createdAt"`
	ShippedAt        *time.Time  `json:"shippedAt,omitempty"`
	CompletedAt      *time.Time  `json:"completedAt,omitempty"`
}

// ShipmentRequest represents the payload for recording a shipment.
type ShipmentRequest struct {
	TrackingNo       string `json:"trackingNo"`
	LogisticsCompany string `json:"logisticsCompany"`
}
