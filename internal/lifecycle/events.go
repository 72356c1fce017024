package lifecycle

import "github.com/partsflow/procurement-service/internal/models"

type Event interface{ Type() string }

// EventDispatcher delivers lifecycle events to a notification sink.
// Dispatch failures never roll back the transition that produced the event.
type EventDispatcher interface {
	Dispatch(event Event) error
}

type QuoteSubmitted struct {
	DemandID     string
	QuoteID      string
	SupplierCode string
}

func (e QuoteSubmitted) Type() string { return "QuoteSubmitted" }

type QuoteAwarded struct {
	DemandID    string
	QuoteID     string
	OrderID     string
	AmountCents int64
}

func (e QuoteAwarded) Type() string { return "QuoteAwarded" }

type QuoteLost struct {
	DemandID string
	QuoteID  string
}

func (e QuoteLost) Type() string { return "QuoteLost" }

type QuoteFlaggedAbnormal struct {
	QuoteID string
	Reason  string
}

func (e QuoteFlaggedAbnormal) Type() string { return "QuoteFlaggedAbnormal" }

type OrderShipped struct {
	OrderID    string
	TrackingNo string
}

func (e OrderShipped) Type() string { return "OrderShipped" }

type OrderReceived struct {
	OrderID  string
	DemandID string
}

func (e OrderReceived) Type() string { return "OrderReceived" }

type OrderFlaggedAbnormal struct {
	OrderID string
	Reason  string
}

func (e OrderFlaggedAbnormal) Type() string { return "OrderFlaggedAbnormal" }

type DemandExpired struct {
	DemandID string
	Status   models.DemandStatus
}

func (e DemandExpired) Type() string { return "DemandExpired" }
