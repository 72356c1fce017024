package lifecycle

import "github.com/partsflow/procurement-service/internal/models"

// Forward-only transition tables. The only escape from the happy path is the
// deadline sweep (pending -> cancelled, quoted -> closed).
var demandTransitions = map[models.DemandStatus][]models.DemandStatus{
	models.PendingDemand:   {models.QuotedDemand, models.CancelledDemand},
	models.QuotedDemand:    {models.ConfirmedDemand, models.ClosedDemand},
	models.ConfirmedDemand: {models.CompletedDemand},
	models.CompletedDemand: {},
	models.CancelledDemand: {},
	models.ClosedDemand:    {},
}

var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.PendingShipmentOrder: {models.ShippedOrder},
	models.ShippedOrder:         {models.CompletedOrder},
	models.CompletedOrder:       {},
}

// CanDemandTransition reports whether a demand may move from one status to another.
func CanDemandTransition(from, to models.DemandStatus) bool {
	for _, allowed := range demandTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanOrderTransition reports whether an order may move from one status to another.
func CanOrderTransition(from, to models.OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
