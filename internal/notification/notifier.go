package notification

import (
	"github.com/partsflow/procurement-service/internal/lifecycle"
	"github.com/partsflow/procurement-service/internal/metrics"

	"go.uber.org/zap"
)

// LogNotifier publishes lifecycle events to the service log. It stands in for
// the SMS and in-app channels the clients poll; downstream consumers tail the
// structured log instead of a broker.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier writing through the given logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notification")}
}

// Dispatch records the event and its payload fields. It never returns an
// error; delivery problems must not affect the lifecycle transition.
func (n *LogNotifier) Dispatch(event lifecycle.Event) error {
	fields := []zap.Field{zap.String("event", event.Type())}

	switch e := event.(type) {
	case lifecycle.QuoteSubmitted:
		fields = append(fields,
			zap.String("demand_id", e.DemandID),
			zap.String("quote_id", e.QuoteID),
			zap.String("supplier_code", e.SupplierCode))
	case lifecycle.QuoteAwarded:
		fields = append(fields,
			zap.String("demand_id", e.DemandID),
			zap.String("quote_id", e.QuoteID),
			zap.String("order_id", e.OrderID),
			zap.Int64("amount_cents", e.AmountCents))
	case lifecycle.QuoteLost:
		fields = append(fields,
			zap.String("demand_id", e.DemandID),
			zap.String("quote_id", e.QuoteID))
	case lifecycle.QuoteFlaggedAbnormal:
		fields = append(fields,
			zap.String("quote_id", e.QuoteID),
			zap.String("reason", e.Reason))
	case lifecycle.OrderShipped:
		fields = append(fields,
			zap.String("order_id", e.OrderID),
			zap.String("tracking_no", e.TrackingNo))
	case lifecycle.OrderReceived:
		fields = append(fields,
			zap.String("order_id", e.OrderID),
			zap.String("demand_id", e.DemandID))
	case lifecycle.OrderFlaggedAbnormal:
		fields = append(fields,
			zap.String("order_id", e.OrderID),
			zap.String("reason", e.Reason))
	case lifecycle.DemandExpired:
		fields = append(fields,
			zap.String("demand_id", e.DemandID),
			zap.String("status", string(e.Status)))
	}

	n.logger.Info("lifecycle event", fields...)
	metrics.NotificationsTotal.WithLabelValues(event.Type()).Inc()
	return nil
}
