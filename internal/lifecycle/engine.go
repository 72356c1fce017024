package lifecycle

import (
	"context"
	"strings"
	"time"

	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/utils"

	"github.com/google/uuid"
)

// Engine enforces the demand -> quote -> award -> fulfillment lifecycle shared
// by all three clients. It assumes the caller serializes concurrent writes to
// the same demand; the store's version checks turn a lost race into
// ErrVersionConflict rather than a broken invariant.
type Engine struct {
	store      Store
	clock      Clock
	dispatcher EventDispatcher
}

// NewEngine creates a lifecycle engine over the given store, clock and sink.
func NewEngine(store Store, clock Clock, dispatcher EventDispatcher) *Engine {
	return &Engine{store: store, clock: clock, dispatcher: dispatcher}
}

// SubmitQuote records a supplier's quote against an open demand. The first
// quote moves the demand from pending to quoted. Suppliers are assigned an
// anonymized code in submission order.
func (e *Engine) SubmitQuote(ctx context.Context, demandID string, req models.QuoteRequest) (*models.Quote, error) {
	demand, err := e.store.GetDemand(ctx, demandID)
	if err != nil {
		return nil, err
	}
	if e.clock.Now().After(demand.Deadline) {
		return nil, ErrDeadlinePassed
	}
	if demand.Status != models.PendingDemand && demand.Status != models.QuotedDemand {
		return nil, ErrDemandClosed
	}

	var quote *models.Quote
	err = e.store.InTx(ctx, func(tx Store) error {
		siblings, err := tx.ListQuotesByDemand(ctx, demandID)
		if err != nil {
			return err
		}

		now := e.clock.Now()
		quote = &models.Quote{
			ID:             uuid.New().String(),
			QuoteNo:        utils.NewSequenceNo("Q", now),
			DemandID:       demandID,
			SupplierID:     req.SupplierID,
			SupplierCode:   utils.SupplierCode(len(siblings)),
			PriceCents:     req.PriceCents,
			Brand:          req.Brand,
			Quantity:       req.Quantity,
			WarrantyMonths: req.WarrantyMonths,
			DeliveryHours:  req.DeliveryHours,
			ContactName:    req.ContactName,
			ContactPhone:   req.ContactPhone,
			Status:         models.PendingQuote,
			CreatedAt:      now,
		}
		if err := tx.CreateQuote(ctx, quote); err != nil {
			return err
		}

		if demand.Status == models.PendingDemand {
			demand.Status = models.QuotedDemand
		}
		demand.QuoteCount = len(siblings) + 1
		return tx.UpdateDemand(ctx, demand)
	})
	if err != nil {
		return nil, err
	}

	_ = e.dispatcher.Dispatch(QuoteSubmitted{
		DemandID:     demandID,
		QuoteID:      quote.ID,
		SupplierCode: quote.SupplierCode,
	})
	return quote, nil
}

// AwardQuote selects one quote as the winner. All sibling quotes become lost
// and a fulfillment order is created, atomically with the demand transition.
// The buyer's explicit choice is authoritative; ties are never auto-resolved.
func (e *Engine) AwardQuote(ctx context.Context, demandID, quoteID string) (*models.Order, error) {
	demand, err := e.store.GetDemand(ctx, demandID)
	if err != nil {
		return nil, err
	}
	if demand.Status == models.ConfirmedDemand || demand.Status == models.CompletedDemand {
		return nil, ErrAlreadyAwarded
	}
	if !CanDemandTransition(demand.Status, models.ConfirmedDemand) {
		return nil, ErrDemandClosed
	}

	var order *models.Order
	var lost []string
	err = e.store.InTx(ctx, func(tx Store) error {
		quotes, err := tx.ListQuotesByDemand(ctx, demandID)
		if err != nil {
			return err
		}

		var winner *models.Quote
		for i := range quotes {
			if quotes[i].ID == quoteID {
				winner = &quotes[i]
			}
		}
		if winner == nil {
			return ErrQuoteNotFound
		}

		winner.Status = models.WonQuote
		if err := tx.UpdateQuote(ctx, winner); err != nil {
			return err
		}
		for i := range quotes {
			sibling := &quotes[i]
			if sibling.ID == quoteID || sibling.Status != models.PendingQuote {
				continue
			}
			sibling.Status = models.LostQuote
			if err := tx.UpdateQuote(ctx, sibling); err != nil {
				return err
			}
			lost = append(lost, sibling.ID)
		}

		demand.Status = models.ConfirmedDemand
		if err := tx.UpdateDemand(ctx, demand); err != nil {
			return err
		}

		now := e.clock.Now()
		order = &models.Order{
			ID:          uuid.New().String(),
			OrderNo:     utils.NewSequenceNo("O", now),
			DemandID:    demandID,
			QuoteID:     winner.ID,
			SupplierID:  winner.SupplierID,
			ShopID:      demand.ShopID,
			AmountCents: winner.PriceCents,
			Status:      models.PendingShipmentOrder,
			Version:     1,
			CreatedAt:   now,
		}
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	_ = e.dispatcher.Dispatch(QuoteAwarded{
		DemandID:    demandID,
		QuoteID:     quoteID,
		OrderID:     order.ID,
		AmountCents: order.AmountCents,
	})
	for _, id := range lost {
		_ = e.dispatcher.Dispatch(QuoteLost{DemandID: demandID, QuoteID: id})
	}
	return order, nil
}

// RecordShipment moves an order to shipped with a non-empty tracking number.
func (e *Engine) RecordShipment(ctx context.Context, orderID, trackingNo, logisticsCompany string) (*models.Order, error) {
	if strings.TrimSpace(trackingNo) == "" {
		return nil, ErrInvalidTrackingNo
	}

	order, err := e.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case models.ShippedOrder:
		return nil, ErrAlreadyShipped
	case models.CompletedOrder:
		return nil, ErrAlreadyReceived
	}

	now := e.clock.Now()
	order.Status = models.ShippedOrder
	order.TrackingNo = trackingNo
	order.LogisticsCompany = logisticsCompany
	order.ShippedAt = &now
	if err := e.store.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	_ = e.dispatcher.Dispatch(OrderShipped{OrderID: order.ID, TrackingNo: trackingNo})
	return order, nil
}

// ConfirmReceipt completes a shipped order, optionally attaching the buyer's
// evaluation, and completes the parent demand in the same transaction.
func (e *Engine) ConfirmReceipt(ctx context.Context, orderID string, eval *models.Evaluation) (*models.Order, error) {
	order, err := e.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case models.PendingShipmentOrder:
		return nil, ErrNotYetShipped
	case models.CompletedOrder:
		return nil, ErrAlreadyReceived
	}
	if eval != nil {
		if eval.DeliveryScore < 1 || eval.DeliveryScore > 5 ||
			eval.QualityScore < 1 || eval.QualityScore > 5 {
			return nil, ErrInvalidRating
		}
	}

	err = e.store.InTx(ctx, func(tx Store) error {
		now := e.clock.Now()
		order.Status = models.CompletedOrder
		order.CompletedAt = &now
		order.Evaluation = eval
		if err := tx.UpdateOrder(ctx, order); err != nil {
			return err
		}

		demand, err := tx.GetDemand(ctx, order.DemandID)
		if err != nil {
			return err
		}
		if demand.Status == models.ConfirmedDemand {
			demand.Status = models.CompletedDemand
			return tx.UpdateDemand(ctx, demand)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = e.dispatcher.Dispatch(OrderReceived{OrderID: order.ID, DemandID: order.DemandID})
	return order, nil
}

// FlagOrderAbnormal marks a non-terminal order as abnormal with a mandatory
// reason. The flag is additive: the order keeps its substantive status.
func (e *Engine) FlagOrderAbnormal(ctx context.Context, orderID, reason string) (*models.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	order, err := e.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.CompletedOrder {
		return nil, ErrAlreadyReceived
	}

	order.Abnormal = true
	order.AbnormalReason = reason
	if err := e.store.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	_ = e.dispatcher.Dispatch(OrderFlaggedAbnormal{OrderID: order.ID, Reason: reason})
	return order, nil
}

// FlagQuoteAbnormal marks a quote as abnormal (e.g. a price far off market
// norms). Classification only: the quote stays eligible for normal transitions.
func (e *Engine) FlagQuoteAbnormal(ctx context.Context, quoteID, reason string) (*models.Quote, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	quote, err := e.store.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	quote.Abnormal = true
	quote.AbnormalReason = reason
	if err := e.store.UpdateQuote(ctx, quote); err != nil {
		return nil, err
	}

	_ = e.dispatcher.Dispatch(QuoteFlaggedAbnormal{QuoteID: quote.ID, Reason: reason})
	return quote, nil
}

// SweepExpiredDemands closes open demands whose deadline is behind now.
// A pending demand is cancelled; a quoted one is closed and its pending quotes
// expire. Each demand sweeps in its own transaction. Returns swept demand ids.
func (e *Engine) SweepExpiredDemands(ctx context.Context, now time.Time) ([]string, error) {
	open, err := e.store.ListOpenDemands(ctx)
	if err != nil {
		return nil, err
	}

	var swept []string
	for i := range open {
		demand := open[i]
		if !now.After(demand.Deadline) {
			continue
		}

		err := e.store.InTx(ctx, func(tx Store) error {
			switch demand.Status {
			case models.PendingDemand:
				demand.Status = models.CancelledDemand
			case models.QuotedDemand:
				demand.Status = models.ClosedDemand
				quotes, err := tx.ListQuotesByDemand(ctx, demand.ID)
				if err != nil {
					return err
				}
				for j := range quotes {
					quote := &quotes[j]
					if quote.Status != models.PendingQuote {
						continue
					}
					quote.Status = models.ExpiredQuote
					if err := tx.UpdateQuote(ctx, quote); err != nil {
						return err
					}
				}
			default:
				return nil
			}
			return tx.UpdateDemand(ctx, &demand)
		})
		if err != nil {
			return nil, err
		}

		swept = append(swept, demand.ID)
		_ = e.dispatcher.Dispatch(DemandExpired{DemandID: demand.ID, Status: demand.Status})
	}
	return swept, nil
}
