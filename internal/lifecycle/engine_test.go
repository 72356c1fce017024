package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/partsflow/procurement-service/internal/lifecycle"
	"github.com/partsflow/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Setup ---

var baseTime = time.Date(2025, 8, 29, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func setupEngineTest(t *testing.T) (*lifecycle.Engine, *mockStore, *fixedClock, *mockDispatcher) {
	store := newMockStore()
	clock := &fixedClock{now: baseTime}
	dispatcher := &mockDispatcher{}
	engine := lifecycle.NewEngine(store, clock, dispatcher)
	return engine, store, clock, dispatcher
}

func seedDemand(store *mockStore, deadline time.Time) *models.Demand {
	demand := &models.Demand{
		ID:          uuid.New().String(),
		DemandNo:    "D-20250829-test",
		Title:       "Brake pads for GL8",
		PartName:    "brake pads",
		Quantity:    4,
		BudgetCents: 300000,
		Deadline:    deadline,
		Status:      models.PendingDemand,
		ShopID:      uuid.New().String(),
		Version:     1,
		CreatedAt:   baseTime,
	}
	store.demands[demand.ID] = demand
	return demand
}

func quoteRequest(priceCents int64) models.QuoteRequest {
	return models.QuoteRequest{
		SupplierID:     uuid.New().String(),
		PriceCents:     priceCents,
		Brand:          "Bosch",
		Quantity:       4,
		WarrantyMonths: 12,
		DeliveryHours:  48,
		ContactName:    "Wang",
		ContactPhone:   "13800000000",
	}
}

// --- SubmitQuote ---

func TestSubmitQuote_FirstQuoteMovesDemandToQuoted(t *testing.T) {
	engine, store, _, dispatcher := setupEngineTest(t)
	demand := seedDemand(store, baseTime.Add(72*time.Hour))

	quote, err := engine.SubmitQuote(context.Background(), demand.ID, quoteRequest(230000))

	require.NoError(t, err)
	assert.Equal(t, models.PendingQuote, quote.Status)
	assert.Equal(t, "Supplier A", quote.SupplierCode)

	saved, err := store.GetDemand(context.Background(), demand.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuotedDemand, saved.Status)
	assert.Equal(t, 1, saved.QuoteCount)

	require.Len(t, dispatcher.events, 1)
	event, ok := dispatcher.events[0].(lifecycle.QuoteSubmitted)
	require.True(t, ok)
	assert.Equal(t, demand.ID, event.DemandID)
}

func TestSubmitQuote_AssignsSupplierCodesInOrder(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	demand := seedDemand(store, baseTime.Add(72*time.Hour))

	first, err := engine.SubmitQuote(context.Background(), demand.ID, quoteRequest(230000))
	require.NoError(t, err)
	second, err := engine.SubmitQuote(context.Background(), demand.ID, quoteRequest(245000))
	require.NoError(t, err)

	assert.Equal(t, "Supplier A", first.SupplierCode)
	assert.Equal(t, "Supplier B", second.SupplierCode)
}

func TestSubmitQuote_DeadlinePassed(t *testing.T) {
	engine, store, clock, _ := setupEngineTest(t)
	demand := seedDemand(store, baseTime.Add(time.Hour))
	clock.now = baseTime.Add(2 * time.Hour)

	_, err := engine.SubmitQuote(context.Background(), demand.ID, quoteRequest(230000))

	assert.ErrorIs(t, err, lifecycle.ErrDeadlinePassed)
	saved, _ := store.GetDemand(context.Background(), demand.ID)
	assert.Equal(t, models.PendingDemand, saved.Status)
}

func TestSubmitQuote_DemandNotFound(t *testing.T) {
	engine, _, _, _ := setupEngineTest(t)

	_, err := engine.SubmitQuote(context.Background(), uuid.New().String(), quoteRequest(230000))

	assert.ErrorIs(t, err, lifecycle.ErrDemandNotFound)
}

func TestSubmitQuote_ClosedDemand(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	demand := seedDemand(store, baseTime.Add(72*time.Hour))
	demand.Status = models.CancelledDemand

	_, err := engine.SubmitQuote(context.Background(), demand.ID, quoteRequest(230000))

	assert.ErrorIs(t, err, lifecycle.ErrDemandClosed)
}

func TestSubmitQuote_SameSupplierTwiceRejected(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	demand := seedDemand(store, baseTime.Add(72*time.Hour))
	ctx := context.Background()
	req := quoteRequest(230000)

	_, err := engine.SubmitQuote(ctx, demand.ID, req)
	require.NoError(t, err)

	req.PriceCents = 220000
	_, err = engine.SubmitQuote(ctx, demand.ID, req)
	assert.ErrorIs(t, err, lifecycle.ErrDuplicateQuote)

	saved, _ := store.GetDemand(ctx, demand.ID)
	assert.Equal(t, 1, saved.QuoteCount)
	quotes, _ := store.ListQuotesByDemand(ctx, demand.ID)
	assert.Len(t, quotes, 1)
}

func TestSubmitQuote_ConcurrentDemandUpdateSurfacesVersionConflict(t *testing.T) {
	store := newMockStore()
	demand := seedDemand(store, baseTime.Add(72*time.Hour))
	racing := &racingStore{mockStore: store, demandID: demand.ID}
	engine := lifecycle.NewEngine(racing, &fixedClock{now: baseTime}, &mockDispatcher{})

	_, err := engine.SubmitQuote(context.Background(), demand.ID, quoteRequest(230000))

	assert.ErrorIs(t, err, lifecycle.ErrVersionConflict)
}

// --- AwardQuote ---

func TestAwardQuote_CascadesToSiblingsAndCreatesOrder(t *testing.T) {
	engine, store, _, dispatcher := setupEngineTest(t)
	demand := seedDemand(store, baseTime.Add(72*time.Hour))
	ctx := context.Background()

	winner, err := engine.SubmitQuote(ctx, demand.ID, quoteRequest(230000))
	require.NoError(t, err)
	loser, err := engine.SubmitQuote(ctx, demand.ID, quoteRequest(245000))
	require.NoError(t, err)
	dispatcher.Reset()

	order, err := engine.AwardQuote(ctx, demand.ID, winner.ID)

	require.NoError(t, err)
	assert.Equal(t, models.PendingShipmentOrder, order.Status)
	assert.Equal(t, winner.ID, order.QuoteID)
	assert.Equal(t, demand.ID, order.DemandID)
	assert.Equal(t, int64(230000), order.AmountCents)

	savedWinner, _ := store.GetQuote(ctx, winner.ID)
	savedLoser, _ := store.GetQuote(ctx, loser.ID)
	assert.Equal(t, models.WonQuote, savedWinner.Status)
	assert.Equal(t, models.LostQuote, savedLoser.Status)

	savedDemand, _ := store.GetDemand(ctx, demand.ID)
	assert.Equal(t, models.ConfirmedDemand, savedDemand.Status)

	// at most one quote per demand holds won status
	quotes, _ := store.ListQuotesByDemand(ctx, demand.ID)
	won := 0
	for _, q := range quotes {
		if q.Status == models.WonQuote {
			won++
		}
	}
	assert.Equal(t, 1, won)

	require.Len(t, dispatcher.events, 2)
	awarded, ok := dispatcher.events[0].(lifecycle.QuoteAwarded)
	require.True(t, ok)
	assert.Equal(t, order.ID, awarded.OrderID)
	lost, ok := dispatcher.events[1].(lifecycle.QuoteLost)
	require.True(t, ok)
	assert.Equal(t, loser.ID, lost.QuoteID)
}

func TestAwardQuote_PendingDemandWithoutQuotes(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	demand := seedDemand(store, baseTime.Add(72*time.Hour))

	_, err := engine.AwardQuote(context.Background(), demand.ID, uuid.New().String())

	assert.ErrorIs(t, err, lifecycle.ErrDemandClosed)
	saved, _ := store.GetDemand(context.Background(), demand.ID)
	assert.Equal(t, models.PendingDemand, saved.Status)
}

func TestAwardQuote_ForeignQuoteRejected(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	demand := seedDemand(store, baseTime.Add(72*time.Hour))
	other := seedDemand(store, baseTime.Add(72*time.Hour))
	ctx := context.Background()

	_, err := engine.SubmitQuote(ctx, demand.ID, quoteRequest(230000))
	require.NoError(t, err)
	foreign, err := engine.SubmitQuote(ctx, other.ID, quoteRequest(199000))
	require.NoError(t, err)

	_, err = engine.AwardQuote(ctx, demand.ID, foreign.ID)

	assert.ErrorIs(t, err, lifecycle.ErrQuoteNotFound)
	savedDemand, _ := store.GetDemand(ctx, demand.ID)
	assert.Equal(t, models.QuotedDemand, savedDemand.Status)
}

func TestAwardQuote_AlreadyAwardedLeavesStateUnchanged(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	demand := seedDemand(store, baseTime.Add(72*time.Hour))
	ctx := context.Background()

	winner, err := engine.SubmitQuote(ctx, demand.ID, quoteRequest(230000))
	require.NoError(t, err)
	loser, err := engine.SubmitQuote(ctx, demand.ID, quoteRequest(245000))
	require.NoError(t, err)

	first, err := engine.AwardQuote(ctx, demand.ID, winner.ID)
	require.NoError(t, err)

	_, err = engine.AwardQuote(ctx, demand.ID, loser.ID)
	assert.ErrorIs(t, err, lifecycle.ErrAlreadyAwarded)

	savedWinner, _ := store.GetQuote(ctx, winner.ID)
	savedLoser, _ := store.GetQuote(ctx, loser.ID)
	assert.Equal(t, models.WonQuote, savedWinner.Status)
	assert.Equal(t, models.LostQuote, savedLoser.Status)
	assert.Len(t, store.orders, 1)
	assert.Equal(t, first.ID, store.orderByDemand(demand.ID).ID)
}

// --- RecordShipment / ConfirmReceipt ---

func awardedOrder(t *testing.T, engine *lifecycle.Engine, store *mockStore) *models.Order {
	t.Helper()
	demand := seedDemand(store, baseTime.Add(72*time.Hour))
	ctx := context.Background()
	quote, err := engine.SubmitQuote(ctx, demand.ID, quoteRequest(230000))
	require.NoError(t, err)
	order, err := engine.AwardQuote(ctx, demand.ID, quote.ID)
	require.NoError(t, err)
	return order
}

func TestRecordShipment_RequiresTrackingNo(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	order := awardedOrder(t, engine, store)

	_, err := engine.RecordShipment(context.Background(), order.ID, "   ", "SF Express")

	assert.ErrorIs(t, err, lifecycle.ErrInvalidTrackingNo)
	saved, _ := store.GetOrder(context.Background(), order.ID)
	assert.Equal(t, models.PendingShipmentOrder, saved.Status)
}

func TestRecordShipment_Success(t *testing.T) {
	engine, store, _, dispatcher := setupEngineTest(t)
	order := awardedOrder(t, engine, store)
	dispatcher.Reset()

	shipped, err := engine.RecordShipment(context.Background(), order.ID, "SF123", "SF Express")

	require.NoError(t, err)
	assert.Equal(t, models.ShippedOrder, shipped.Status)
	assert.Equal(t, "SF123", shipped.TrackingNo)
	require.NotNil(t, shipped.ShippedAt)

	_, err = engine.RecordShipment(context.Background(), order.ID, "SF456", "SF Express")
	assert.ErrorIs(t, err, lifecycle.ErrAlreadyShipped)

	require.Len(t, dispatcher.events, 1)
	_, ok := dispatcher.events[0].(lifecycle.OrderShipped)
	assert.True(t, ok)
}

func TestConfirmReceipt_NotYetShipped(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	order := awardedOrder(t, engine, store)

	_, err := engine.ConfirmReceipt(context.Background(), order.ID, nil)

	assert.ErrorIs(t, err, lifecycle.ErrNotYetShipped)
}

func TestConfirmReceipt_InvalidRating(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	order := awardedOrder(t, engine, store)
	ctx := context.Background()

	_, err := engine.RecordShipment(ctx, order.ID, "SF123", "SF Express")
	require.NoError(t, err)

	_, err = engine.ConfirmReceipt(ctx, order.ID, &models.Evaluation{DeliveryScore: 6, QualityScore: 3})
	assert.ErrorIs(t, err, lifecycle.ErrInvalidRating)

	_, err = engine.ConfirmReceipt(ctx, order.ID, &models.Evaluation{DeliveryScore: 5, QualityScore: 0})
	assert.ErrorIs(t, err, lifecycle.ErrInvalidRating)
}

func TestConfirmReceipt_CompletesOrderAndDemand(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	order := awardedOrder(t, engine, store)
	ctx := context.Background()

	_, err := engine.RecordShipment(ctx, order.ID, "SF123", "SF Express")
	require.NoError(t, err)

	eval := &models.Evaluation{DeliveryScore: 5, QualityScore: 4, Comment: "fast delivery"}
	completed, err := engine.ConfirmReceipt(ctx, order.ID, eval)

	require.NoError(t, err)
	assert.Equal(t, models.CompletedOrder, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	require.NotNil(t, completed.Evaluation)
	assert.Equal(t, 5, completed.Evaluation.DeliveryScore)

	demand, _ := store.GetDemand(ctx, order.DemandID)
	assert.Equal(t, models.CompletedDemand, demand.Status)

	_, err = engine.ConfirmReceipt(ctx, order.ID, nil)
	assert.ErrorIs(t, err, lifecycle.ErrAlreadyReceived)
}

// --- Abnormal flag ---

func TestFlagOrderAbnormal_RequiresReasonAndKeepsStatus(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	order := awardedOrder(t, engine, store)
	ctx := context.Background()

	_, err := engine.FlagOrderAbnormal(ctx, order.ID, "  ")
	assert.ErrorIs(t, err, lifecycle.ErrReasonRequired)

	_, err = engine.RecordShipment(ctx, order.ID, "SF123", "SF Express")
	require.NoError(t, err)

	flagged, err := engine.FlagOrderAbnormal(ctx, order.ID, "delivered quantity short by 2")
	require.NoError(t, err)
	assert.True(t, flagged.Abnormal)
	assert.Equal(t, "delivered quantity short by 2", flagged.AbnormalReason)
	assert.Equal(t, models.ShippedOrder, flagged.Status)
}

func TestFlagQuoteAbnormal_StaysEligibleForAward(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	demand := seedDemand(store, baseTime.Add(72*time.Hour))
	ctx := context.Background()

	quote, err := engine.SubmitQuote(ctx, demand.ID, quoteRequest(50000))
	require.NoError(t, err)

	flagged, err := engine.FlagQuoteAbnormal(ctx, quote.ID, "price far below market")
	require.NoError(t, err)
	assert.True(t, flagged.Abnormal)
	assert.Equal(t, models.PendingQuote, flagged.Status)

	order, err := engine.AwardQuote(ctx, demand.ID, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), order.AmountCents)
}

// --- Sweep ---

func TestSweepExpiredDemands(t *testing.T) {
	engine, store, _, dispatcher := setupEngineTest(t)
	ctx := context.Background()

	unquoted := seedDemand(store, baseTime.Add(time.Hour))
	quoted := seedDemand(store, baseTime.Add(time.Hour))
	alive := seedDemand(store, baseTime.Add(96*time.Hour))

	pendingQuote, err := engine.SubmitQuote(ctx, quoted.ID, quoteRequest(230000))
	require.NoError(t, err)
	dispatcher.Reset()

	swept, err := engine.SweepExpiredDemands(ctx, baseTime.Add(2*time.Hour))

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{unquoted.ID, quoted.ID}, swept)

	savedUnquoted, _ := store.GetDemand(ctx, unquoted.ID)
	savedQuoted, _ := store.GetDemand(ctx, quoted.ID)
	savedAlive, _ := store.GetDemand(ctx, alive.ID)
	assert.Equal(t, models.CancelledDemand, savedUnquoted.Status)
	assert.Equal(t, models.ClosedDemand, savedQuoted.Status)
	assert.Equal(t, models.PendingDemand, savedAlive.Status)

	savedQuote, _ := store.GetQuote(ctx, pendingQuote.ID)
	assert.Equal(t, models.ExpiredQuote, savedQuote.Status)

	assert.Len(t, dispatcher.events, 2)
}

// --- End-to-end scenario ---

func TestProcurementScenario(t *testing.T) {
	engine, store, _, _ := setupEngineTest(t)
	ctx := context.Background()
	d1 := seedDemand(store, baseTime.Add(72*time.Hour))

	q1, err := engine.SubmitQuote(ctx, d1.ID, quoteRequest(230000))
	require.NoError(t, err)
	q2, err := engine.SubmitQuote(ctx, d1.ID, quoteRequest(245000))
	require.NoError(t, err)
	assert.Equal(t, models.PendingQuote, q1.Status)
	assert.Equal(t, models.PendingQuote, q2.Status)

	o1, err := engine.AwardQuote(ctx, d1.ID, q1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PendingShipmentOrder, o1.Status)
	assert.Equal(t, int64(230000), o1.AmountCents)

	savedQ1, _ := store.GetQuote(ctx, q1.ID)
	savedQ2, _ := store.GetQuote(ctx, q2.ID)
	assert.Equal(t, models.WonQuote, savedQ1.Status)
	assert.Equal(t, models.LostQuote, savedQ2.Status)

	shipped, err := engine.RecordShipment(ctx, o1.ID, "SF123", "SF Express")
	require.NoError(t, err)
	assert.Equal(t, models.ShippedOrder, shipped.Status)

	completed, err := engine.ConfirmReceipt(ctx, o1.ID, &models.Evaluation{DeliveryScore: 5, QualityScore: 5})
	require.NoError(t, err)
	assert.Equal(t, models.CompletedOrder, completed.Status)

	savedD1, _ := store.GetDemand(ctx, d1.ID)
	assert.Equal(t, models.CompletedDemand, savedD1.Status)
}

// --- Mocks ---

type mockStore struct {
	demands map[string]*models.Demand
	quotes  map[string]*models.Quote
	orders  map[string]*models.Order
}

func newMockStore() *mockStore {
	return &mockStore{
		demands: make(map[string]*models.Demand),
		quotes:  make(map[string]*models.Quote),
		orders:  make(map[string]*models.Order),
	}
}

func (m *mockStore) GetDemand(_ context.Context, id string) (*models.Demand, error) {
	demand, ok := m.demands[id]
	if !ok {
		return nil, lifecycle.ErrDemandNotFound
	}
	val := *demand
	return &val, nil
}

func (m *mockStore) GetQuote(_ context.Context, id string) (*models.Quote, error) {
	quote, ok := m.quotes[id]
	if !ok {
		return nil, lifecycle.ErrQuoteNotFound
	}
	val := *quote
	return &val, nil
}

func (m *mockStore) GetOrder(_ context.Context, id string) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, lifecycle.ErrOrderNotFound
	}
	val := *order
	return &val, nil
}

func (m *mockStore) ListQuotesByDemand(_ context.Context, demandID string) ([]models.Quote, error) {
	var quotes []models.Quote
	for _, q := range m.quotes {
		if q.DemandID == demandID {
			quotes = append(quotes, *q)
		}
	}
	return quotes, nil
}

func (m *mockStore) ListOpenDemands(_ context.Context) ([]models.Demand, error) {
	var demands []models.Demand
	for _, d := range m.demands {
		if d.Status == models.PendingDemand || d.Status == models.QuotedDemand {
			demands = append(demands, *d)
		}
	}
	return demands, nil
}

func (m *mockStore) CreateQuote(_ context.Context, quote *models.Quote) error {
	for _, q := range m.quotes {
		if q.DemandID == quote.DemandID && q.SupplierID == quote.SupplierID {
			return lifecycle.ErrDuplicateQuote
		}
	}
	val := *quote
	m.quotes[quote.ID] = &val
	return nil
}

func (m *mockStore) CreateOrder(_ context.Context, order *models.Order) error {
	val := *order
	m.orders[order.ID] = &val
	return nil
}

func (m *mockStore) UpdateDemand(_ context.Context, demand *models.Demand) error {
	existing, ok := m.demands[demand.ID]
	if !ok {
		return lifecycle.ErrDemandNotFound
	}
	if existing.Version != demand.Version {
		return lifecycle.ErrVersionConflict
	}
	val := *demand
	val.Version++
	m.demands[demand.ID] = &val
	return nil
}

func (m *mockStore) UpdateQuote(_ context.Context, quote *models.Quote) error {
	if _, ok := m.quotes[quote.ID]; !ok {
		return lifecycle.ErrQuoteNotFound
	}
	val := *quote
	m.quotes[quote.ID] = &val
	return nil
}

func (m *mockStore) UpdateOrder(_ context.Context, order *models.Order) error {
	existing, ok := m.orders[order.ID]
	if !ok {
		return lifecycle.ErrOrderNotFound
	}
	if existing.Version != order.Version {
		return lifecycle.ErrVersionConflict
	}
	val := *order
	val.Version++
	m.orders[order.ID] = &val
	return nil
}

func (m *mockStore) InTx(_ context.Context, fn func(lifecycle.Store) error) error {
	return fn(m)
}

func (m *mockStore) orderByDemand(demandID string) *models.Order {
	for _, o := range m.orders {
		if o.DemandID == demandID {
			return o
		}
	}
	return nil
}

// racingStore simulates a concurrent writer bumping the demand's version
// between the quote listing and the demand update inside a transaction.
type racingStore struct {
	*mockStore
	demandID string
}

func (s *racingStore) InTx(_ context.Context, fn func(lifecycle.Store) error) error {
	return fn(s)
}

func (s *racingStore) ListQuotesByDemand(ctx context.Context, demandID string) ([]models.Quote, error) {
	s.demands[s.demandID].Version++
	return s.mockStore.ListQuotesByDemand(ctx, demandID)
}

type mockDispatcher struct {
	events []lifecycle.Event
}

func (m *mockDispatcher) Dispatch(event lifecycle.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockDispatcher) Reset() {
	m.events = nil
}
