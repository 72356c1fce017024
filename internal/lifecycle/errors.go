package lifecycle

import "errors"

// Typed failures returned by the engine. Every invalid transition is rejected
// synchronously with one of these; no transition partially applies.
var (
	ErrDemandNotFound    = errors.New("demand not found")
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrDeadlinePassed    = errors.New("demand deadline has passed")
	ErrDemandClosed      = errors.New("demand is no longer open")
	ErrAlreadyAwarded    = errors.New("demand has already been awarded")
	ErrNotYetShipped     = errors.New("order has not been shipped yet")
	ErrAlreadyShipped    = errors.New("order has already been shipped")
	ErrAlreadyReceived   = errors.New("order has already been received")
	ErrInvalidTrackingNo = errors.New("tracking number must not be empty")
	ErrReasonRequired    = errors.New("abnormal reason must not be empty")
	ErrInvalidRating     = errors.New("evaluation scores must be between 1 and 5")
	ErrDuplicateQuote    = errors.New("supplier has already quoted this demand")
	ErrVersionConflict   = errors.New("entity has been modified by another transaction")
)
