package services

import (
	"errors"
	"net/http"

	"github.com/partsflow/procurement-service/internal/lifecycle"
	"github.com/partsflow/procurement-service/internal/models"
)

// mapLifecycleError translates engine errors into the HTTP-facing error shape.
func mapLifecycleError(err error, fallback string) *models.ErrorResponse {
	switch {
	case errors.Is(err, lifecycle.ErrDemandNotFound),
		errors.Is(err, lifecycle.ErrQuoteNotFound),
		errors.Is(err, lifecycle.ErrOrderNotFound):
		return models.NewErrorResponse(http.StatusNotFound, err.Error())
	case errors.Is(err, lifecycle.ErrInvalidTrackingNo),
		errors.Is(err, lifecycle.ErrReasonRequired),
		errors.Is(err, lifecycle.ErrInvalidRating):
		return models.NewErrorResponse(http.StatusBadRequest, err.Error())
	case errors.Is(err, lifecycle.ErrDeadlinePassed),
		errors.Is(err, lifecycle.ErrDemandClosed),
		errors.Is(err, lifecycle.ErrAlreadyAwarded),
		errors.Is(err, lifecycle.ErrNotYetShipped),
		errors.Is(err, lifecycle.ErrAlreadyShipped),
		errors.Is(err, lifecycle.ErrAlreadyReceived),
		errors.Is(err, lifecycle.ErrDuplicateQuote),
		errors.Is(err, lifecycle.ErrVersionConflict):
		return models.NewErrorResponse(http.StatusConflict, err.Error())
	}
	return models.NewErrorResponse(http.StatusInternalServerError, fallback)
}
