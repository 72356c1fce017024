package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/partsflow/procurement-service/internal/lifecycle"

	"github.com/stretchr/testify/assert"
)

func TestMapLifecycleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"demand not found", lifecycle.ErrDemandNotFound, http.StatusNotFound},
		{"quote not found", lifecycle.ErrQuoteNotFound, http.StatusNotFound},
		{"order not found", lifecycle.ErrOrderNotFound, http.StatusNotFound},
		{"empty tracking number", lifecycle.ErrInvalidTrackingNo, http.StatusBadRequest},
		{"missing abnormal reason", lifecycle.ErrReasonRequired, http.StatusBadRequest},
		{"rating out of range", lifecycle.ErrInvalidRating, http.StatusBadRequest},
		{"deadline passed", lifecycle.ErrDeadlinePassed, http.StatusConflict},
		{"demand closed", lifecycle.ErrDemandClosed, http.StatusConflict},
		{"already awarded", lifecycle.ErrAlreadyAwarded, http.StatusConflict},
		{"duplicate quote", lifecycle.ErrDuplicateQuote, http.StatusConflict},
		{"version conflict", lifecycle.ErrVersionConflict, http.StatusConflict},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := mapLifecycleError(tt.err, "something went wrong")
			assert.Equal(t, tt.expected, resp.StatusCode)
		})
	}
}

func TestMapLifecycleError_UnknownUsesFallbackMessage(t *testing.T) {
	resp := mapLifecycleError(errors.New("pq: connection refused"), "failed to submit quote")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "failed to submit quote", resp.Message)
}
