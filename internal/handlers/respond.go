package handlers

import (
	"net/http"

	"github.com/partsflow/procurement-service/internal/models"
	"github.com/partsflow/procurement-service/internal/utils"

	"go.uber.org/zap"
)

// writeServiceError maps a service error onto the HTTP response. Errors the
// service did not classify become a 500 with the fallback message.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		logger.Warn(fallback, zap.Error(err))
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	logger.Error(fallback, zap.Error(err))
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
}
