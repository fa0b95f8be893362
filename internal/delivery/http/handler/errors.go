package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freightline/internal/domain/shipment"
	appErrors "freightline/pkg/errors"
	"freightline/pkg/utils"
)

// respondError maps service errors onto HTTP statuses. Unknown errors stay
// opaque to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shipment.ErrShipmentNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Shipment not found")

	case errors.Is(err, shipment.ErrShipmentExists):
		utils.ErrorResponse(c, http.StatusConflict, "Shipment already exists")

	case errors.Is(err, appErrors.ErrInvalidTrackingID):
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid tracking number")

	case errors.Is(err, appErrors.ErrUnlockRejected):
		utils.ErrorResponse(c, http.StatusForbidden, "Unlock gesture not recognized")

	case errors.Is(err, shipment.ErrShipmentStopped),
		errors.Is(err, shipment.ErrShipmentTerminated),
		errors.Is(err, shipment.ErrNotPaused),
		errors.Is(err, shipment.ErrNotStopped),
		errors.Is(err, shipment.ErrNotTerminated):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())

	case errors.Is(err, shipment.ErrStopReasonRequired),
		errors.Is(err, shipment.ErrCheckpointIndex),
		errors.Is(err, shipment.ErrCheckpointCount),
		errors.Is(err, shipment.ErrImageCount),
		errors.Is(err, shipment.ErrInvalidImageURL):
		utils.ErrorResponse(c, http.StatusBadRequest, messageFor(err))

	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// messageFor prefers the validator's field-level message when one was wrapped
// around the sentinel.
func messageFor(err error) string {
	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
