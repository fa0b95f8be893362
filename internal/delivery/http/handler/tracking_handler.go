package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freightline/internal/invoice"
	"freightline/internal/usecase/admin"
	"freightline/internal/usecase/tracking"
	"freightline/pkg/utils"
)

// TrackingHandler serves the public tracking page: the shipment view and its
// invoice. No session required.
type TrackingHandler struct {
	tracking *tracking.Service
	admin    *admin.Service
}

func NewTrackingHandler(trackingService *tracking.Service, adminService *admin.Service) *TrackingHandler {
	return &TrackingHandler{tracking: trackingService, admin: adminService}
}

func (h *TrackingHandler) RegisterRoutes(router *gin.RouterGroup) {
	track := router.Group("/track")
	{
		track.GET("/:trackingNumber", h.Track)
		track.GET("/:trackingNumber/invoice", h.Invoice)
	}
}

func (h *TrackingHandler) Track(c *gin.Context) {
	view, err := h.tracking.Track(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved successfully", view)
}

func (h *TrackingHandler) Invoice(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("trackingNumber"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid tracking number")
		return
	}

	sh, err := h.admin.Get(c.Request.Context(), shipmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice generated", invoice.FromShipment(sh, time.Now()))
}
