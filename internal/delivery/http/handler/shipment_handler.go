package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freightline/internal/domain/shipment"
	"freightline/internal/middleware"
	"freightline/internal/usecase/admin"
	"freightline/pkg/utils"
)

type ShipmentHandler struct {
	service *admin.Service
}

func NewShipmentHandler(service *admin.Service) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

func (h *ShipmentHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	shipments := router.Group("/shipments")
	{
		shipments.POST("", h.CreateShipment)
		shipments.GET("", h.ListShipments)
		shipments.GET("/:id", h.GetShipment)
		shipments.PUT("/:id", h.UpdateShipment)
		shipments.DELETE("/:id", h.DeleteShipment)

		shipments.POST("/:id/pause", h.PauseShipment)
		shipments.POST("/:id/resume", h.ResumeShipment)
		shipments.POST("/:id/stop", h.StopShipment)
		shipments.POST("/:id/resume-from-stop", h.ResumeFromStop)
		shipments.POST("/:id/terminate", h.TerminateShipment)
		shipments.POST("/:id/reactivate", h.ReactivateShipment)

		shipments.POST("/:id/select-checkpoint", h.SelectCheckpoint)
		shipments.POST("/:id/progress", h.SetProgress)
		shipments.POST("/:id/toggle-progress-bar", h.ToggleProgressBar)
		shipments.PUT("/:id/checkpoints/:checkpointId", h.EditCheckpoint)
	}
}

func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req admin.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	adminID := middleware.GetAdminID(c)

	result, err := h.service.Create(c.Request.Context(), adminID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shipment created successfully", result)
}

func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	adminID := middleware.GetAdminID(c)

	result, err := h.service.List(c.Request.Context(), adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipments retrieved successfully", result)
}

func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	shipmentID, ok := parseShipmentID(c)
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), shipmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved successfully", result)
}

func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	shipmentID, ok := parseShipmentID(c)
	if !ok {
		return
	}

	var req admin.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), shipmentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment updated successfully", result)
}

func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	shipmentID, ok := parseShipmentID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), shipmentID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment deleted successfully", nil)
}

func (h *ShipmentHandler) PauseShipment(c *gin.Context) {
	h.stateAction(c, h.service.Pause, "Shipment paused")
}

func (h *ShipmentHandler) ResumeShipment(c *gin.Context) {
	h.stateAction(c, h.service.Resume, "Shipment resumed")
}

func (h *ShipmentHandler) StopShipment(c *gin.Context) {
	shipmentID, ok := parseShipmentID(c)
	if !ok {
		return
	}

	var req admin.StopShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Stop(c.Request.Context(), shipmentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment stopped", result)
}

func (h *ShipmentHandler) ResumeFromStop(c *gin.Context) {
	h.stateAction(c, h.service.ResumeFromStop, "Shipment resumed from stop")
}

func (h *ShipmentHandler) TerminateShipment(c *gin.Context) {
	h.stateAction(c, h.service.Terminate, "Shipment terminated")
}

func (h *ShipmentHandler) ReactivateShipment(c *gin.Context) {
	h.stateAction(c, h.service.Reactivate, "Shipment reactivated")
}

func (h *ShipmentHandler) SelectCheckpoint(c *gin.Context) {
	shipmentID, ok := parseShipmentID(c)
	if !ok {
		return
	}

	var req admin.SelectCheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.SelectCheckpoint(c.Request.Context(), shipmentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Checkpoint selected", result)
}

func (h *ShipmentHandler) SetProgress(c *gin.Context) {
	shipmentID, ok := parseShipmentID(c)
	if !ok {
		return
	}

	var req admin.SetProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.SetProgress(c.Request.Context(), shipmentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Progress updated", result)
}

func (h *ShipmentHandler) ToggleProgressBar(c *gin.Context) {
	h.stateAction(c, h.service.ToggleProgressBarPause, "Progress bar toggled")
}

func (h *ShipmentHandler) EditCheckpoint(c *gin.Context) {
	shipmentID, ok := parseShipmentID(c)
	if !ok {
		return
	}

	checkpointID, err := uuid.Parse(c.Param("checkpointId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid checkpoint ID")
		return
	}

	var req admin.EditCheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.EditCheckpoint(c.Request.Context(), shipmentID, checkpointID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Checkpoint updated", result)
}

// stateAction runs one of the body-less state transitions.
func (h *ShipmentHandler) stateAction(
	c *gin.Context,
	action func(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error),
	message string,
) {
	shipmentID, ok := parseShipmentID(c)
	if !ok {
		return
	}

	result, err := action(c.Request.Context(), shipmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, result)
}

func parseShipmentID(c *gin.Context) (uuid.UUID, bool) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return uuid.Nil, false
	}
	return shipmentID, true
}
