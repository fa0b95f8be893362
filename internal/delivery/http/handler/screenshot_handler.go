package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightline/internal/storage"
	"freightline/internal/usecase/admin"
	"freightline/pkg/utils"
)

const maxScreenshotBytes = 5 << 20

// ScreenshotHandler accepts route screenshot uploads for a shipment and
// records the resulting public URL on the record.
type ScreenshotHandler struct {
	service *admin.Service
	store   *storage.ScreenshotStore
}

func NewScreenshotHandler(service *admin.Service, store *storage.ScreenshotStore) *ScreenshotHandler {
	return &ScreenshotHandler{service: service, store: store}
}

func (h *ScreenshotHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.POST("/shipments/:id/route-screenshot", h.Upload)
}

func (h *ScreenshotHandler) Upload(c *gin.Context) {
	shipmentID, ok := parseShipmentID(c)
	if !ok {
		return
	}

	// The shipment must exist before we touch the disk.
	if _, err := h.service.Get(c.Request.Context(), shipmentID); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("screenshot")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Screenshot file is required")
		return
	}
	if fileHeader.Size > maxScreenshotBytes {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Screenshot too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read screenshot")
		return
	}
	defer file.Close()

	url, err := h.store.Save(shipmentID, fileHeader.Filename, file)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to store screenshot")
		return
	}

	result, err := h.service.AttachRouteScreenshot(c.Request.Context(), shipmentID, url)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Screenshot uploaded", result)
}
