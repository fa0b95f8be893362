package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightline/internal/usecase/admin"
	"freightline/pkg/utils"
)

// SessionHandler exchanges the hidden logo-tap gesture for a dashboard
// session token.
type SessionHandler struct {
	service *admin.Service
}

func NewSessionHandler(service *admin.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	session := router.Group("/session")
	{
		session.POST("/unlock", h.Unlock)
	}
}

func (h *SessionHandler) Unlock(c *gin.Context) {
	var req admin.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Unlock(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard unlocked", result)
}
