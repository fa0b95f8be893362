package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"freightline/internal/notice"
	"freightline/pkg/utils"
)

// NoticeHandler manages the single site-wide announcement slot. Reading is
// public; publishing and clearing belong to the dashboard.
type NoticeHandler struct {
	holder *notice.Holder
}

func NewNoticeHandler(holder *notice.Holder) *NoticeHandler {
	return &NoticeHandler{holder: holder}
}

func (h *NoticeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notice", h.GetNotice)
}

func (h *NoticeHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.PUT("/notice", h.SetNotice)
	router.DELETE("/notice", h.ClearNotice)
}

func (h *NoticeHandler) GetNotice(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Notice retrieved", h.holder.Get())
}

type setNoticeRequest struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

func (h *NoticeHandler) SetNotice(c *gin.Context) {
	var req setNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Notice message is required")
		return
	}

	kind := req.Kind
	if kind == "" {
		kind = "info"
	}

	utils.SuccessResponse(c, http.StatusOK, "Notice published", h.holder.Set(strings.TrimSpace(req.Message), kind))
}

func (h *NoticeHandler) ClearNotice(c *gin.Context) {
	h.holder.Clear()
	utils.SuccessResponse(c, http.StatusOK, "Notice cleared", nil)
}
