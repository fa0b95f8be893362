package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"freightline/internal/config"
	"freightline/internal/logger"
	"freightline/internal/realtime"
	"freightline/pkg/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// RealtimeHandler upgrades tracking and dashboard clients onto the hub.
// A shipment_id query parameter scopes the socket to one shipment; a session
// token scopes it to every shipment of the admin.
type RealtimeHandler struct {
	hub *realtime.Hub
	cfg *config.Config

	upgrader websocket.Upgrader
}

func NewRealtimeHandler(hub *realtime.Hub, cfg *config.Config) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *RealtimeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", h.Subscribe)
}

func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	var shipmentID, adminID uuid.UUID

	switch {
	case c.Query("shipment_id") != "":
		id, err := uuid.Parse(c.Query("shipment_id"))
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
			return
		}
		shipmentID = id

	case c.Query("token") != "":
		claims, err := utils.ValidateSessionToken(c.Query("token"), h.cfg.Session.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired session")
			return
		}
		adminID = claims.AdminID

	default:
		utils.ErrorResponse(c, http.StatusBadRequest, "shipment_id or token is required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	sub := h.hub.Subscribe(shipmentID, adminID)

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
}

// writePump forwards hub events to the socket and keeps it alive with pings.
func (h *RealtimeHandler) writePump(conn *websocket.Conn, sub *realtime.Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-sub.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains the socket so close frames and pongs are processed; the
// client never sends application data.
func (h *RealtimeHandler) readPump(conn *websocket.Conn, sub *realtime.Subscriber) {
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
