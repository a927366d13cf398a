package ws

import (
	"net/http"

	"fleetflow-service/internal/middleware"
	ws "fleetflow-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// cross-origin dashboards are expected; auth happens via token
		return true
	},
}

// WSHandler upgrades authenticated connections into live-feed clients.
type WSHandler struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewWSHandler(hub *ws.Hub, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{hub: hub, logger: logger}
}

// Connect upgrades the request. Runs behind AuthMiddleware, which accepts
// the token from the query string for browser websocket clients.
func (h *WSHandler) Connect(c *gin.Context) {
	claims := middleware.MustGetClaims(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(h.hub, conn, claims.Subject)
	client.Start()
}
