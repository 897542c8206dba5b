package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/pkg/metrics"
	"gearguard/pkg/utils"
	appwebsocket "gearguard/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketController struct {
	hub    *appwebsocket.Hub
	logger *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, logger: logger}
}

// ServeWs upgrades an authenticated request and attaches the connection to the hub.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: upgrade failed", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, userID)
	if !c.hub.Register(client) {
		c.logger.Warn("WebSocket: hub stopped, dropping connection", zap.String("userID", userID))
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		return conn.Close()
	}
	metrics.WebsocketOpened()

	go client.WritePump()
	go func() {
		defer metrics.WebsocketClosed()
		client.ReadPump()
	}()

	c.logger.Info("WebSocket: client connected", zap.String("userID", userID))
	return nil
}
