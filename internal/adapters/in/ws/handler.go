package ws

import (
	"net/http"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// ChannelHandler upgrades HTTP requests into shopper event channel sessions.
type ChannelHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewChannelHandler creates the upgrade handler for the given hub.
func NewChannelHandler(hub *Hub) *ChannelHandler {
	return &ChannelHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handle serves GET /api/v1/shoppers/:shopperId/channel. The request blocks
// for the lifetime of the session.
func (h *ChannelHandler) Handle(ctx echo.Context) error {
	shopperID, err := kernel.UUIDFromString(ctx.Param("shopperId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": "invalid shopper id",
		})
	}

	conn, err := h.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	return h.hub.Attach(ctx.Request().Context(), shopperID, conn)
}
