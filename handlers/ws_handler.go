package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/trackline/tracker/events"
	"github.com/trackline/tracker/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub *events.Hub
}

func NewWSHandler(hub *events.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// TicketEvents streams ticket state changes for one project to the browser.
func (h *WSHandler) TicketEvents(c *gin.Context) {
	project, err := utils.GetProjectFromContext(c)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.String(http.StatusInternalServerError, "websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(project.ID, conn)
	defer func() {
		h.hub.Unregister(project.ID, conn)
		conn.Close()
	}()

	// Drain the connection until the client goes away; the hub handles all
	// writes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
