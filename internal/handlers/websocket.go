package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/skillswap/signaling-server/internal/signaling"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is handled by middleware
		return true
	},
}

// HandleSignaling upgrades the connection and hands it to the coordinator.
// The participant handle is minted here, per connection: a client that
// reconnects gets a fresh one. Rooms are entered later via join-session
// events, so one connection can take part in several sessions.
func HandleSignaling(coord *signaling.Coordinator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		displayName := c.Query("displayName")

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		handle := uuid.New().String()
		client := signaling.NewClient(coord, conn, handle, displayName, log)
		coord.Register(client)
		client.Start()
	}
}
