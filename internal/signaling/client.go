package signaling

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size. SDP offers stay well under this.
	maxMessageSize = 64 * 1024

	// Outbound buffer per connection. Sends beyond this are dropped.
	sendBufferSize = 256
)

// Client wraps one live websocket connection. Its ID is the participant
// handle: minted at upgrade time, unique per connection, discarded on
// disconnect. A user who reconnects gets a fresh handle.
type Client struct {
	ID          string
	DisplayName string

	coord *Coordinator
	conn  *websocket.Conn
	send  chan []byte
	log   *zap.Logger
}

// NewClient wraps an upgraded connection. The caller registers it with the
// coordinator and then calls Start.
func NewClient(coord *Coordinator, conn *websocket.Conn, handle, displayName string, log *zap.Logger) *Client {
	return &Client{
		ID:          handle,
		DisplayName: displayName,
		coord:       coord,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		log:         log.With(zap.String("handle", handle)),
	}
}

// Start launches the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// readPump reads frames off the connection and forwards them to the
// coordinator. It is the only reader on the connection; when it exits the
// client is unregistered, which cascades into room cleanup.
func (c *Client) readPump() {
	defer func() {
		c.coord.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.log.Warn("dropping malformed frame", zap.Error(err))
			continue
		}
		c.coord.deliver(c, env)
	}
}

// writePump is the only writer on the connection. It drains the send
// buffer and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Coordinator closed the channel on unregister.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Warn("websocket write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
