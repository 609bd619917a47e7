package websocket

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/secmon-lab/greetr/pkg/domain/model/page"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
)

// Handler upgrades page connections and attaches them to the hub
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

// HandlePage handles the WebSocket connection of a live page
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	logger := logging.From(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an error response
		logger.Warn("failed to upgrade connection",
			"error", err,
			"error_type", fmt.Sprintf("%T", err))
		return
	}

	client := h.hub.NewClient(conn)
	h.hub.Register(client)

	logger.Info("WebSocket connection established",
		"client_id", client.ID(),
		"remote_addr", r.RemoteAddr)

	go h.writePump(client)
	go h.readPump(client)
}

// readPump reads pings from the page until the connection ends
func (h *Handler) readPump(client *Client) {
	logger := logging.From(client.ctx)

	defer func() {
		h.hub.Unregister(client)
		if err := client.conn.Close(); err != nil {
			logger.Debug("failed to close connection in readPump", "error", err)
		}
	}()

	client.conn.SetReadLimit(maxMessageSize)
	if err := client.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Error("failed to set read deadline", "error", err)
		return
	}
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("unexpected WebSocket close", "error", err)
			}
			return
		}

		var req page.Request
		if err := req.FromBytes(data); err != nil {
			logger.Warn("invalid message format", "error", err)
			h.reply(client, page.NewErrorMessage(client.ctx, "invalid message format"))
			continue
		}

		switch req.Type {
		case page.TypePing:
			h.reply(client, page.NewPongMessage(client.ctx))
		default:
			logger.Warn("unhandled message type", "type", req.Type)
			h.reply(client, page.NewErrorMessage(client.ctx, "unsupported message type"))
		}
	}
}

// writePump sends queued messages and keepalive pings to the page
func (h *Handler) writePump(client *Client) {
	logger := logging.From(client.ctx)
	send := client.Messages()
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		if err := client.conn.Close(); err != nil {
			logger.Debug("failed to close connection in writePump", "error", err)
		}
	}()

	for {
		select {
		case <-client.ctx.Done():
			return

		case message, ok := <-send:
			if err := client.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Error("failed to set write deadline", "error", err)
				return
			}
			if !ok {
				// The hub closed the channel
				if err := client.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Debug("failed to write close message", "error", err)
				}
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := client.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) reply(client *Client, msg *page.Message) {
	data, err := msg.ToBytes()
	if err != nil {
		return
	}
	// Dropped when the queue is full
	client.trySend(data)
}
