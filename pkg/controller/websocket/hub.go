package websocket

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/domain/interfaces"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
	"github.com/secmon-lab/greetr/pkg/domain/model/page"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
)

// Hub maintains the set of connected pages and broadcasts messages to them
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Messages for every client
	broadcast chan []byte

	// Mutex to protect concurrent access to clients
	mu sync.RWMutex

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

var _ interfaces.PageBroadcaster = &Hub{}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub *Hub

	// The websocket connection
	conn *websocket.Conn

	// Buffered channel of outbound messages
	send chan []byte

	// Unique client ID for this connection
	clientID string

	ctx    context.Context
	cancel context.CancelFunc

	// Mutex to protect send channel
	mu sync.Mutex
}

const (
	// Maximum message size allowed from a page
	maxMessageSize = 4 * 1024

	// Maximum number of connected pages
	maxClients = 256

	// Buffer size for client send channel
	clientSendBufferSize = 64
)

// NewHub creates a new Hub
func NewHub(ctx context.Context) *Hub {
	ctx, cancel := context.WithCancel(ctx)
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	logger := logging.From(h.ctx)
	logger.Info("WebSocket Hub started")

	defer func() {
		logger.Info("WebSocket Hub stopped")
		h.cancel()
	}()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastAll(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	logger := logging.From(h.ctx)

	if len(h.clients) >= maxClients {
		logger.Warn("Maximum clients reached", "max_clients", maxClients)
		client.closeSend()
		client.cancel()
		return
	}

	h.clients[client] = true
	logger.Info("Client registered",
		"client_id", client.clientID,
		"total_clients", len(h.clients))

	welcome, err := page.NewStatusMessage(h.ctx, "connected").ToBytes()
	if err != nil {
		return
	}
	if !client.trySend(welcome) {
		delete(h.clients, client)
		client.closeSend()
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
		logging.From(h.ctx).Info("Client unregistered",
			"client_id", client.clientID,
			"remaining_clients", len(h.clients))
	}
	client.cancel()
}

// broadcastAll runs on the hub loop. Clients whose buffer is full are dropped.
func (h *Hub) broadcastAll(message []byte) {
	var stale []*Client

	h.mu.RLock()
	for client := range h.clients {
		if !client.trySend(message) {
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		logging.From(h.ctx).Warn("Dropping slow client", "client_id", client.clientID)
		h.unregisterClient(client)
	}
}

// Broadcast queues data for every connected page. It fails once the hub has
// been closed.
func (h *Hub) Broadcast(ctx context.Context, data []byte) error {
	if h.ctx.Err() != nil {
		return goerr.New("websocket hub is closed", goerr.T(errs.TagUnavailable))
	}

	select {
	case h.broadcast <- data:
		return nil
	case <-h.ctx.Done():
		return goerr.New("websocket hub is closed", goerr.T(errs.TagUnavailable))
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "broadcast cancelled")
	}
}

// ClientCount returns the number of connected pages
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NewClient creates a client for conn. conn may be nil in tests.
func (h *Hub) NewClient(conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(h.ctx)
	return &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, clientSendBufferSize),
		clientID: uuid.NewString(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Register registers a client with the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
		client.closeSend()
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Close stops the hub and disconnects every client
func (h *Hub) Close() error {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.cancel()
		client.closeSend()
	}
	h.clients = make(map[*Client]bool)

	return nil
}

// ID returns the unique ID of the client
func (c *Client) ID() string {
	return c.clientID
}

// Messages exposes the outbound queue of the client. The channel is closed
// when the client is unregistered.
func (c *Client) Messages() <-chan []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.send != nil {
		close(c.send)
		c.send = nil
	}
}

// trySend queues data without blocking. It reports false when the queue is
// full or closed.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.send == nil {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}
