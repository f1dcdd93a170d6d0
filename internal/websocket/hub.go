package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"blog-api/internal/domain"
	"blog-api/internal/observability"
)

// BroadcastMessage is an encoded event for the subscribers of one post.
type BroadcastMessage struct {
	PostID  string
	Type    string
	Message []byte
}

// Hub tracks the live comment feed subscribers of each post and fans
// events out to them. All map access happens on the Run goroutine.
type Hub struct {
	// Subscribed clients by post
	clients map[string]map[*Client]bool

	broadcast  chan *BroadcastMessage
	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *BroadcastMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) error {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			slog.Info("hub shutting down gracefully")
			return ctx.Err()

		case client := <-h.register:
			if h.clients[client.postID] == nil {
				h.clients[client.postID] = make(map[*Client]bool)
			}
			h.clients[client.postID][client] = true
			observability.WebSocketConnectionsActive.Inc()
			slog.Debug("feed subscriber registered",
				slog.String("user_id", client.userID),
				slog.String("post_id", client.postID))

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			for client := range h.clients[message.PostID] {
				select {
				case client.send <- message.Message:
					observability.WebSocketMessagesSent.WithLabelValues(message.Type).Inc()
				default:
					// Slow subscriber
					h.removeClient(client)
				}
			}
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	clients, ok := h.clients[client.postID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	observability.WebSocketConnectionsActive.Dec()
	slog.Debug("feed subscriber unregistered",
		slog.String("user_id", client.userID),
		slog.String("post_id", client.postID))

	if len(clients) == 0 {
		delete(h.clients, client.postID)
	}
}

func (h *Hub) shutdown() {
	close(h.done)

	for postID, clients := range h.clients {
		for client := range clients {
			close(client.send)
			observability.WebSocketConnectionsActive.Dec()
		}
		delete(h.clients, postID)
	}

	slog.Info("hub shutdown complete")
}

// Broadcast queues an encoded event for the subscribers of postID. It is
// a no-op once the hub has stopped.
func (h *Hub) Broadcast(postID, eventType string, message []byte) {
	select {
	case h.broadcast <- &BroadcastMessage{PostID: postID, Type: eventType, Message: message}:
	case <-h.done:
	}
}

// BroadcastEvent encodes event and queues it for the post's subscribers.
func (h *Hub) BroadcastEvent(event domain.CommentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode comment event: %w", err)
	}
	h.Broadcast(event.PostID, event.Type, data)
	return nil
}

// Register subscribes a client to its post's feed.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
