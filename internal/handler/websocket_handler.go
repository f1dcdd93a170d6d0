package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"blog-api/internal/service"
	ws "blog-api/internal/websocket"

	"github.com/gorilla/websocket"
)

// WebSocketHandler upgrades requests into live comment feed subscriptions.
type WebSocketHandler struct {
	hub      *ws.Hub
	posts    *service.PostService
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a feed handler accepting browser connections
// from allowedOrigins only.
func NewWebSocketHandler(hub *ws.Hub, posts *service.PostService, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &WebSocketHandler{
		hub:   hub,
		posts: posts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

// CommentFeed subscribes the caller to the comment events of a post the
// caller can read.
func (h *WebSocketHandler) CommentFeed(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	viewer := viewerID(r)

	if _, err := h.posts.Get(r.Context(), viewer, id); err != nil {
		writeError(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		slog.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := ws.NewClient(h.hub, conn, id, viewer)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
