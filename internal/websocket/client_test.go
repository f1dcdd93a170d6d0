package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blog-api/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedServer upgrades every request into a subscriber of postID.
func feedServer(t *testing.T, hub *Hub, postID string, clients chan<- *Client) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, postID, "")
		hub.Register(client)
		if clients != nil {
			clients <- client
		}
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestNewClient(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "post-1", "user-1")

	assert.Equal(t, "post-1", client.postID)
	assert.Equal(t, "user-1", client.userID)
	assert.Equal(t, sendBuffer, cap(client.send))
	assert.False(t, client.closed.Load())
}

func TestClient_ReceivesBroadcast(t *testing.T) {
	hub, _ := startHub(t)
	registered := make(chan *Client, 1)
	server := feedServer(t, hub, "post-1", registered)

	conn := dial(t, server)
	<-registered

	hub.Broadcast("post-1", domain.CommentCreated, []byte(`{"type":"comment_created"}`))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	msgType, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, msgType)
	assert.JSONEq(t, `{"type":"comment_created"}`, string(msg))
}

func TestClient_PeerCloseUnregisters(t *testing.T) {
	hub, _ := startHub(t)
	registered := make(chan *Client, 1)
	server := feedServer(t, hub, "post-1", registered)

	conn := dial(t, server)
	client := <-registered

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	assertClosed(t, client.send)
	assert.Eventually(t, client.closed.Load, time.Second, 10*time.Millisecond)
}

func TestClient_HubShutdownClosesPeer(t *testing.T) {
	hub, cancel := startHub(t)
	registered := make(chan *Client, 1)
	server := feedServer(t, hub, "post-1", registered)

	conn := dial(t, server)
	<-registered
	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestClient_CloseConnection_Idempotent(t *testing.T) {
	hub, _ := startHub(t)
	registered := make(chan *Client, 1)
	server := feedServer(t, hub, "post-1", registered)

	dial(t, server)
	client := <-registered

	client.closeConnection()
	client.closeConnection()

	assert.ErrorIs(t, client.writeMessage(websocket.TextMessage, []byte("x")), websocket.ErrCloseSent)
}
