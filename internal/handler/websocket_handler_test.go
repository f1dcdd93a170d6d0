package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/testutil"
	ws "blog-api/internal/websocket"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func startFeedServer(t *testing.T) (*testServer, *ws.Hub, *httptest.Server) {
	t.Helper()

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = hub.Run(ctx) }()

	ts := newTestServer(t, func(d *Deps) {
		d.Hub = hub
		d.AllowedOrigins = []string{"http://localhost:3000"}
	})
	srv := httptest.NewServer(ts.handler)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return ts, hub, srv
}

func feedURL(srv *httptest.Server, postID string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/posts/" + postID + "/comments"
}

func TestCommentFeed_ReceivesEvents(t *testing.T) {
	ts, hub, srv := startFeedServer(t)
	post := testutil.NewTestPost(testutil.WithPostID(uuid.NewString()), testutil.WithPublished())

	ts.posts.EXPECT().GetByID(gomock.Any(), post.ID).Return(post, nil)
	ts.content.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", domain.ErrContentNotFound)
	ts.tags.EXPECT().ListByPost(gomock.Any(), post.ID).Return(nil, nil)

	conn, resp, err := websocket.DefaultDialer.Dial(feedURL(srv, post.ID), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	received := make(chan domain.CommentEvent, 1)
	go func() {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var event domain.CommentEvent
		if json.Unmarshal(data, &event) == nil {
			received <- event
		}
	}()

	event := domain.CommentEvent{Type: domain.CommentCreated, PostID: post.ID, CommentID: uuid.NewString()}

	// Registration completes on the hub goroutine after the handshake, so
	// keep broadcasting until the subscriber sees an event.
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)
	for {
		require.NoError(t, hub.BroadcastEvent(event))
		select {
		case got := <-received:
			assert.Equal(t, domain.CommentCreated, got.Type)
			assert.Equal(t, event.CommentID, got.CommentID)
			return
		case <-timeout:
			t.Fatal("no event received")
		case <-ticker.C:
		}
	}
}

func TestCommentFeed_DraftOfAnotherUser(t *testing.T) {
	ts, _, srv := startFeedServer(t)
	post := testutil.NewTestPost(testutil.WithPostID(uuid.NewString()))

	ts.posts.EXPECT().GetByID(gomock.Any(), post.ID).Return(post, nil)

	_, resp, err := websocket.DefaultDialer.Dial(feedURL(srv, post.ID), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommentFeed_RejectsForeignOrigin(t *testing.T) {
	ts, _, srv := startFeedServer(t)
	post := testutil.NewTestPost(testutil.WithPostID(uuid.NewString()), testutil.WithPublished())

	ts.posts.EXPECT().GetByID(gomock.Any(), post.ID).Return(post, nil)
	ts.content.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", nil)
	ts.tags.EXPECT().ListByPost(gomock.Any(), post.ID).Return(nil, nil)

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(feedURL(srv, post.ID), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCommentFeed_InvalidPostID(t *testing.T) {
	_, _, srv := startFeedServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(feedURL(srv, "not-a-uuid"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
