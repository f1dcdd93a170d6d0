//go:build integration

package messaging_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRabbitMQContainer manages RabbitMQ container lifecycle for integration tests
type TestRabbitMQContainer struct {
	container testcontainers.Container
	url       string
}

// setupRabbitMQ starts a RabbitMQ container and returns connection URL
func setupRabbitMQ(t *testing.T) (*TestRabbitMQContainer, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3.12-management-alpine",
		ExposedPorts: []string{"5672/tcp", "15672/tcp"},
		Env: map[string]string{
			"RABBITMQ_DEFAULT_USER": "guest",
			"RABBITMQ_DEFAULT_PASS": "guest",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("Server startup complete"),
			wait.ForListeningPort("5672/tcp"),
		).WithDeadline(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start RabbitMQ container")

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5672")
	require.NoError(t, err)

	url := fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())

	// Wait for RabbitMQ to be fully ready
	time.Sleep(2 * time.Second)

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return &TestRabbitMQContainer{
		container: container,
		url:       url,
	}, cleanup
}

// TestRabbitMQConnection tests basic connection establishment
func TestRabbitMQConnection(t *testing.T) {
	testContainer, cleanup := setupRabbitMQ(t)
	defer cleanup()

	t.Run("successful_connection", func(t *testing.T) {
		rmq, err := messaging.NewRabbitMQ(testContainer.url)
		require.NoError(t, err)
		defer rmq.Close()

		assert.False(t, rmq.IsClosed())
		assert.NoError(t, rmq.Ping(context.Background()))
	})

	t.Run("invalid_url_fails", func(t *testing.T) {
		_, err := messaging.NewRabbitMQ("amqp://invalid:9999/")
		assert.Error(t, err)
	})

	t.Run("close_connection", func(t *testing.T) {
		rmq, err := messaging.NewRabbitMQ(testContainer.url)
		require.NoError(t, err)

		err = rmq.Close()
		assert.NoError(t, err)
		assert.True(t, rmq.IsClosed())
		assert.Error(t, rmq.Ping(context.Background()))
	})
}

type channelSink chan domain.CommentEvent

func (s channelSink) BroadcastEvent(event domain.CommentEvent) error {
	s <- event
	return nil
}

func awaitEvent(t *testing.T, sink channelSink) domain.CommentEvent {
	t.Helper()
	select {
	case event := <-sink:
		return event
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for comment event")
		return domain.CommentEvent{}
	}
}

// TestEventFanout checks that every consumer sees every published event.
func TestEventFanout(t *testing.T) {
	testContainer, cleanup := setupRabbitMQ(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher, err := messaging.NewRabbitMQ(testContainer.url)
	require.NoError(t, err)
	defer publisher.Close()

	sinks := make([]channelSink, 2)
	for i := range sinks {
		rmq, err := messaging.NewRabbitMQ(testContainer.url)
		require.NoError(t, err)
		defer rmq.Close()

		sinks[i] = make(channelSink, 10)
		require.NoError(t, messaging.NewEventConsumer(rmq, sinks[i]).Start(ctx))
	}

	event := domain.CommentEvent{
		Type:      domain.CommentCreated,
		PostID:    "post-1",
		CommentID: "comment-1",
		Comment:   &domain.Comment{ID: "comment-1", PostID: "post-1", Content: "first!", Mentions: []string{}},
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, publisher.Publish(ctx, event))

	for _, sink := range sinks {
		got := awaitEvent(t, sink)
		assert.Equal(t, event.Type, got.Type)
		assert.Equal(t, event.PostID, got.PostID)
		assert.Equal(t, "first!", got.Comment.Content)
	}
}

// TestConcurrentPublish publishes from many goroutines on one channel.
func TestConcurrentPublish(t *testing.T) {
	testContainer, cleanup := setupRabbitMQ(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rmq, err := messaging.NewRabbitMQ(testContainer.url)
	require.NoError(t, err)
	defer rmq.Close()

	const n = 20
	sink := make(channelSink, n)
	require.NoError(t, messaging.NewEventConsumer(rmq, sink).Start(ctx))

	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			errs <- rmq.Publish(ctx, domain.CommentEvent{
				Type:      domain.CommentDeleted,
				PostID:    "post-1",
				CommentID: fmt.Sprintf("comment-%d", i),
			})
		}(i)
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		seen[awaitEvent(t, sink).CommentID] = true
	}
	assert.Len(t, seen, n)
}
