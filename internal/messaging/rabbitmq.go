package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/observability"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventsExchange fans comment events out to every API instance.
const EventsExchange = "blog.events"

// RabbitMQ publishes comment events to EventsExchange.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

var _ domain.EventPublisher = (*RabbitMQ)(nil)

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	rmq := &RabbitMQ{
		conn:    conn,
		channel: ch,
	}

	if err := rmq.Setup(); err != nil {
		rmq.Close()
		return nil, err
	}

	return rmq, nil
}

// NewRabbitMQWithRetry dials until the broker accepts the connection or ctx
// is done, backing off linearly between attempts.
func NewRabbitMQWithRetry(ctx context.Context, url string) (*RabbitMQ, error) {
	var lastErr error
	for attempt := 1; ; attempt++ {
		rmq, err := NewRabbitMQ(url)
		if err == nil {
			return rmq, nil
		}
		lastErr = err

		delay := time.Duration(attempt) * time.Second
		if delay > 10*time.Second {
			delay = 10 * time.Second
		}
		slog.Warn("rabbitmq not ready, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up connecting to RabbitMQ after %d attempts: %w", attempt, lastErr)
		case <-time.After(delay):
		}
	}
}

func (r *RabbitMQ) Setup() error {
	if err := r.channel.ExchangeDeclare(
		EventsExchange, // name
		"fanout",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	); err != nil {
		return fmt.Errorf("failed to declare events exchange: %w", err)
	}

	slog.Info("rabbitmq setup completed successfully", slog.String("exchange", EventsExchange))
	return nil
}

// Publish sends a comment event to every subscribed instance.
func (r *RabbitMQ) Publish(ctx context.Context, event domain.CommentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		observability.EventsPublished.WithLabelValues("rabbitmq", "error").Inc()
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	r.mu.Lock()
	err = r.channel.PublishWithContext(
		ctx,
		EventsExchange,
		event.Type,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Type:        event.Type,
			Timestamp:   event.Timestamp,
			Body:        body,
		},
	)
	r.mu.Unlock()

	if err != nil {
		observability.EventsPublished.WithLabelValues("rabbitmq", "error").Inc()
		return fmt.Errorf("failed to publish event: %w", err)
	}

	observability.EventsPublished.WithLabelValues("rabbitmq", "success").Inc()
	slog.Debug("published comment event",
		slog.String("type", event.Type),
		slog.String("post_id", event.PostID))
	return nil
}

func (r *RabbitMQ) IsClosed() bool {
	return r.conn == nil || r.conn.IsClosed()
}

// Ping reports an error when the broker connection is gone.
func (r *RabbitMQ) Ping(_ context.Context) error {
	if r.IsClosed() {
		return fmt.Errorf("rabbitmq connection closed")
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
