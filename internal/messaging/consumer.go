package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"blog-api/internal/domain"
)

// EventSink delivers comment events to local subscribers.
type EventSink interface {
	BroadcastEvent(event domain.CommentEvent) error
}

// EventConsumer feeds events from EventsExchange into a local sink. Each
// instance binds its own exclusive queue, so every instance sees every event.
type EventConsumer struct {
	rmq  *RabbitMQ
	sink EventSink
}

func NewEventConsumer(rmq *RabbitMQ, sink EventSink) *EventConsumer {
	return &EventConsumer{rmq: rmq, sink: sink}
}

func (c *EventConsumer) Start(ctx context.Context) error {
	queue, err := c.rmq.channel.QueueDeclare(
		"",    // auto-generated name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare events queue: %w", err)
	}

	if err := c.rmq.channel.QueueBind(
		queue.Name,     // queue name
		"",             // routing key
		EventsExchange, // exchange
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to bind events queue: %w", err)
	}

	msgs, err := c.rmq.channel.Consume(
		queue.Name, // queue
		"",         // consumer
		true,       // auto-ack
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	slog.Info("started consuming comment events",
		slog.String("queue", queue.Name),
		slog.String("exchange", EventsExchange))

	go func() {
		for {
			select {
			case <-ctx.Done():
				slog.Info("stopping event consumer")
				return
			case msg, ok := <-msgs:
				if !ok {
					slog.Warn("event consumer channel closed")
					return
				}
				c.handle(msg.Body)
			}
		}
	}()

	return nil
}

func (c *EventConsumer) handle(body []byte) {
	var event domain.CommentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		slog.Error("error unmarshaling comment event",
			slog.String("error", err.Error()),
			slog.Int("body_size", len(body)))
		return
	}
	if event.PostID == "" {
		slog.Warn("dropping comment event without post id", slog.String("type", event.Type))
		return
	}

	if err := c.sink.BroadcastEvent(event); err != nil {
		slog.Error("error broadcasting comment event",
			slog.String("error", err.Error()),
			slog.String("post_id", event.PostID))
	}
}
