package messaging

import (
	"context"

	"blog-api/internal/domain"
	"blog-api/internal/observability"
)

// LocalPublisher delivers events straight to this instance's subscribers.
// It is used when no broker is configured.
type LocalPublisher struct {
	sink EventSink
}

var _ domain.EventPublisher = (*LocalPublisher)(nil)

func NewLocalPublisher(sink EventSink) *LocalPublisher {
	return &LocalPublisher{sink: sink}
}

func (p *LocalPublisher) Publish(_ context.Context, event domain.CommentEvent) error {
	if err := p.sink.BroadcastEvent(event); err != nil {
		observability.EventsPublished.WithLabelValues("local", "error").Inc()
		return err
	}
	observability.EventsPublished.WithLabelValues("local", "success").Inc()
	return nil
}
