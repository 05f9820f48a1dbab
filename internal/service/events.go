package service

import (
	"context"
	"time"

	"github.com/abu-huda81/shop_backend/internal/logging"
)

// EventPublisher is what the services need from the kafka producer. Publish
// failures are logged and swallowed: events are best-effort, the request
// outcome never depends on the broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "topic", topic, "error", err)
	}
}
