package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "credguard/internal/delivery/context"
	"credguard/internal/domain/service"
)

// eventEmitter publishes security events. Publishing is best effort: a failure
// is logged and never fails the operation that triggered it.
type eventEmitter struct {
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func newEventEmitter(publisher service.EventPublisher, logger *slog.Logger) *eventEmitter {
	return &eventEmitter{publisher: publisher, logger: logger, now: time.Now}
}

func (e *eventEmitter) emit(ctx context.Context, typ service.SecurityEventType, username, actor string, attrs map[string]string) {
	if e.publisher == nil {
		return
	}

	event := &service.SecurityEvent{
		RequestID:  deliverycontext.RequestID(ctx),
		Type:       typ,
		Username:   username,
		Actor:      actor,
		Attributes: attrs,
		OccurredAt: e.now().UTC(),
	}

	if err := e.publisher.PublishSecurityEvent(ctx, event); err != nil {
		deliverycontext.Logger(ctx, e.logger).Warn("Failed to publish security event",
			slog.String("type", string(typ)),
			slog.String("username", username),
			slog.Any("error", err),
		)
	}
}
