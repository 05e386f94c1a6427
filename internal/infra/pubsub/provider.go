// Package pubsub publishes credential security events to Google Pub/Sub, or
// to a local HTTP endpoint that mimics Pub/Sub push delivery.
package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"credguard/config"
	"credguard/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Supported publisher providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher picks the publisher named by pubsub.provider. An empty
// provider disables publishing.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	if cfg == nil || cfg.Provider == "" {
		params.Logger.Info("security event publishing disabled")

		return noopPublisher{}, nil
	}

	publisher, err := newPublisher(params.Ctx, cfg, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

func newPublisher(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	logger = logger.With(slog.String("provider", cfg.Provider))

	switch cfg.Provider {
	case ProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}

		return newPushPublisher(cfg.LocalEndpoint, logger), nil
	case ProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}

		return newTopicPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)
	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}

type noopPublisher struct{}

func (noopPublisher) PublishSecurityEvent(context.Context, *service.SecurityEvent) error { return nil }

func (noopPublisher) Close() error { return nil }

// encodedEvent is the JSON payload plus the attributes subscribers filter on.
type encodedEvent struct {
	data       []byte
	attributes map[string]string
}

func encodeEvent(event *service.SecurityEvent) (encodedEvent, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return encodedEvent{}, errors.Wrapf(err, "encode %s event", event.Type)
	}

	attributes := map[string]string{"type": string(event.Type)}
	for key, value := range map[string]string{"username": event.Username, "request_id": event.RequestID} {
		if value != "" {
			attributes[key] = value
		}
	}

	return encodedEvent{data: data, attributes: attributes}, nil
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
