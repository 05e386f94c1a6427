package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"credguard/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	pushSubscription = "projects/local/subscriptions/security-events-sub"
	pushTimeout      = 10 * time.Second
)

// pushEnvelope is the body Pub/Sub sends to push subscriptions.
type pushEnvelope struct {
	Message      pushMessage `json:"message"`
	Subscription string      `json:"subscription"`
}

type pushMessage struct {
	// Data is base64 encoded by encoding/json.
	Data        []byte            `json:"data"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	MessageID   string            `json:"messageId"`
	PublishTime time.Time         `json:"publishTime"`
}

// pushPublisher posts every event straight to a push endpoint, for local development.
type pushPublisher struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func newPushPublisher(endpoint string, logger *slog.Logger) *pushPublisher {
	return &pushPublisher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: pushTimeout},
		logger:   logger,
	}
}

func (p *pushPublisher) PublishSecurityEvent(ctx context.Context, event *service.SecurityEvent) error {
	encoded, err := encodeEvent(event)
	if err != nil {
		return err
	}

	envelope := pushEnvelope{
		Message: pushMessage{
			Data:        encoded.data,
			Attributes:  encoded.attributes,
			MessageID:   uuid.NewString(),
			PublishTime: time.Now().UTC(),
		},
		Subscription: pushSubscription,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "push %s event", event.Type)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return errors.Errorf("push endpoint %s answered %d", p.endpoint, resp.StatusCode)
	}

	p.logger.Debug("security event pushed",
		slog.String("type", string(event.Type)),
		slog.String("message_id", envelope.Message.MessageID),
	)

	return nil
}

func (p *pushPublisher) Close() error {
	p.client.CloseIdleConnections()

	return nil
}
