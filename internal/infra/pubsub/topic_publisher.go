package pubsub

import (
	"context"
	"log/slog"

	"credguard/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// topicPublisher sends events to a Google Pub/Sub topic, ordered per username.
type topicPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Publisher
	logger *slog.Logger
}

func newTopicPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (*topicPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "create pubsub client")
	}

	name := "projects/" + projectID + "/topics/" + topicID
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: name}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "look up topic %s", name)
	}

	topic := client.Publisher(topicID)
	topic.EnableMessageOrdering = true
	logger.Info("publishing security events", slog.String("topic", name))

	return &topicPublisher{client: client, topic: topic, logger: logger}, nil
}

func (p *topicPublisher) PublishSecurityEvent(ctx context.Context, event *service.SecurityEvent) error {
	encoded, err := encodeEvent(event)
	if err != nil {
		return err
	}

	id, err := p.topic.Publish(ctx, &pubsub.Message{
		Data:        encoded.data,
		Attributes:  encoded.attributes,
		OrderingKey: event.Username,
	}).Get(ctx)
	if err != nil {
		// a failed ordered publish pauses its key until resumed
		p.topic.ResumePublish(event.Username)

		return errors.Wrapf(err, "publish %s event", event.Type)
	}

	p.logger.Debug("security event published", slog.String("type", string(event.Type)), slog.String("message_id", id))

	return nil
}

func (p *topicPublisher) Close() error {
	p.topic.Stop()

	return errors.WithStack(p.client.Close())
}
