// Package events publishes domain events to Google Cloud Pub/Sub and to
// product analytics.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/core/ports"
	"google.golang.org/api/option"
)

// PubSubPublisher publishes every event as a JSON message on one topic.
// The event type travels as the "event_type" attribute so subscribers can
// filter without decoding.
type PubSubPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

var _ ports.EventPublisher = (*PubSubPublisher)(nil)

// NewPubSubClient prefers explicit credentials JSON and falls back to
// application default credentials.
func NewPubSubClient(ctx context.Context, projectID, credentialsJSON string, opts ...option.ClientOption) (*pubsub.Client, error) {
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return client, nil
}

// NewPubSubPublisher uses topicID on client, creating the topic if it does
// not exist yet.
func NewPubSubPublisher(ctx context.Context, client *pubsub.Client, topicID string) (*PubSubPublisher, error) {
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check topic %s: %w", topicID, err)
	}
	if !exists {
		if topic, err = client.CreateTopic(ctx, topicID); err != nil {
			return nil, fmt.Errorf("failed to create topic %s: %w", topicID, err)
		}
	}
	return &PubSubPublisher{client: client, topic: topic}, nil
}

func (p *PubSubPublisher) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.Type, err)
	}
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_type":   string(event.Type),
			"aggregate_id": event.AggregateID,
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}
	return nil
}

// Close flushes pending messages and closes the client.
func (p *PubSubPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
