package events

import (
	"context"
	"errors"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/core/ports"
	"github.com/SscSPs/pdv_backoffice/internal/utils"
)

// Fanout delivers each event to every publisher and joins their errors.
type Fanout []ports.EventPublisher

func (f Fanout) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AnalyticsPublisher forwards domain events to PostHog, attributed to the
// "actor" attribute when present.
type AnalyticsPublisher struct {
	client *utils.PosthogClientWrapper
}

func NewAnalyticsPublisher(client *utils.PosthogClientWrapper) *AnalyticsPublisher {
	return &AnalyticsPublisher{client: client}
}

func (a *AnalyticsPublisher) Publish(_ context.Context, event domain.Event) error {
	distinctID, _ := event.Attributes["actor"].(string)
	if distinctID == "" {
		distinctID = "system"
	}
	props := make(map[string]any, len(event.Attributes)+1)
	for k, v := range event.Attributes {
		props[k] = v
	}
	props["aggregate_id"] = event.AggregateID
	a.client.Enqueue(distinctID, string(event.Type), props)
	return nil
}
