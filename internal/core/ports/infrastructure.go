package ports

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
)

// Note: every collaborator below has a no-op implementation so the service
// runs without Redis, Pub/Sub or GCS configured.

// TerminalLocker serialises lifecycle operations on one terminal across
// server instances.
type TerminalLocker interface {
	// Lock obtains the lock for key. It returns apperrors.ErrConflict when
	// another holder has it. The returned release func is always non-nil.
	Lock(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// SnapshotCache holds short-lived JSON snapshots (shift polling).
type SnapshotCache interface {
	// GetJSON decodes the cached value into dst. It reports false on a miss.
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// EventPublisher announces domain events after the state change is stored.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// AttachmentStore persists uploaded files and returns a URL that refers to them.
type AttachmentStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// NoopLocker grants every lock immediately.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

// NoopCache never hits.
type NoopCache struct{}

func (NoopCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (NoopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (NoopCache) Delete(context.Context, ...string) error { return nil }

// NoopPublisher drops events.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.Event) error { return nil }
