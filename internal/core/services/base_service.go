package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/core/ports"
	"github.com/SscSPs/pdv_backoffice/internal/middleware"
	"github.com/SscSPs/pdv_backoffice/internal/platform/metrics"
	"github.com/SscSPs/pdv_backoffice/internal/utils/accounting"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now            func() time.Time
	location       *time.Location
	publisher      ports.EventPublisher
	metrics        *metrics.Metrics
	locker         ports.TerminalLocker
	cache          ports.SnapshotCache
	pollInterval   time.Duration
	projectionDays int
}

// Option configures the collaborators shared by every service
type Option func(*BaseService)

// WithClock replaces time.Now. Tests use it to pin the business date.
func WithClock(now func() time.Time) Option {
	return func(s *BaseService) {
		s.now = now
	}
}

// WithLocation sets the time zone that defines the business date.
func WithLocation(loc *time.Location) Option {
	return func(s *BaseService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithEventPublisher adds an event publisher dependency
func WithEventPublisher(p ports.EventPublisher) Option {
	return func(s *BaseService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithMetrics adds the domain collectors
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BaseService) {
		s.metrics = m
	}
}

// WithTerminalLocker serialises shift transitions per terminal
func WithTerminalLocker(l ports.TerminalLocker) Option {
	return func(s *BaseService) {
		if l != nil {
			s.locker = l
		}
	}
}

// WithSnapshotCache caches the polled shift snapshot
func WithSnapshotCache(c ports.SnapshotCache) Option {
	return func(s *BaseService) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithPollInterval sets how often terminals refresh an active shift.
func WithPollInterval(d time.Duration) Option {
	return func(s *BaseService) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithProjectionDays sets the default cash projection horizon.
func WithProjectionDays(days int) Option {
	return func(s *BaseService) {
		if days > 0 {
			s.projectionDays = days
		}
	}
}

const defaultPollInterval = 10 * time.Second

func newBaseService(options []Option) BaseService {
	base := BaseService{
		now:            time.Now,
		location:       time.UTC,
		publisher:      ports.NoopPublisher{},
		locker:         ports.NoopLocker{},
		cache:          ports.NoopCache{},
		pollInterval:   defaultPollInterval,
		projectionDays: accounting.DefaultProjectionDays,
	}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current instant.
func (s *BaseService) Now() time.Time {
	return s.now()
}

// Today returns the current business date.
func (s *BaseService) Today() time.Time {
	return domain.DateOf(s.now().In(s.location))
}

// businessDate maps an instant to the business date it belongs to.
func (s *BaseService) businessDate(t time.Time) time.Time {
	return domain.DateOf(t.In(s.location))
}

// publish announces an event. Failures are logged and swallowed: the state
// change it describes has already been stored.
func (s *BaseService) publish(ctx context.Context, eventType domain.EventType, aggregateID, actor string, attrs map[string]any) {
	if attrs == nil {
		attrs = make(map[string]any, 1)
	}
	attrs["actor"] = actor
	event := domain.Event{
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  s.now().UTC(),
		Attributes:  attrs,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.GetLogger(ctx).Warn("Failed to publish event",
			slog.String("event_type", string(eventType)),
			slog.String("aggregate_id", aggregateID),
			slog.String("error", err.Error()))
	}
}

// withTerminalLock runs fn while holding the terminal's lifecycle lock.
func (s *BaseService) withTerminalLock(ctx context.Context, terminalID string, fn func() error) error {
	release, err := s.locker.Lock(ctx, "shift:"+terminalID)
	if err != nil {
		return fmt.Errorf("failed to lock terminal %s: %w", terminalID, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.GetLogger(ctx).Warn("Failed to release terminal lock",
				slog.String("terminal_id", terminalID),
				slog.String("error", err.Error()))
		}
	}()
	return fn()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}
