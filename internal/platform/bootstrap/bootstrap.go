// Package bootstrap wires configuration into repositories, infrastructure
// adapters and services. The HTTP server and the pdvctl CLI share it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pdv_backoffice/internal/core/ports"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/core/services"
	"github.com/SscSPs/pdv_backoffice/internal/platform/attachments"
	"github.com/SscSPs/pdv_backoffice/internal/platform/cache"
	"github.com/SscSPs/pdv_backoffice/internal/platform/config"
	"github.com/SscSPs/pdv_backoffice/internal/platform/events"
	"github.com/SscSPs/pdv_backoffice/internal/platform/metrics"
	"github.com/SscSPs/pdv_backoffice/internal/repositories/collections"
	"github.com/SscSPs/pdv_backoffice/internal/repositories/database/pgsql"
	"github.com/SscSPs/pdv_backoffice/internal/repositories/memory"
	"github.com/SscSPs/pdv_backoffice/internal/utils"
	"github.com/SscSPs/pdv_backoffice/pkg/database"
)

// App is a fully wired application. Close releases everything Build opened,
// in reverse order.
type App struct {
	Config   *config.Config
	Services *portssvc.ServiceContainer
	Metrics  *metrics.Metrics
	Posthog  *utils.PosthogClientWrapper

	closers []func() error
}

// Close releases the resources opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Build connects every configured backend. Optional backends (Redis,
// Pub/Sub, GCS, PostHog) are skipped when unconfigured; the services then
// fall back to no-op collaborators.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	app := &App{Config: cfg, Metrics: metrics.New()}
	defer func() {
		if err != nil {
			_ = app.Close()
		}
	}()

	repos, err := app.repositories(ctx, logger)
	if err != nil {
		return nil, err
	}

	var infra services.Infrastructure
	infra.Metrics = app.Metrics

	if cfg.RedisAddress != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		app.onClose(rdb.Close)
		infra.Locker = cache.NewLocker(rdb, cfg.ShiftLockTTL)
		infra.Cache = cache.NewCache(rdb)
		logger.Info("Redis connected", slog.String("address", cfg.RedisAddress))
	}

	app.Posthog = utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	app.onClose(func() error { app.Posthog.Close(); return nil })

	publishers := events.Fanout{}
	if app.Posthog.IsInitialized() {
		publishers = append(publishers, events.NewAnalyticsPublisher(app.Posthog))
	}
	if cfg.PubSubProjectID != "" {
		// Pub/Sub and GCS share the service account.
		client, err := events.NewPubSubClient(ctx, cfg.PubSubProjectID, cfg.GCSCredentialsJSON)
		if err != nil {
			return nil, err
		}
		publisher, err := events.NewPubSubPublisher(ctx, client, cfg.PubSubTopic)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		app.onClose(publisher.Close)
		publishers = append(publishers, publisher)
		logger.Info("Publishing domain events to Pub/Sub", slog.String("topic", cfg.PubSubTopic))
	}
	if len(publishers) > 0 {
		infra.Publisher = publishers
	}

	// A typed-nil *GCSStore would defeat the service's nil check, so the
	// interface stays unset unless a bucket is configured.
	if cfg.GCSBucket != "" {
		store, err := attachments.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsJSON)
		if err != nil {
			return nil, err
		}
		app.onClose(store.Close)
		infra.Attachments = store
	}

	app.Services = services.NewServiceContainer(cfg, repos, infra)
	return app, nil
}

func (a *App) repositories(ctx context.Context, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch a.Config.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using the in-memory store")
		return collections.NewRepositoryProvider(memory.NewStore()), nil
	case config.StoreDriverPostgres:
		pool, err := database.NewPgxPool(ctx, a.Config.DatabaseURL, database.PoolOptions{Ping: a.Config.EnableDBCheck}, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		a.onClose(func() error { database.ClosePgxPool(pool, logger); return nil })
		return pgsql.NewRepositoryProvider(pool), nil
	default:
		return portsrepo.RepositoryProvider{}, fmt.Errorf("unknown store driver %q", a.Config.StoreDriver)
	}
}

// compile-time checks that the adapters satisfy the ports Build wires them to.
var (
	_ ports.TerminalLocker  = (*cache.Locker)(nil)
	_ ports.SnapshotCache   = (*cache.Cache)(nil)
	_ ports.EventPublisher  = events.Fanout(nil)
	_ ports.AttachmentStore = (*attachments.GCSStore)(nil)
)
