// Package app wires configuration, stores, adapters and services into a
// runnable HTTP server and owns their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/nutrilens/nutrilens-api/internal/api"
	"github.com/nutrilens/nutrilens-api/internal/api/handler"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
	"github.com/nutrilens/nutrilens-api/internal/core/service"
	"github.com/nutrilens/nutrilens-api/internal/infrastructure/ai"
	"github.com/nutrilens/nutrilens-api/internal/infrastructure/db/memory"
	mongostore "github.com/nutrilens/nutrilens-api/internal/infrastructure/db/mongo"
	"github.com/nutrilens/nutrilens-api/internal/infrastructure/db/postgres"
	redisstore "github.com/nutrilens/nutrilens-api/internal/infrastructure/db/redis"
	"github.com/nutrilens/nutrilens-api/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// App holds every long-lived dependency of the server.
type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	echo   *echo.Echo
	checks map[string]handler.CheckFunc

	// closers run in reverse registration order on Close.
	closers []func(context.Context) error
}

// Option customises New.
type Option func(*options)

type options struct {
	registry *prometheus.Registry
}

// WithMetricsRegistry routes HTTP request metrics to reg instead of the
// Prometheus default registry.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// New connects the configured store and Redis, builds the services and the
// router. On error every resource opened so far is released.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		cfg:    cfg,
		log:    log,
		checks: make(map[string]handler.CheckFunc),
	}

	users, logs, err := a.openStore(ctx)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	var (
		revoker ports.TokenRevoker
		quota   ports.QuotaLimiter
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.addCloser(func(context.Context) error { return rdb.Close() })
		a.checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

		revoker = redisstore.NewRevocationList(rdb)
		if cfg.OpenAI.QuotaPerHour > 0 {
			quota = redisstore.NewQuotaLimiter(rdb, cfg.OpenAI.QuotaPerHour)
		}
	} else {
		log.Warn().Msg("REDIS_ADDR not set: token revocation and analysis quota disabled")
	}

	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set: food analysis requests will fail upstream")
	}
	chat := ai.NewClient(ai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.Timeout,
	}, log.With().Str("component", "openai").Logger())

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, revoker, log.With().Str("component", "tokens").Logger())

	a.echo = api.NewRouter(api.Dependencies{
		Auth:            service.NewAuthService(users, tokens, log.With().Str("component", "auth").Logger()),
		FoodLogs:        service.NewFoodLogService(logs, users, log.With().Str("component", "food_log").Logger()),
		Analysis:        service.NewAnalysisService(chat, quota, log.With().Str("component", "analysis").Logger()),
		Insights:        service.NewInsightsService(logs, users),
		Tokens:          tokens,
		ReadinessChecks: a.checks,
		BodyLimit:       cfg.BodyLimit,
		Log:             log,
		Registry:        o.registry,
	})

	return a, nil
}

func (a *App) openStore(ctx context.Context) (ports.UserRepository, ports.FoodLogRepository, error) {
	switch a.cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, postgres.Config{DSN: a.cfg.Postgres.DSN})
		if err != nil {
			return nil, nil, err
		}
		a.addCloser(func(context.Context) error { return db.Close() })
		a.checks["postgres"] = db.PingContext
		a.log.Info().Msg("using postgres store")
		return postgres.NewUserRepository(db), postgres.NewFoodLogRepository(db), nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		a.addCloser(client.Disconnect)
		a.checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		a.log.Info().Str("database", a.cfg.Mongo.Database).Msg("using mongo store")
		return mongostore.NewUserRepository(db), mongostore.NewFoodLogRepository(db), nil

	case config.DriverMemory:
		store := memory.NewStore()
		a.log.Warn().Msg("using in-memory store: data is lost on restart")
		return store.Users(), store.FoodLogs(), nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", a.cfg.StoreDriver)
}

func (a *App) addCloser(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.echo
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	addr := ":" + a.cfg.Port
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Msg("http server listening")
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases the store and Redis connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
