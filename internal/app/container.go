package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"foodmarket-delivery/internal/broadcast"
	"foodmarket-delivery/internal/config"
	"foodmarket-delivery/internal/http/handlers"
	"foodmarket-delivery/internal/http/middleware"
	"foodmarket-delivery/internal/http/middleware/ratelimit"
	"foodmarket-delivery/internal/http/router"
	"foodmarket-delivery/internal/logx"
	"foodmarket-delivery/internal/metrics"
	"foodmarket-delivery/internal/repository"
	"foodmarket-delivery/internal/service/delivery"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func newBroadcaster(ctx context.Context, cfg *config.Config, logger logx.Logger) (broadcast.Broadcaster, error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("redis not configured, realtime broadcasts disabled")
		return broadcast.NopBroadcaster{}, nil
	}
	return broadcast.NewRedisBroadcaster(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
}

func newServiceMetrics() delivery.Metrics {
	return delivery.Metrics{
		Updates:            mustCounterVec(metrics.NewDeliveryUpdatesTotal()),
		QRVerifications:    mustCounterVec(metrics.NewQRVerificationsTotal()),
		SideEffectFailures: mustCounterVec(metrics.NewSideEffectFailuresTotal()),
	}
}

// mustCounterVec registers the vec, reusing the existing collector when the
// container is built more than once in a process (tests).
func mustCounterVec(v *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(v); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return v
}

func mustCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return c
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewDeliveryRepo,
		repository.NewOrderRepo,
		repository.NewNotificationRepo,
		newBroadcaster,
		newServiceMetrics,
		func(
			deliveries *repository.DeliveryRepo,
			orders *repository.OrderRepo,
			notifications *repository.NotificationRepo,
			broadcaster broadcast.Broadcaster,
			logger logx.Logger,
			cfg *config.Config,
			m delivery.Metrics,
		) *delivery.Service {
			return delivery.NewService(deliveries, orders, notifications, broadcaster, logger, delivery.Options{
				QRTTL:   cfg.QR.TTL,
				Metrics: m,
			})
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDeliveryUsecase,
		handlers.NewDeliveryHandler,
		func(cfg *config.Config, logger logx.Logger) *middleware.Auth {
			return middleware.NewAuth(cfg.Auth.Secret, cfg.Auth.CookieName, logger)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitCounter,
		newRateLimitMiddleware,
		func(
			h *handlers.Handlers,
			dh *handlers.DeliveryHandler,
			auth *middleware.Auth,
			rl *ratelimit.Middleware,
			logger logx.Logger,
		) http.Handler {
			return router.New(router.Deps{
				Handlers:  h,
				Delivery:  dh,
				Auth:      auth,
				RateLimit: rl,
				Logger:    logger,
			})
		},
		serverProvider,
	)
}
