package app

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"foodmarket-delivery/internal/broadcast"
	"foodmarket-delivery/internal/config"
	"foodmarket-delivery/internal/http/pprofserver"
	"foodmarket-delivery/internal/logx"
)

// Runner starts the HTTP server and blocks until shutdown.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	if err := r.runFn(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

func run(container *dig.Container) error {
	return container.Invoke(func(
		server *http.Server,
		ctx context.Context,
		cfg *config.Config,
		pool *pgxpool.Pool,
		broadcaster broadcast.Broadcaster,
		logger logx.Logger,
	) error {
		startPprof(cfg.Pprof, logger)
		startServer(server, logger)
		waitForShutdown(ctx, logger)
		gracefulShutdown(server, logger, 15*time.Second)
		closeResources(pool, server, broadcaster, logger)
		return nil
	})
}

func startPprof(cfg config.Pprof, logger logx.Logger) {
	if cfg.Addr == "" {
		return
	}
	h := pprofserver.Handler(pprofserver.Config{User: cfg.User, Pass: cfg.Pass})
	go func() {
		logger.Info("pprof listening", logx.String("addr", cfg.Addr))
		srv := &http.Server{Addr: cfg.Addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("pprof listen error", logx.Err(err))
		}
	}()
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("service-delivery listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down service-delivery...")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, server *http.Server, broadcaster broadcast.Broadcaster, logger logx.Logger) {
	if err := server.Close(); err != nil {
		logger.Error("server close error", logx.Err(err))
	}
	if c, ok := broadcaster.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Error("broadcaster close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
