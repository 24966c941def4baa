package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/vote/internal/adapters/handler/http"
	"github.com/vncsmyrnk/vote/internal/adapters/metrics"
	"github.com/vncsmyrnk/vote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/vote/internal/adapters/repository/redis"
	"github.com/vncsmyrnk/vote/internal/adapters/tracing"
	"github.com/vncsmyrnk/vote/internal/config"
	"github.com/vncsmyrnk/vote/internal/core/domain"
	"github.com/vncsmyrnk/vote/internal/core/ports"
	"github.com/vncsmyrnk/vote/internal/core/services"
	"github.com/vncsmyrnk/vote/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	options := domain.OptionPair{A: cfg.Options.A, B: cfg.Options.B}

	logger.Info("Initializing vote server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("option_a", options.A),
		zap.String("option_b", options.B),
		zap.String("queue_backend", cfg.Queue.Backend),
		zap.String("hostname", hostname),
	)

	traces, err := tracing.Setup(ctx, cfg.Tracing, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := traces.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	queue, err := newVoteQueue(ctx, cfg)
	if err != nil {
		return err
	}
	defer queue.Close()

	m := metrics.New()
	voteService := services.NewVoteService(queue, traces, m, options, cfg.Queue.Timeout, logger)
	healthService := services.NewHealthService(queue, m, cfg.Queue.Timeout, logger)

	handler := http.NewHandler(
		http.NewPageHandler(options, hostname, traces, logger),
		http.NewVoteHandler(voteService, traces, logger),
		http.NewHealthHandler(healthService, traces),
		http.NewIdentityMiddleware(services.NewIdentityService(), cfg.Server.CookieName),
		m,
		traces,
		logger,
	)
	server := &stdhttp.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Gracefully shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// newVoteQueue connects to redis lazily, so the server starts even while redis
// is down and reports Unhealthy until it comes up. Postgres is migrated here.
func newVoteQueue(ctx context.Context, cfg *config.Config) (ports.VoteQueue, error) {
	switch cfg.Queue.Backend {
	case config.QueueBackendPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return postgres.NewVoteQueue(db), nil
	default:
		client := redis.NewClient(cfg.Redis, cfg.Queue.Timeout)
		return redis.NewVoteQueue(client, cfg.Queue.Key), nil
	}
}
