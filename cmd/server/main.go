package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"tiercheck/internal/history"
	"tiercheck/internal/platform/config"
	"tiercheck/internal/platform/httpserver"
	kafkaconsumer "tiercheck/internal/platform/kafka/consumer"
	"tiercheck/internal/platform/logger"
	platformredis "tiercheck/internal/platform/redis"
	"tiercheck/internal/report"
	"tiercheck/internal/tier"
	httptransport "tiercheck/internal/transport/http"
	"tiercheck/internal/verify"
	"tiercheck/internal/verify/metrics"
)

// eventLog is what main needs from a history store: the engine reads it per
// broker, the HTTP surface appends to it.
type eventLog interface {
	verify.HistoryProvider
	history.Appender
}

// main wires high-level dependencies and keeps the server lifecycle small.
// Verification logic lives in internal/verify.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var events eventLog = history.NewLog()
	if cfg.RedisURL != "" {
		rc, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer rc.Close()
		events = history.NewRedisLog(rc.Client, "tiercheck")
	}

	var store report.Store = report.NewMemoryStore()
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		pg := report.NewPostgresStore(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			log.Error("postgres schema setup failed", "error", err)
			os.Exit(1)
		}
		store = pg
	}

	tierStore := tier.NewMemory()
	runner := verify.NewRunner(
		events,
		kafkaconsumer.New(cfg.KafkaBrokers, log),
		tierStore,
		verify.WithLogger(log),
		verify.WithMetrics(metrics.New()),
		verify.WithSink(os.Stdout),
	)

	handler := httptransport.NewHandler(runner, store, events, tierStore, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting tiercheck harness", "addr", cfg.Addr, "brokers", cfg.KafkaBrokers)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
