package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"golang.org/x/sync/errgroup"

	"github.com/wheretogo/compass/internal/ads"
	"github.com/wheretogo/compass/internal/calendar"
	"github.com/wheretogo/compass/internal/compass"
	"github.com/wheretogo/compass/internal/config"
	"github.com/wheretogo/compass/internal/database"
	"github.com/wheretogo/compass/internal/handler/health"
	"github.com/wheretogo/compass/internal/kv"
	"github.com/wheretogo/compass/internal/migrations"
	"github.com/wheretogo/compass/internal/server"
	"github.com/wheretogo/compass/internal/visit"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Content ---
	table, err := loadTable(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("loading travel content: %w", err)
	}
	logger.Info("travel content loaded", "version", table.Version())

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}

	// --- Store ---
	store, check, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	visits := visit.NewService(
		logger,
		store,
		compass.NewResolver(table),
		calendar.New(calendar.System{}, loc),
		ads.Unsupported{},
		visit.Options{
			AdGroupID: cfg.AdGroupID,
			ShareLink: cfg.ShareLink,
		},
	)

	// --- HTTP Server ---
	srv := server.New(logger, visits, server.Options{
		Addr:           cfg.HTTPAddr,
		SPADir:         cfg.SPADir,
		AllowedOrigins: cfg.AllowedOrigins,
		Checks:         map[string]health.Checker{cfg.Store: check},
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr, "timezone", cfg.Timezone)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func loadTable(path string) (*compass.Table, error) {
	if path == "" {
		return compass.DefaultTable()
	}
	return compass.LoadTable(path)
}

// openStore connects the configured device-state backend and returns its
// health check together with a close func.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (kv.Store, health.Checker, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		rdb, err := kv.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info("connected to redis")
		s := kv.NewRedisStore(rdb, "")
		return s, s, func() { rdb.Close() }, nil

	case config.StoreMemory:
		logger.Warn("device state is kept in memory and lost on restart")
		ok := health.CheckerFunc(func(context.Context) error { return nil })
		return kv.NewMemoryStore(), ok, func() {}, nil

	default:
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		if err := migrations.Run(db, logger); err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		logger.Info("connected to sqlite", "path", cfg.DBPath)
		s := kv.NewSQLStore(db)
		return s, s, func() { db.Close() }, nil
	}
}
