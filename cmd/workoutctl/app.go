package main

import (
	"context"
	"fmt"
	"net"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/katyrose28/workoutsched/internal/cache"
	"github.com/katyrose28/workoutsched/internal/config"
	"github.com/katyrose28/workoutsched/internal/db"
	"github.com/katyrose28/workoutsched/internal/store"
	"github.com/katyrose28/workoutsched/internal/telemetry/metrics"
	"github.com/katyrose28/workoutsched/internal/training/catalog"
	"github.com/katyrose28/workoutsched/internal/training/leaderboard"
	"github.com/katyrose28/workoutsched/internal/training/progress"
	"github.com/katyrose28/workoutsched/internal/training/rotation"
	"github.com/katyrose28/workoutsched/internal/training/schedule"
)

// app holds the services a command works with, built from the same config
// file the service reads.
type app struct {
	store       store.Store
	schedule    *schedule.Service
	progress    *progress.Service
	leaderboard *leaderboard.Builder
}

func loadApp(ctx context.Context, flags *rootFlags) (*app, error) {
	cfg, err := config.Load(flags.env, flags.configPath)
	if err != nil {
		return nil, err
	}
	secrets, err := config.LoadSecrets(ctx)
	if err != nil {
		return nil, err
	}

	var (
		rdb    *redis.Client
		dbPool *pgxpool.Pool
	)
	switch cfg.StoreBackend {
	case store.BackendRedis:
		rdb = store.NewRedisClient(store.NewRedisClientParams{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: secrets.RedisPassword,
		})
	case store.BackendPostgres:
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBPassword: secrets.PostgresPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
	}

	s, err := store.New(ctx, store.NewParams{
		Backend:     cfg.StoreBackend,
		DataDir:     cfg.DataDir,
		SQLitePath:  cfg.SQLitePath,
		RedisClient: rdb,
		DBPool:      dbPool,
	})
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, fmt.Errorf("new store [%s]: %w", cfg.StoreBackend, err)
	}

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	// commands are short-lived, their metrics are never scraped
	metricsManager := metrics.NewManager("workoutsched", "cli", prometheus.NewRegistry())
	progressService := progress.NewService(s, metricsManager)

	return &app{
		store: s,
		schedule: schedule.NewService(schedule.NewServiceParams{
			Store:          s,
			PlanCache:      cache.NewPlanCache(1, cfg.PlanCacheTTLSec),
			Catalog:        cat,
			Pickers:        rotation.NewRegistry(cfg.RotationScope, nil),
			Progress:       progressService,
			MetricsManager: metricsManager,
		}),
		progress:    progressService,
		leaderboard: leaderboard.NewBuilder(progressService, metricsManager),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.Errorf("close store: %s", err)
	}
}
