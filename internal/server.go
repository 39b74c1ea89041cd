package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"

	"github.com/katyrose28/workoutsched/internal/cache"
	"github.com/katyrose28/workoutsched/internal/config"
	"github.com/katyrose28/workoutsched/internal/db"
	"github.com/katyrose28/workoutsched/internal/middleware"
	"github.com/katyrose28/workoutsched/internal/store"
	"github.com/katyrose28/workoutsched/internal/telemetry/metrics"
	"github.com/katyrose28/workoutsched/internal/telemetry/tracing"
	"github.com/katyrose28/workoutsched/internal/training"
	"github.com/katyrose28/workoutsched/internal/training/catalog"
	"github.com/katyrose28/workoutsched/internal/training/leaderboard"
	"github.com/katyrose28/workoutsched/internal/training/progress"
	"github.com/katyrose28/workoutsched/internal/training/rotation"
	"github.com/katyrose28/workoutsched/internal/training/schedule"
	"github.com/katyrose28/workoutsched/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	store  store.Store
	// redisClient is set when redis is used for rate limiting only,
	// otherwise the redis store owns the client.
	redisClient *redis.Client
	rateLimiter middleware.RequestRateLimiter
	cron        *cron.Cron

	catalog     *catalog.Catalog
	schedule    *schedule.Service
	progress    *progress.Service
	leaderboard *leaderboard.Builder

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
	OtelServiceName         string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (_ *Server, err error) {
	cfg := params.Config

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, params.OtelServiceName)
	if err != nil {
		return nil, err
	}

	var (
		rdb         *redis.Client
		dbPool      *pgxpool.Pool
		docStore    store.Store
		collectors  []prometheus.Collector
		rateLimiter middleware.RequestRateLimiter
	)

	// release whatever was opened before a failure; the store owns the
	// redis client and db pool of its own backend once created
	defer func() {
		if err == nil {
			return
		}
		if docStore != nil {
			if closeErr := docStore.Close(); closeErr != nil {
				log.Errorf("close store: %s", closeErr)
			}
			if cfg.StoreBackend == store.BackendRedis {
				rdb = nil
			}
			dbPool = nil
		}
		if rdb != nil {
			if closeErr := rdb.Close(); closeErr != nil {
				log.Errorf("close redis client: %s", closeErr)
			}
		}
		if dbPool != nil {
			dbPool.Close()
		}
		otelShutdown()
	}()

	if cfg.StoreBackend == store.BackendRedis || cfg.RedisHost != "" {
		rdb = store.NewRedisClient(store.NewRedisClientParams{
			Addr:           net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password:       params.RedisPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
		rateLimiter = redis_rate.NewLimiter(rdb)
	}

	if cfg.StoreBackend == store.BackendPostgres {
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager("workoutsched", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	newStore, err := store.New(ctx, store.NewParams{
		Backend:     cfg.StoreBackend,
		DataDir:     cfg.DataDir,
		SQLitePath:  cfg.SQLitePath,
		RedisClient: rdb,
		DBPool:      dbPool,
	})
	if err != nil {
		return nil, fmt.Errorf("new store [%s]: %w", cfg.StoreBackend, err)
	}
	docStore = newStore

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	progressService := progress.NewService(docStore, metricsManager)
	scheduleService := schedule.NewService(schedule.NewServiceParams{
		Store:          docStore,
		PlanCache:      cache.NewPlanCache(cfg.PlanCacheSizeMB, cfg.PlanCacheTTLSec),
		Catalog:        cat,
		Pickers:        rotation.NewRegistry(cfg.RotationScope, nil),
		Progress:       progressService,
		MetricsManager: metricsManager,
	})

	s := &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		store:       docStore,
		rateLimiter: rateLimiter,

		catalog:     cat,
		schedule:    scheduleService,
		progress:    progressService,
		leaderboard: leaderboard.NewBuilder(progressService, metricsManager),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}
	if rdb != nil && cfg.StoreBackend != store.BackendRedis {
		s.redisClient = rdb
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	trainingHandler := training.NewHandler(s.schedule, s.progress, s.leaderboard, s.catalog)
	trainingHandler.SetupRoutes(r, s.rateLimiter, s.metricsManager, s.config.WriteRateLimitPerMin)

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

// startLeaderboardRefresh keeps the leaderboard gauges current between
// scrapes of the metrics endpoint.
func (s *Server) startLeaderboardRefresh(ctx context.Context) error {
	refresh := func() {
		if err := s.leaderboard.RefreshGauges(ctx); err != nil {
			log.Errorf("refresh leaderboard gauges: %s", err)
		}
	}

	c := cron.New()
	if err := c.AddFunc(s.config.LeaderboardRefresh, refresh); err != nil {
		return fmt.Errorf("schedule leaderboard refresh [%s]: %w", s.config.LeaderboardRefresh, err)
	}
	refresh()
	c.Start()
	s.cron = c
	return nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if err := s.startLeaderboardRefresh(ctx); err != nil {
		log.Errorf("leaderboard refresh disabled: %s", err)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.cron != nil {
		s.cron.Stop()
		log.Trace("cron stopped ...")
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	closeErr := s.store.Close()
	if s.redisClient != nil {
		closeErr = multierr.Append(closeErr, s.redisClient.Close())
	}
	for _, err := range multierr.Errors(closeErr) {
		log.Errorf("failed to close storage: %s", err)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
