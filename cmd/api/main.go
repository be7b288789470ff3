package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/xpertech-quotes/api/controllers"
	"github.com/angelmondragon/xpertech-quotes/api/middleware"
	"github.com/angelmondragon/xpertech-quotes/api/routes"
	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/angelmondragon/xpertech-quotes/internal/handoff"
	"github.com/angelmondragon/xpertech-quotes/internal/sessions"
	"github.com/angelmondragon/xpertech-quotes/internal/wizard"
	"github.com/angelmondragon/xpertech-quotes/pkg/config"
	"github.com/angelmondragon/xpertech-quotes/pkg/db"
	"github.com/angelmondragon/xpertech-quotes/pkg/instance"
	"github.com/angelmondragon/xpertech-quotes/pkg/logger"
	"github.com/angelmondragon/xpertech-quotes/pkg/metrics"
	"github.com/angelmondragon/xpertech-quotes/pkg/redis"
)

const sweepInterval = time.Minute

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	readiness := map[string]controllers.Pinger{}

	c := catalog.Default()
	if cfg.DB.Enabled() {
		dbClient, dbErr := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
		if dbErr != nil {
			return dbErr
		}
		defer func() { err = multierr.Append(err, dbClient.Close()) }()

		c, err = catalog.NewRepository(dbClient.DB()).Load(ctx, c)
		if err != nil {
			return err
		}
		readiness["db"] = dbClient
		logg.Info(ctx, "catalog loaded from database")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
		readiness["redis"] = redisClient
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	var (
		store     sessions.Store
		memStore  *sessions.MemoryStore
		rateStore middleware.RateLimiterStore
		svcOpts   []sessions.Option
	)
	if cfg.Sessions.Store == config.SessionStoreRedis {
		store = sessions.NewRedisStore(redisClient, cfg.Sessions.TTL)
		svcOpts = append(svcOpts, sessions.WithLocker(sessions.NewRedisLocker(redisClient, 0)))
	} else {
		memStore = sessions.NewMemoryStore(cfg.Sessions.TTL)
		store = memStore
	}
	if redisClient != nil {
		rateStore = redisClient
	} else {
		rateStore = middleware.NewMemoryRateStore()
	}

	engine := wizard.NewEngine(c)
	composer := handoff.NewComposer(c, cfg.Handoff.BaseURL, cfg.Handoff.Phone, cfg.Handoff.CurrencySymbol)
	sessionService, err := sessions.NewService(store, engine, composer, quoteMetrics, svcOpts...)
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, registry, quoteMetrics, engine, sessionService, rateStore, readiness),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"session_store": cfg.Sessions.Store,
		"instance":      instance.GetID(),
	})
	logg.Info(logCtx, "starting api server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if memStore != nil {
		g.Go(func() error {
			return memStore.Run(gctx, sweepInterval)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
