package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/tournament-dashboard/internal/config"
	"github.com/riskibarqy/tournament-dashboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-dashboard/internal/interfaces/httpapi"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/cache"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/tournament-dashboard/internal/usecase"
)

// App is the wired HTTP service plus the dataset refresher behind it.
type App struct {
	Server   *http.Server
	Datasets *usecase.DatasetService

	refreshInterval time.Duration
	logger          *logging.Logger
	closers         []func() error
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{
		refreshInterval: cfg.DataRefreshInterval,
		logger:          logger,
	}

	source, closeSource, err := newDatasetSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeSource)

	cacheStore, closeCache, err := newCacheStore(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.closers = append(a.closers, closeCache)

	store := memory.NewStore()
	teamRepo := memory.NewTeamRepository(store)
	fixtureRepo := memory.NewFixtureRepository(store)
	playerRepo := memory.NewPlayerRepository(store)
	stageRepo := memory.NewStageRepository(store)
	venueRepo := memory.NewVenueRepository(store)
	summaryRepo := memory.NewSummaryRepository(store)

	retrier := resilience.NewRetrier(resilience.RetryConfig{
		MaxAttempts:     cfg.DataLoadMaxAttempts,
		InitialInterval: cfg.DataLoadInitialBackoff,
		MaxInterval:     cfg.DataLoadMaxBackoff,
	}, logger.Named("retry"))

	a.Datasets = usecase.NewDatasetService(source, store, retrier, cacheStore, logger.Named("dataset"))
	tournamentSvc := usecase.NewTournamentService(teamRepo, fixtureRepo, playerRepo, stageRepo, venueRepo, summaryRepo)
	statisticsSvc := usecase.NewStatisticsService(
		teamRepo,
		fixtureRepo,
		venueRepo,
		store,
		cacheStore,
		cfg.StatsWorkers,
		logger.Named("statistics"),
	)

	handler := httpapi.NewHandler(tournamentSvc, statisticsSvc, a.Datasets, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// StartDatasetRefresh activates the first dataset and then keeps it fresh
// until ctx is done. A failed first load is logged; /healthz reports
// "loading" and data routes answer 503 until a later refresh succeeds.
func (a *App) StartDatasetRefresh(ctx context.Context) {
	go func() {
		if _, err := a.Datasets.Reload(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.ErrorContext(ctx, "initial dataset load failed", "error", err)
		}
		a.Datasets.Run(ctx, a.refreshInterval)
	}()
}

// Close releases the data source and cache connections.
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

func newCacheStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (*cache.Store, func() error, error) {
	noop := func() error { return nil }
	if !cfg.CacheEnabled {
		logger.Info("statistics cache disabled", "reason", "CACHE_ENABLED=false")
		return nil, noop, nil
	}

	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		backend, err := cache.NewRedisBackend(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis cache: %w", err)
		}
		logger.Info("statistics cache enabled", "backend", cfg.CacheBackend, "ttl", cfg.CacheTTL)
		return cache.NewStore(backend, cfg.CacheTTL, logger.Named("cache")), backend.Close, nil
	default:
		logger.Info("statistics cache enabled", "backend", cfg.CacheBackend, "ttl", cfg.CacheTTL)
		return cache.NewStore(cache.NewMemoryBackend(), cfg.CacheTTL, logger.Named("cache")), noop, nil
	}
}
