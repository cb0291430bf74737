package app

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/ledger-backend/internal/clients/redis"
	"github.com/yungbote/ledger-backend/internal/data/db"
	ledgerhttp "github.com/yungbote/ledger-backend/internal/http"
	"github.com/yungbote/ledger-backend/internal/observability"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    *db.Service
	DB       *gorm.DB
	Bus      redis.LedgerBus
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Server   *ledgerhttp.Server

	otelShutdown func(context.Context) error
}

// NewLogger builds the process logger from LOG_MODE before any config is read.
func NewLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func New(ctx context.Context) (*App, error) {
	log, err := NewLogger()
	if err != nil {
		return nil, err
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	store, err := db.Open(cfg.StoreConfig(), log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init store: %w", err)
	}
	theDB := store.DB()

	bus, err := redis.NewLedgerBus(log, cfg.BusConfig())
	if err != nil {
		log.Warn("ledger event bus unavailable; events will be dropped", "error", err)
		bus = redis.NoopBus{}
	}

	metrics := observability.Init(log, cfg.Metrics.Enabled)
	otelShutdown := observability.InitOTel(ctx, log, cfg.TracingConfig())

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, bus, metrics)
	handlerset := wireHandlers(log, theDB, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := ledgerhttp.NewServer(routerConfig(log, cfg, metrics, handlerset, middleware))

	return &App{
		Log:          log,
		Cfg:          cfg,
		Store:        store,
		DB:           theDB,
		Bus:          bus,
		Metrics:      metrics,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Migrate brings the schema up to date.
func (a *App) Migrate() error {
	if a == nil || a.Store == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Running migrations...", "driver", a.Store.Driver())
	if err := a.Store.AutoMigrateAll(); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Run serves HTTP, plus the metrics listener when configured, until ctx is cancelled or a server fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	a.Metrics.StartDBCollector(gctx, a.Log, a.DB)
	a.Metrics.StartRedisCollector(gctx, a.Log, a.Bus.Client())

	g.Go(func() error {
		return a.Server.Run(gctx, a.Cfg.Addr(), a.Cfg.ShutdownGrace)
	})
	if a.Metrics != nil && a.Cfg.Metrics.Addr != "" {
		g.Go(func() error {
			return a.Metrics.Serve(gctx, a.Log, a.Cfg.Metrics.Addr)
		})
	}
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Bus != nil {
		if err := a.Bus.Close(); err != nil {
			a.Log.Warn("close event bus failed", "error", err)
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Warn("close store failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
