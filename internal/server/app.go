// Package server initializes and runs the application: database,
// migrations, file storage, cache, services, and the HTTP endpoint, with
// graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/neogulmap/zonemap/internal/logging"
	"github.com/neogulmap/zonemap/internal/server/cache"
	"github.com/neogulmap/zonemap/internal/server/config"
	"github.com/neogulmap/zonemap/internal/server/httpapi"
	"github.com/neogulmap/zonemap/internal/server/repositories/repomanager"
	"github.com/neogulmap/zonemap/internal/server/search"
	"github.com/neogulmap/zonemap/internal/server/services"
	"github.com/neogulmap/zonemap/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	manager, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := manager.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store := storage.FromConfig(ctx, cfg.StorageType, cfg.UploadDir, storage.S3Options{
		User:         cfg.S3RootUser,
		Password:     cfg.S3RootPassword,
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
	}, logger)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}
	zoneCache := cache.NewZoneCache(redisClient, cfg.CacheTTL, logger)

	images := services.NewImageService(store, logger)
	zones := services.NewZoneService(db, manager, images, search.NewEngine(), zoneCache, logger)
	users := services.NewUserService(db, manager, images, cfg, logger)

	handler := httpapi.NewHandler(zones, users, images, logger)
	router := httpapi.Router(handler, []byte(cfg.SecretKey), logger)
	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, router, logger)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
