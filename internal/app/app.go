package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	pgxv5 "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	trm "github.com/avito-tech/go-transaction-manager/trm/v2"
	manager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"gift-exchange-service/internal/config"
	"gift-exchange-service/internal/http/router"
	"gift-exchange-service/internal/infrastructure/nower"
	"gift-exchange-service/internal/infrastructure/randomizer"
	"gift-exchange-service/internal/repository"
	"gift-exchange-service/internal/service"
)

// App отвечает за жизненный цикл сервиса.
type App struct {
	cfg    config.Config
	server *http.Server
	repo   *repository.Storage
	trMgr  trm.Manager
}

// New поднимает схему БД, пул соединений, transaction manager, сервис обмена и HTTP-роутер.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	pool, err := connectWithRetry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Draw и сброс назначений при изменении состава идут через этот менеджер.
	trMgr := manager.Must(pgxv5.NewDefaultFactory(pool))

	repo := repository.New(pool, nower.New())
	svc := service.New(repo, cfg, trMgr, randomizer.New())
	slog.InfoContext(ctx, "exchange service configured",
		"max_attempts", cfg.Exchange.MaxAttempts,
		"reveal_length", cfg.Exchange.RevealLength,
	)

	handler := router.New(svc, loadSwaggerSpec(ctx, cfg.Swagger.SpecPath))

	return &App{
		cfg:    cfg,
		server: newHTTPServer(cfg.HTTP, handler.Router()),
		repo:   repo,
		trMgr:  trMgr,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Timeouts.Shutdown)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		a.repo.Close()
		slog.Info("HTTP server stopped")
		return nil
	case err := <-errCh:
		a.repo.Close()
		return err
	}
}

func newHTTPServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// loadSwaggerSpec читает OpenAPI-файл. Отсутствие файла не мешает старту.
func loadSwaggerSpec(ctx context.Context, path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.WarnContext(ctx, "failed to load swagger spec", "path", path, "error", err)
		return nil
	}
	return data
}

func runMigrations(cfg config.Config) error {
	m, err := migrate.New("file://"+cfg.Database.MigrationsPath, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// connectWithRetry подключается к БД с нарастающей задержкой между попытками.
// Пул создаётся лениво, поэтому успех подтверждается Ping.
func connectWithRetry(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	if cfg.Database.MaxConnections > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConnections
	}
	if cfg.Database.MinConnections > 0 {
		poolCfg.MinConns = cfg.Database.MinConnections
	}
	if cfg.Database.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.Database.MaxConnIdleTime
	}
	if cfg.Database.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.Database.MaxConnLifetime
	}

	var lastErr error
	backoff := []time.Duration{0, time.Second, 2 * time.Second, 5 * time.Second}
	for attempt, delay := range backoff {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		slog.WarnContext(ctx, "failed to connect to database, retrying", "attempt", attempt+1, "error", err)
	}
	return nil, fmt.Errorf("connect db: %w", lastErr)
}
