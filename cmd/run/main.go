package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"gift-exchange-service/internal/app"
	"gift-exchange-service/internal/config"
	"gift-exchange-service/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.MustLoad()
	cleanup, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	slog.Info("starting gift exchange service",
		"port", cfg.HTTP.Port,
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
	)

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to init app", "error", err)
		cleanup()
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		slog.Error("application stopped with error", "error", err)
		cleanup()
		os.Exit(1)
	}
}

// openLogOutput возвращает writer для logging.output: stdout, stderr или путь к файлу.
func openLogOutput(output string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(output) {
	case "stdout", "":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f, nil
}

// setupLogger настраивает slog по секции logging и возвращает функцию закрытия файла логов.
// Повторный вызов cleanup безопасен.
func setupLogger(cfg config.Config) (func(), error) {
	writer, closer, err := openLogOutput(cfg.Logging.Output)
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	slog.SetDefault(slog.New(logging.NewHandler(writer, level, cfg.Logging.Format)))

	closed := false
	return func() {
		if closer != nil && !closed {
			closed = true
			_ = closer.Close()
		}
	}, nil
}
