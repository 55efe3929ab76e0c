package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jeongsql/internal/config"
	"jeongsql/internal/handler"
	"jeongsql/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	envFile := flag.String("env-file", config.DefaultEnvFile, "Path to a .env file")
	flag.Parse()

	cfg, logger, err := setup(*envFile, os.Stderr)
	if err != nil {
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if lvl, _ := config.ParseLevel(cfg.LogLevel); lvl > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db service.DBClient
	if cfg.DatabaseURL != "" {
		pg := service.NewPostgresClient()
		if err := pg.Connect(cfg.DatabaseURL); err != nil {
			logger.Error("failed to connect", "error", err)
			os.Exit(1)
		}
		defer pg.Disconnect()

		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Error("failed to create schema", "error", err)
			os.Exit(1)
		}
		db = pg
	} else {
		logger.Warn("JSQL_DATABASE_URL is not set; statements will be rejected")
	}

	r := handler.NewRouter(handler.New(db, logger), handler.RouterConfig{AllowOrigin: cfg.AllowOrigin})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the configured logger. Failures
// are logged to stderr through a bootstrap logger before being returned.
func setup(envFile string, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	boot := slog.New(slog.NewTextHandler(stderr, nil))

	cfg, err := config.Load(envFile)
	if err != nil {
		boot.Error("failed to load config", "error", err)
		return nil, nil, err
	}

	logger, err := config.NewLogger(cfg.LogLevel, stderr)
	if err != nil {
		boot.Error("failed to create logger", "error", err)
		return nil, nil, err
	}
	return cfg, logger, nil
}
