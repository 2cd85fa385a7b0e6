package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-ru/mcp-parcelado-go/internal/cache"
	"github.com/cloud-ru/mcp-parcelado-go/internal/config"
	"github.com/cloud-ru/mcp-parcelado-go/internal/logging"
	"github.com/cloud-ru/mcp-parcelado-go/internal/server"
	"github.com/cloud-ru/mcp-parcelado-go/internal/tools"
	"github.com/cloud-ru/mcp-parcelado-go/internal/tracing"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	logger := logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx := context.Background()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint)
	if err != nil {
		logger.Error("ошибка инициализации трейсинга", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("ошибка остановки трейсинга", "error", err)
		}
	}()

	var repo cache.Repository = cache.NewMemoryCache(cfg.CacheMaxEntries)
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis недоступен, используется кэш в памяти", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer redisCache.Close()
			repo = redisCache
		}
	}

	registry := tools.NewRegistry(cfg, tracer, repo, cfg.CacheTTL)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      server.NewRouter(registry, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("сервер запущен", "addr", srv.Addr, "tools", len(registry))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("ошибка запуска сервера", "error", err)
		return
	case <-quit:
		logger.Info("остановка сервера")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("ошибка при остановке сервера", "error", err)
	}

	logger.Info("сервер остановлен")
}
