// @title           MCI Coordination HTTP Service API
// @version         1.0
// @description     Professionals, active drill and incident figures for mass-casualty incident coordination

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer ` prefix
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/kyue26/emertgency-sub001/internal/app/routes"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/domain/services/container"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/logger"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/store"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Environment variables may be set by other means
	if envErr != nil {
		log.Warn("could not load .env file", zap.Error(envErr))
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = services.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	c := container.NewServiceContainer(cfg, st, redisClient, log)
	r := routes.SetupRouter(c)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSystemInfo(cfg, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printSystemInfo(cfg *config.Config, log *zap.Logger) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Info("system info",
		zap.String("env_type", cfg.Server.EnvType),
		zap.String("backend", string(cfg.Backend())),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Int("cpus", runtime.NumCPU()),
		zap.Int("goroutines", runtime.NumGoroutine()),
		zap.Uint64("alloc_mib", m.Alloc/1024/1024),
		zap.Uint64("sys_mib", m.Sys/1024/1024),
	)
}
