package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sampark-api/core/cache"
	"sampark-api/core/config"
	"sampark-api/core/database"
	"sampark-api/core/logger"
	"sampark-api/core/middleware"
	"sampark-api/core/queue"
	"sampark-api/modules/attendee"
	"sampark-api/modules/auth"
	"sampark-api/modules/connection"
	"sampark-api/modules/directory"
	mailerService "sampark-api/modules/mailer/service"
	mailerWorker "sampark-api/modules/mailer/worker"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run boots the whole service: config, store, cache, queue, HTTP modules
// and the mail worker, then blocks until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		return err
	}

	c, err := cache.InitCache(cache.CacheConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}

	q, err := queue.InitQueue(queue.QueueConfig{
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer q.Close()

	worker := mailerWorker.NewWorker(cfg.Redis, cfg.SMTP)
	if err := worker.Start(); err != nil {
		return fmt.Errorf("failed to start mail worker: %w", err)
	}
	defer worker.Shutdown()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware(c)
	mailer := mailerService.NewMailerService(q)

	api := e.Group("/api/v1")
	attendee.Init(api, db, mw, mailer)
	auth.Init(api, db, mw, c)
	connection.Init(api, db, mw, mailer)
	directory.Init(api, db, c)

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			logger.Error("Server:Shutdown:Error:", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server starting", "addr", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
