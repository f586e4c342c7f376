package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"canvas/internal/config"
	"canvas/internal/database"
	"canvas/internal/server"
)

const (
	connectTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	// .env опционален: в проде переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("failed to read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logrus.StandardLogger()
	log.SetLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	manager := database.NewManager(database.ManagerConfig{
		DSN: cfg.DatabaseURL,
		Options: database.Options{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		},
		AutoMigrate: true,
	})

	// Соединение открываем сразу: без БД сервис не стартует.
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	_, err = manager.Acquire(ctx)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("database is not available")
	}

	router := server.NewRouter(manager, server.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "env": cfg.AppEnv}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	stop, cancelSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelSignals()
	<-stop.Done()

	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if err := manager.Close(); err != nil {
		log.WithError(err).Error("failed to close database")
	}
}
