package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/aula-api/internal/repository"
	"github.com/noah-isme/aula-api/internal/router"
	"github.com/noah-isme/aula-api/internal/service"
	"github.com/noah-isme/aula-api/pkg/config"
	"github.com/noah-isme/aula-api/pkg/database"
	"github.com/noah-isme/aula-api/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// @title Aula API
// @version 1.0.0
// @description Student roster and weather proxy for the classroom frontend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Weather.APIKey == "" {
		logr.Warn("OPENWEATHER_KEY is not set; /weather will answer 500")
	}

	db, err := database.NewSQLite(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	studentRepo := repository.NewStudentRepository(db)
	if err := studentRepo.EnsureSchema(ctx); err != nil {
		logr.Fatal("failed to prepare schema", zap.Error(err))
	}

	metrics := service.NewMetricsService()
	students := service.NewStudentService(studentRepo, validator.New(), metrics, logr)
	weather := service.NewWeatherService(cfg.Weather, nil, metrics, logr)
	exports := service.NewExportService(students, nil, nil, logr)

	r := router.New(cfg, router.Services{
		Students: students,
		Weather:  weather,
		Export:   exports,
		Metrics:  metrics,
	}, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "db", db.DriverName())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
