package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/contrarian-dfs/internal/api"
	"github.com/jstittsworth/contrarian-dfs/internal/app"
	"github.com/jstittsworth/contrarian-dfs/internal/services"
	"github.com/jstittsworth/contrarian-dfs/pkg/config"
	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	deps, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialise: %v", err)
	}
	defer deps.Close()

	go deps.Hub.Run(ctx)

	// Warm the snapshot so the first request does not pay for classification
	if snap, err := deps.Table.Reload(ctx); err != nil {
		log.WithError(err).Warn("Initial player table load failed")
	} else {
		log.WithFields(logrus.Fields{
			"version": snap.Version,
			"rows":    len(snap.Players),
		}).Info("Player table loaded")
	}

	if cfg.EnableScheduler {
		scheduler := services.NewRefreshScheduler(deps.Table, cfg.DataRefreshSchedule)
		if err := scheduler.Start(); err != nil {
			log.Errorf("Failed to start refresh scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	router := api.NewRouter(api.Dependencies{
		Config:     cfg,
		DB:         deps.DB,
		Cache:      deps.Cache,
		Table:      deps.Table,
		Classifier: deps.Classifier,
		Hub:        deps.Hub,
		Metrics:    deps.Metrics,
		Logger:     log,
	})

	for _, route := range router.Routes() {
		log.Debugf("%s %s", route.Method, route.Path)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	stop()

	log.Info("Server exited")
}
