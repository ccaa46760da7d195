package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stockroom/inventory-api/internal/config"
	"github.com/stockroom/inventory-api/internal/events"
	"github.com/stockroom/inventory-api/internal/httpserver"
	"github.com/stockroom/inventory-api/internal/logging"
	"github.com/stockroom/inventory-api/internal/metrics"
	"github.com/stockroom/inventory-api/internal/repo"
	"github.com/stockroom/inventory-api/internal/search"
	"github.com/stockroom/inventory-api/internal/seed"
	"github.com/stockroom/inventory-api/internal/service"
	"github.com/stockroom/inventory-api/pkg/db"
	loggingmw "github.com/stockroom/inventory-api/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := repo.Migrate(database); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	store := repo.New(database)

	if err := seed.AdminUser(ctx, store, logger, cfg.AdminLogin, cfg.AdminPassword); err != nil {
		log.Fatalf("admin seed error: %v", err)
	}
	if err := seed.DemoProducts(ctx, store, logger); err != nil {
		log.Fatalf("product seed error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	index := &search.Index{Name: cfg.ESIndex}
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		index.ES = esClient
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	authSvc := &service.AuthService{
		Repo:      store,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Producer:  producer,
		Metrics:   m,
	}
	stockSvc := &service.StockService{
		Repo:     store,
		Producer: producer,
		Index:    index,
		Metrics:  m,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		ProductHandler: &httpserver.ProductHTTP{Svc: stockSvc},
		UserHandler:    &httpserver.UserHTTP{Svc: authSvc},
		JWTSecret:      cfg.JWTSecret,
		PromGatherer:   registry,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
