package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/abu-huda81/shop_backend/internal/config"
	"github.com/abu-huda81/shop_backend/internal/es"
	"github.com/abu-huda81/shop_backend/internal/httpserver"
	"github.com/abu-huda81/shop_backend/internal/imagestore"
	"github.com/abu-huda81/shop_backend/internal/logging"
	authmw "github.com/abu-huda81/shop_backend/internal/middleware/auth"
	loggingmw "github.com/abu-huda81/shop_backend/internal/middleware/logging"
	"github.com/abu-huda81/shop_backend/internal/mykafka"
	"github.com/abu-huda81/shop_backend/internal/repo"
	"github.com/abu-huda81/shop_backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	images, err := imagestore.NewDiskStore(cfg.StaticDir)
	if err != nil {
		log.Fatalf("image store init error: %v", err)
	}

	var producer *mykafka.Producer
	var publisher service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
		publisher = producer
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events disabled")
	}

	gormRepo := repo.NewGormRepo(db)

	var searchHandler *httpserver.SearchHTTP
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("es init error: %v", err)
		}
		searchHandler = &httpserver.SearchHTTP{
			Svc: &service.SearchService{ES: esClient, Index: "product"},
		}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Static("/static", cfg.StaticDir)

	httpserver.Register(e, &httpserver.Deps{
		UserHandler: &httpserver.UserHTTP{
			Svc: &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret, Producer: publisher},
		},
		ProductHandler: &httpserver.ProductHTTP{
			Svc: &service.CatalogService{Repo: gormRepo, Images: images, Producer: publisher},
		},
		OrderHandler: &httpserver.OrderHTTP{
			Svc: &service.OrderService{Repo: gormRepo, Producer: publisher},
		},
		SearchHandler: searchHandler,
		Guard:         authmw.NewGuard(db, cfg.JWTSecret),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
