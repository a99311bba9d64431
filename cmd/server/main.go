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

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/config"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/logging"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/db"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/events"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/httpserver"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/service"
)

func main() {
	cfg := config.LoadServer()
	config.MustNonEmpty(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel)

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("migrate error: %v", err)
	}
	if err := db.Seed(conn); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	prod := events.NewProducer(cfg.KafkaBrokers)

	docHandler, err := httpserver.NewDocumentHTTP(nil, cfg.DocumentSvcURL)
	if err != nil {
		log.Fatalf("document proxy error: %v", err)
	}

	authSvc := &service.AuthService{
		DB:            conn,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
		Events:        prod,
	}
	invoiceSvc := &service.InvoiceService{DB: conn, Events: prod}
	docHandler.Svc = invoiceSvc

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		Auth:      &httpserver.AuthHTTP{Svc: authSvc},
		Invoices:  &httpserver.InvoiceHTTP{Svc: invoiceSvc},
		Catalog:   &httpserver.CatalogHTTP{Svc: &service.CatalogService{DB: conn}},
		Document:  docHandler,
		JWTSecret: cfg.JWTSecret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := conn.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}
}
