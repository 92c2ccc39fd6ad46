// cmd/server/main.go
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
	"gorm.io/gorm"

	"github.com/powersport/inventory-backend/internal/config"
	"github.com/powersport/inventory-backend/internal/database"
	"github.com/powersport/inventory-backend/internal/i18n"
	"github.com/powersport/inventory-backend/internal/kvstore"
	"github.com/powersport/inventory-backend/internal/router"
	"github.com/powersport/inventory-backend/internal/services"
	"github.com/powersport/inventory-backend/internal/sheets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	// Configure logging
	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Initialize the key-value backend
	var kv kvstore.Store
	var db *gorm.DB
	switch cfg.Storage.Backend {
	case "postgres":
		db, err = database.Initialize(cfg.Database)
		if err != nil {
			logrus.Fatal("Failed to initialize database: ", err)
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			logrus.Fatal("Failed to run migrations: ", err)
		}
		kv = kvstore.NewPostgres(db)
	case "redis":
		client, err := kvstore.NewRedisClient(cfg.Redis)
		if err != nil {
			logrus.Fatal("Failed to connect to redis: ", err)
		}
		defer client.Close()
		kv = kvstore.NewRedis(client)
	default:
		kv = kvstore.NewMemory()
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.LocalesPath); err != nil {
		logrus.Fatal("Failed to initialize i18n: ", err)
	}

	// Initialize the import pipeline and the store service
	fetcher := sheets.NewHTTPFetcher(time.Duration(cfg.Sheet.FetchTimeout) * time.Second)
	pipeline := sheets.NewPipeline(fetcher)
	storeService := services.NewStoreService(kv, pipeline, cfg.Store.Name)

	if err := storeService.Load(context.Background(), cfg.Store.Code); err != nil {
		logrus.Fatal("Failed to load store data: ", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(cfg, storeService, db)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatal("Server forced to shutdown: ", err)
	}

	logrus.Info("Server exited")
}
