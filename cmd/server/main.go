package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"image-ingest-service/internal/adapters/primary/http/handlers"
	"image-ingest-service/internal/adapters/primary/http/middleware"
	"image-ingest-service/internal/adapters/secondary/filesystem"
	"image-ingest-service/internal/adapters/secondary/imaging"
	"image-ingest-service/internal/adapters/secondary/memory"
	"image-ingest-service/internal/adapters/secondary/objectstore"
	"image-ingest-service/internal/adapters/secondary/postgres"
	"image-ingest-service/internal/adapters/secondary/prometheus"
	"image-ingest-service/internal/config"
	ports "image-ingest-service/internal/core/ports/output"
	"image-ingest-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	ctx := context.Background()

	// ============================================================================
	// Secondary Adapters
	// ============================================================================

	// Catalog
	var catalog ports.CatalogRepository
	switch cfg.Database.Driver {
	case config.CatalogDriverMemory:
		catalog = memory.NewCatalog()
		log.Warn("using in-memory catalog; records are lost on restart")
	default:
		pool, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("connect catalog: %v", err)
		}
		defer pool.Close()
		log.Info("database connection established")

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(cfg.Database.URL); err != nil {
				log.Fatalf("migrate catalog: %v", err)
			}
		}
		catalog = postgres.NewImageRepository(pool)
	}

	// Artifact storage
	var store ports.BlobStore
	switch cfg.Storage.Driver {
	case config.StorageDriverMinio:
		store, err = objectstore.NewStore(ctx, cfg.Storage.Minio, cfg.Storage.PublicPrefix)
		if err != nil {
			log.Fatalf("init object store: %v", err)
		}
		log.WithField("bucket", cfg.Storage.Minio.Bucket).Info("object store initialized")
	default:
		store, err = filesystem.NewStore(cfg.Storage.Root, cfg.Storage.PublicPrefix)
		if err != nil {
			log.Fatalf("init storage: %v", err)
		}
		log.WithField("root", cfg.Storage.Root).Info("filesystem storage initialized")
	}

	// Metrics (optional)
	var (
		recorder *prometheus.Recorder
		metrics  ports.IngestMetrics = ports.NopMetrics{}
	)
	if cfg.Metrics.Enabled {
		recorder = prometheus.NewRecorder()
		metrics = recorder
	} else {
		log.Info("metrics disabled")
	}

	renderer := imaging.NewRenderer(cfg.Render.JPEGQuality, cfg.Render.MaxPixels, metrics)

	// ============================================================================
	// Core Services
	// ============================================================================

	limits := services.Limits{
		Field:       cfg.Upload.Field,
		MaxFiles:    cfg.Upload.MaxFiles,
		MaxFileSize: cfg.Upload.MaxFileSize,
	}
	validator := services.NewValidator(limits)
	ingestSvc := services.NewIngestService(validator, renderer, store, catalog, metrics, cfg.Upload.Workers)
	imageSvc := services.NewImageService(catalog, store, metrics)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(ingestSvc, imageSvc, limits)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging())
	if recorder != nil {
		router.Use(middleware.Metrics(recorder))
	}
	router.Use(gin.Recovery())

	router.GET("/", h.Root)
	router.GET("/healthz", h.Ready)

	api := router.Group("/api")
	h.RegisterRoutes(api)

	if recorder != nil {
		router.GET("/metrics", gin.WrapH(recorder.Handler()))
	}

	// Renditions are served straight from disk; with object storage the
	// bucket itself is the public surface.
	if cfg.Storage.Driver == config.StorageDriverFilesystem {
		router.Static("/"+cfg.Storage.PublicPrefix, cfg.Storage.Root)
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
		MaxAge:         300,
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           corsHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
