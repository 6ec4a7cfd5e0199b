package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wardrobe-api/internal/application/services"
	"wardrobe-api/internal/infrastructure/clients"
	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/database"
	"wardrobe-api/internal/infrastructure/imaging"
	"wardrobe-api/internal/infrastructure/logger"
	"wardrobe-api/internal/infrastructure/redis"
	"wardrobe-api/internal/infrastructure/repositories"
	"wardrobe-api/internal/infrastructure/storage"
	"wardrobe-api/internal/presentation/routes"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.InitGlobalLogger(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	log := logger.GetLogger()

	log.Info("Starting wardrobe API")

	gormDB, err := database.NewGormDB(&cfg.Database)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Failed to connect to PostgreSQL")
	}

	if err := database.InitializeDatabase(gormDB, log); err != nil {
		log.WithField("error", err.Error()).Fatal("Database initialization failed")
	}

	if err := database.HealthCheck(gormDB); err != nil {
		log.WithField("error", err.Error()).Fatal("Database health check failed")
	}
	log.Info("PostgreSQL connection established")

	keepAlive := database.NewConnectionKeepAliveService(gormDB, log, cfg.Database.KeepAliveInterval)
	keepAlive.Start()

	// Redis is optional; without it the repositories hit the database
	// directly.
	var cacheService *redis.CacheService
	if cfg.Redis.Enabled {
		cacheService, err = redis.NewCacheService(&cfg.Redis, log)
		if err != nil {
			log.WithField("error", err.Error()).Warn("Failed to initialize Redis, continuing without cache")
			cacheService = nil
		}
	}

	var repoFactory *repositories.RepositoryFactory
	if cacheService != nil {
		repoFactory = repositories.NewRepositoryFactoryWithCache(gormDB, cacheService)
	} else {
		repoFactory = repositories.NewRepositoryFactory(gormDB)
	}

	store, err := buildObjectStore(cfg, log)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Failed to initialize object storage")
	}

	normalizer := imaging.NewNormalizer(cfg.Image, log)
	classifier := clients.NewOpenAIClassifier(&cfg.Classifier, log)

	serviceFactory := services.NewServiceFactory(repoFactory, normalizer, store, classifier, cfg, log)

	router := routes.NewRouter(cfg, log, serviceFactory, gormDB)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.WithField("address", server.Addr).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithField("error", err.Error()).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	keepAlive.Stop()
	if cacheService != nil {
		if err := cacheService.Close(); err != nil {
			log.WithField("error", err.Error()).Error("Failed to close Redis connection")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithField("error", err.Error()).Fatal("Server forced to shutdown")
	}
	log.Info("Server shutdown complete")
}

// buildObjectStore picks the storage backend: S3 with local failover when
// the bucket is configured, the local filesystem alone otherwise.
func buildObjectStore(cfg *config.Config, log logger.Logger) (storage.ObjectStore, error) {
	local, err := storage.NewLocalStore(&cfg.Storage.Local, log)
	if err != nil {
		return nil, err
	}

	if !cfg.Storage.S3.Enabled || cfg.Storage.S3.Bucket == "" {
		log.Info("Using local object storage")
		return local, nil
	}

	s3Store, err := storage.NewS3Store(&cfg.Storage.S3, log)
	if err != nil {
		log.WithField("error", err.Error()).Warn("Failed to initialize S3, using local object storage only")
		return local, nil
	}

	log.WithField("bucket", cfg.Storage.S3.Bucket).Info("Using S3 object storage with local failover")
	return storage.NewFailoverStore(s3Store, local, log), nil
}
