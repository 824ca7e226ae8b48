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
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/application/moderation"
	"github.com/wanderlens/backend/internal/application/photos"
	"github.com/wanderlens/backend/internal/application/places"
	appsync "github.com/wanderlens/backend/internal/application/sync"
	"github.com/wanderlens/backend/internal/application/wallet"
	"github.com/wanderlens/backend/internal/application/watermark"
	"github.com/wanderlens/backend/internal/infrastructure/album"
	"github.com/wanderlens/backend/internal/infrastructure/auth"
	"github.com/wanderlens/backend/internal/infrastructure/config"
	"github.com/wanderlens/backend/internal/infrastructure/exif"
	"github.com/wanderlens/backend/internal/infrastructure/geocode"
	"github.com/wanderlens/backend/internal/infrastructure/logger"
	"github.com/wanderlens/backend/internal/infrastructure/persistence"
	"github.com/wanderlens/backend/internal/infrastructure/storage"
	"github.com/wanderlens/backend/internal/interfaces/http/handler"
	"github.com/wanderlens/backend/internal/interfaces/http/middleware"
	"github.com/wanderlens/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting WanderLens Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	photoRepo := persistence.NewGormPhotoRepository(db.DB)
	placeRepo := persistence.NewGormPlaceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txRepo := persistence.NewGormTransactionRepository(db.DB)
	watermarkRepo := persistence.NewGormWatermarkRepository(db.DB)

	// Media storage. S3-compatible when an endpoint or credentials are
	// configured, in-memory otherwise so the server stays usable in local
	// development without MinIO.
	var mediaStore ingestion.MediaStore
	if cfg.Storage.Endpoint != "" || cfg.Storage.AccessKey != "" {
		s3Store, err := storage.NewS3MediaStore(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize media storage", zap.Error(err))
		}
		ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Store.EnsureBucket(ensureCtx); err != nil {
			cancel()
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		mediaStore = s3Store
		log.Info("Media storage ready",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("endpoint", cfg.Storage.Endpoint),
		)
	} else {
		mediaStore = storage.NewMemoryMediaStore()
		log.Warn("No storage endpoint or credentials configured, using in-memory media store")
	}

	// Geocoding with a Redis-backed cache in front of the external API
	geocoder, err := geocode.NewGoogleGeocoder(&cfg.Geocoding, geocode.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize geocoder", zap.Error(err))
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	geoResolver := geocode.NewCachedResolver(geocoder, redisClient, cfg.Geocoding.CacheTTL, log)

	// Shared-album listing and EXIF extraction
	albumLister := album.NewGooglePhotosLister(&cfg.Album, album.WithLogger(log))
	exifExtractor := exif.NewExtractor()

	// Initialize application services
	registryService := places.NewRegistryService(placeRepo, log)
	ingestService := ingestion.NewService(photoRepo, mediaStore, geoResolver, exifExtractor, registryService, log)
	queryService := photos.NewQueryService(photoRepo, watermarkRepo, mediaStore, log)
	moderationService := moderation.NewService(
		photoRepo,
		userRepo,
		txRepo,
		placeRepo,
		mediaStore,
		decimal.NewFromInt(cfg.Reward.Amount),
		log,
	)
	walletService := wallet.NewService(userRepo, txRepo, log)
	albumSyncService := appsync.NewAlbumSyncService(albumLister, ingestService, photoRepo, log)
	watermarkService := watermark.NewService(watermarkRepo, log)
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize handlers
	photoHandler := handler.NewPhotoHandler(ingestService, queryService, moderationService)
	moderationHandler := handler.NewModerationHandler(moderationService)
	syncHandler := handler.NewSyncHandler(albumSyncService)
	walletHandler := handler.NewWalletHandler(walletService)
	watermarkHandler := handler.NewWatermarkHandler(watermarkService)
	placeHandler := handler.NewPlaceHandler(registryService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit. Sized for multipart photo uploads.
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Apply JWT authentication middleware to API routes.
	// Public browse endpoints skip authentication.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
			"/api/v1/photos/nearby",
		},
		SkipPathPrefixes: []string{
			"/api/v1/places",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(photoHandler).
		Register(syncHandler).
		Register(walletHandler).
		Register(placeHandler).
		Register(moderationHandler).
		Register(watermarkHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
