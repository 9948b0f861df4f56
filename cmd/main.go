package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"healthrecord/database"
	"healthrecord/internal/analyzer"
	"healthrecord/internal/auth"
	"healthrecord/internal/cache"
	"healthrecord/internal/config"
	"healthrecord/internal/controllers"
	"healthrecord/internal/logger"
	"healthrecord/internal/middleware"
	"healthrecord/internal/openai"
	"healthrecord/internal/repository"
	"healthrecord/internal/services"
	"healthrecord/internal/storage"
	"healthrecord/routes"
)

const version = "1.0"

// @title						Health Record API
// @version					1.0
// @description				Upload medical reports for plain-language explanations and track vitals.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDatabase(cfg.DB, log)
	if err != nil {
		return err
	}
	if err := database.MigrateDatabase(db, log); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	database.MonitorDBConnections(ctx, db, log)

	store, err := newObjectStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	docAnalyzer, closeAnalyzer, err := newAnalyzer(ctx, cfg.Analyzer, log)
	if err != nil {
		return err
	}
	defer closeAnalyzer()

	var redisClient *cache.RedisClient
	var reportCache services.ReportCache
	if cfg.Cache.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
		if err != nil {
			log.Warn("redis unavailable, report listings will not be cached", zap.Error(err))
		} else {
			defer redisClient.Close()
			reportCache = redisClient
			log.Info("report cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
		}
	}

	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)
	vitalsRepo := repository.NewVitalsRepository(db)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := services.NewAuthService(userRepo, tokens, cfg.Auth.HashCost, log)
	reportService := services.NewReportService(reportRepo, store, docAnalyzer, reportCache, cfg.Storage.Folder, log)
	vitalsService := services.NewVitalsService(vitalsRepo)

	production := cfg.IsProduction()
	authController := controllers.NewAuthController(authService, production)
	profileController := controllers.NewProfileController(authService, production)
	reportController := controllers.NewReportController(reportService, production)
	vitalsController := controllers.NewVitalsController(vitalsService, production)

	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery(log), middleware.RequestLogger(log), middleware.CORS())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Health record API is running")
	})
	router.GET("/health", healthHandler(db, redisClient))
	router.GET("/debug/stats", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		pool := sqlDB.Stats()

		c.JSON(http.StatusOK, gin.H{
			"goroutines":    runtime.NumGoroutine(),
			"memory_mb":     m.Alloc / 1024 / 1024,
			"db_open_conns": pool.OpenConnections,
			"db_in_use":     pool.InUse,
			"db_idle":       pool.Idle,
			"cache_enabled": redisClient != nil,
		})
	})

	authMiddleware := middleware.AuthMiddleware(authService)
	routes.RegisterAuthRoutes(router, authController, authMiddleware)
	routes.RegisterProfileRoutes(router, profileController, authMiddleware)
	routes.RegisterReportRoutes(router, reportController, authMiddleware)
	routes.RegisterVitalsRoutes(router, vitalsController, authMiddleware)
	routes.RegisterSwaggerRoutes(router, version)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("analyzer", cfg.Analyzer.Provider),
			zap.String("storage", cfg.Storage.Driver),
		)
		log.Info("api documentation", zap.String("url", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newObjectStore(ctx context.Context, cfg config.StorageConfig) (storage.ObjectStore, error) {
	if cfg.Driver == config.StorageMemory {
		return storage.NewMemoryStore(cfg.PublicBaseURL), nil
	}
	return storage.NewS3Store(ctx, cfg)
}

func newAnalyzer(ctx context.Context, cfg config.AnalyzerConfig, log *zap.Logger) (analyzer.Analyzer, func(), error) {
	if cfg.Provider == config.ProviderOpenAI {
		client, err := openai.NewClient(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	}

	gemini, err := analyzer.NewGeminiAnalyzer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		return nil, nil, err
	}
	return gemini, func() {
		if err := gemini.Close(); err != nil {
			log.Warn("failed to close gemini client", zap.Error(err))
		}
	}, nil
}

func healthHandler(db *gorm.DB, redisClient *cache.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		body := gin.H{"status": "ok", "database": "up"}

		if err := database.Ping(ctx, db); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = "down"
		}

		if redisClient != nil {
			if stats, err := redisClient.GetStatus(ctx); err != nil {
				body["cache"] = gin.H{"connected": false}
			} else {
				body["cache"] = stats
			}
		}

		c.JSON(status, body)
	}
}
