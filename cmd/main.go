package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"isstracker/internal/cache"
	"isstracker/internal/clients"
	"isstracker/internal/config"
	"isstracker/internal/handlers"
	"isstracker/internal/logger"
	"isstracker/internal/middleware"
	"isstracker/internal/models"
	"isstracker/internal/repository"
	"isstracker/internal/service"
	"isstracker/internal/worker"
	"isstracker/pkg/database"
	redispkg "isstracker/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Загрузка .env
	envErr := godotenv.Load()

	// Загрузка конфигурации
	cfg := config.Load()

	log := logger.New(cfg.App.LogLevel, cfg.App.LogPretty)
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("No .env file found, using environment variables")
	}

	log.Info("=== ISS Tracker Backend Starting ===")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	clock := clockwork.NewRealClock()

	// База данных
	dbLogLevel := gormlogger.Warn
	if cfg.App.Debug {
		dbLogLevel = gormlogger.Info
	}

	db, err := database.Connect(database.Config{
		Driver:   cfg.DB.Driver,
		URL:      cfg.DB.URL,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.DBName,
		SSLMode:  cfg.DB.SSLMode,
		Path:     cfg.DB.Path,
		LogLevel: dbLogLevel,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", logger.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database handle", logger.Error(err))
	}
	defer sqlDB.Close()

	log.Info("Database connected", logger.String("driver", db.Dialector.Name()))

	// Автомиграция моделей
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database", logger.Error(err))
	}

	// Кэш: в памяти процесса или общий Redis
	var (
		appCache    cache.Cache
		redisClient *redis.Client
	)

	switch cfg.Cache.Backend {
	case "redis":
		redisClient, err = redispkg.Connect(redispkg.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", logger.Error(err))
		}
		defer redisClient.Close()

		appCache = cache.NewRedisCache(redisClient, cfg.Cache.Prefix)
	default:
		memoryCache := cache.NewMemoryCache(clock)
		memoryCache.StartJanitor(ctx, cfg.Cache.JanitorInterval)
		appCache = memoryCache
	}
	log.Info("Cache initialized", logger.String("backend", cfg.Cache.Backend))

	// Инициализация репозиториев
	launchRepo := repository.NewLaunchRepository(db)
	satelliteRepo := repository.NewSatelliteRepository(db)
	statisticsRepo := repository.NewStatisticsRepository(db)

	// Клиенты внешних API
	issClient := clients.NewISSClient(cfg.API.WhereTheISSAtURL, cfg.API.UserAgent, cfg.API.Timeout, nil)
	peopleClient := clients.NewPeopleClient(cfg.API.OpenNotifyURL, cfg.API.UserAgent, cfg.API.Timeout, nil)
	launchClient := clients.NewLaunchLibraryClient(cfg.API.LaunchLibraryURL, cfg.API.UserAgent, cfg.API.Timeout, nil, log)

	// Инициализация сервисов
	issService := service.NewISSService(issClient, peopleClient, appCache, clock, log, service.ISSConfig{
		PositionTTL: cfg.PositionCacheTTL(),
		FlyoverTTL:  cfg.FlyoverCacheTTL(),
		PeopleTTL:   cfg.CacheTTL.PeopleInSpace,
	})
	launchService := service.NewLaunchService(launchRepo, launchClient, appCache, clock, log, service.LaunchConfig{
		PageSize: cfg.Sync.PageSize,
		CacheTTL: cfg.LaunchesCacheTTL(),
	})
	analyticsService := service.NewAnalyticsService(launchRepo, statisticsRepo, appCache, clock, log, cfg.CacheTTL.AnalyticsDuration)
	reportService := service.NewReportService(launchRepo, analyticsService, clock, log, cfg.Export.OutputDir)

	// Фоновые задачи (по умолчанию выключены)
	scheduler := worker.NewScheduler(log)

	if cfg.Workers.LaunchSyncEnabled {
		scheduler.AddWorker(worker.NewLaunchSyncWorker(launchService, cfg.Workers.LaunchSyncInterval, clock, log))
	}
	if cfg.Workers.StatisticsEnabled {
		scheduler.AddWorker(worker.NewStatisticsWorker(analyticsService, cfg.Workers.StatisticsInterval, clock, log))
	}

	scheduler.Start()

	// Инициализация Gin
	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Info("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(log))

	// CORS для фронтенда
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiting (только для продакшена)
	if !cfg.App.Debug {
		ipLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(middleware.RateLimitMiddleware(ipLimiter, log))
		go cleanupLimiters(ctx, ipLimiter)

		log.Info("Rate limiting enabled",
			logger.Int("rps", cfg.RateLimit.RequestsPerSecond),
			logger.Int("burst", cfg.RateLimit.Burst),
		)
	}

	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, log)

	counters := map[string]handlers.Counter{
		"launches":          launchRepo,
		"satellites":        satelliteRepo,
		"launch_statistics": repository.NewRepository[models.LaunchStatistics](db),
	}
	workers := map[string]bool{
		"launch_sync": cfg.Workers.LaunchSyncEnabled,
		"statistics":  cfg.Workers.StatisticsEnabled,
	}

	handlers.RegisterRoutes(r, handlers.Handlers{
		ISS:       handlers.NewISSHandler(issService),
		Launch:    handlers.NewLaunchHandler(launchService, reportService, log),
		Analytics: analyticsHandler,
		Satellite: handlers.NewSatelliteHandler(satelliteRepo, log),
		Dashboard: handlers.NewDashboardHandler(issService, launchService),
		System:    handlers.NewSystemHandler(sqlDB, redisClient, counters, workers, log),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting",
			logger.String("addr", "http://localhost:"+cfg.App.Port),
			logger.String("api", "http://localhost:"+cfg.App.Port+"/api/v1"),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", logger.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", logger.Error(err))
	}

	scheduler.Stop()
	analyticsHandler.Wait()

	log.Info("Server exited properly")
}

// cleanupLimiters раз в минуту выбрасывает лимитеры неактивных клиентов
func cleanupLimiters(ctx context.Context, limiter *middleware.IPRateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			limiter.Cleanup()
		case <-ctx.Done():
			return
		}
	}
}
