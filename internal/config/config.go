package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App struct {
		Port        string
		Debug       bool
		FrontendURL string
		LogLevel    string
		LogPretty   bool
	}
	DB struct {
		Driver   string // postgres / sqlite / mysql
		URL      string
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		Path     string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Cache struct {
		Backend         string // memory / redis
		Prefix          string
		JanitorInterval time.Duration
	}
	API struct {
		WhereTheISSAtURL string
		OpenNotifyURL    string
		LaunchLibraryURL string
		UserAgent        string
		Timeout          time.Duration
	}
	CacheTTL struct {
		PositionSeconds   int
		FlyoverHours      int
		LaunchesHours     int
		PeopleInSpace     time.Duration
		AnalyticsDuration time.Duration
	}
	Sync struct {
		PageSize int
	}
	Workers struct {
		LaunchSyncEnabled  bool
		StatisticsEnabled  bool
		LaunchSyncInterval time.Duration
		StatisticsInterval time.Duration
	}
	RateLimit struct {
		RequestsPerSecond int
		Burst             int
	}
	Export struct {
		OutputDir string
	}
}

func Load() *Config {
	cfg := &Config{}

	// App
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.Debug = getEnvAsBool("DEBUG", false)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.App.LogPretty = getEnvAsBool("LOG_PRETTY", cfg.App.Debug)

	// DB
	cfg.DB.Driver = getEnv("DB_DRIVER", "postgres")
	cfg.DB.URL = getEnv("DATABASE_URL", "")
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnv("DB_NAME", "iss_tracker")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.DB.Path = getEnv("DB_PATH", "./data/iss_tracker.db")

	// Redis
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	// Cache
	cfg.Cache.Backend = getEnv("CACHE_BACKEND", "memory")
	cfg.Cache.Prefix = getEnv("CACHE_PREFIX", "isstracker:")
	cfg.Cache.JanitorInterval = getEnvAsDuration("CACHE_JANITOR_INTERVAL", 10*time.Minute)

	// Внешние API
	cfg.API.WhereTheISSAtURL = getEnv("WHERE_THE_ISS_AT_URL", "https://api.wheretheiss.at/v1")
	cfg.API.OpenNotifyURL = getEnv("OPEN_NOTIFY_URL", "http://api.open-notify.org")
	cfg.API.LaunchLibraryURL = getEnv("LAUNCH_LIBRARY_URL", "https://ll.thespacedevs.com/2.2.0")
	cfg.API.UserAgent = getEnv("API_USER_AGENT", "ISS-Tracker/1.0")
	cfg.API.Timeout = getEnvAsDuration("API_TIMEOUT", 30*time.Second)

	// TTL кэша
	cfg.CacheTTL.PositionSeconds = getEnvAsInt("ISS_POSITION_CACHE_SECONDS", 5)
	cfg.CacheTTL.FlyoverHours = getEnvAsInt("FLYOVER_CACHE_HOURS", 6)
	cfg.CacheTTL.LaunchesHours = getEnvAsInt("LAUNCHES_CACHE_HOURS", 12)
	cfg.CacheTTL.PeopleInSpace = getEnvAsDuration("PEOPLE_IN_SPACE_CACHE", time.Hour)
	cfg.CacheTTL.AnalyticsDuration = getEnvAsDuration("ANALYTICS_CACHE", 30*time.Minute)

	// Sync
	cfg.Sync.PageSize = getEnvAsInt("LAUNCH_SYNC_PAGE_SIZE", 50)

	// Workers (по умолчанию выключены - синхронизация идет по запросу)
	cfg.Workers.LaunchSyncEnabled = getEnvAsBool("LAUNCH_SYNC_ENABLED", false)
	cfg.Workers.StatisticsEnabled = getEnvAsBool("STATISTICS_ENABLED", false)
	cfg.Workers.LaunchSyncInterval = getEnvAsDuration("WORKER_LAUNCH_SYNC_INTERVAL", 6*time.Hour)
	cfg.Workers.StatisticsInterval = getEnvAsDuration("WORKER_STATISTICS_INTERVAL", time.Hour)

	// Rate Limit
	cfg.RateLimit.RequestsPerSecond = getEnvAsInt("RATE_LIMIT_RPS", 10)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 20)

	// Export
	cfg.Export.OutputDir = getEnv("EXPORT_OUTPUT_DIR", "./data/exports")

	return cfg
}

func (c *Config) PositionCacheTTL() time.Duration {
	return time.Duration(c.CacheTTL.PositionSeconds) * time.Second
}

func (c *Config) FlyoverCacheTTL() time.Duration {
	return time.Duration(c.CacheTTL.FlyoverHours) * time.Hour
}

func (c *Config) LaunchesCacheTTL() time.Duration {
	return time.Duration(c.CacheTTL.LaunchesHours) * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}
