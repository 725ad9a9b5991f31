package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"isstracker/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string
	LogLevel logger.LogLevel
}

// Dialector выбирает драйвер gorm: postgres в продакшене,
// sqlite для локальной разработки, mysql как альтернатива
func Dialector(config Config) (gorm.Dialector, error) {
	switch config.Driver {
	case "", "postgres":
		dsn := config.URL
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
			)
		}
		return postgres.Open(dsn), nil

	case "sqlite":
		if dir := filepath.Dir(config.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		return sqlite.Open(config.Path + "?_foreign_keys=on&_busy_timeout=5000"), nil

	case "mysql":
		dsn := config.URL
		if dsn == "" {
			dsn = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				config.User, config.Password, config.Host, config.Port, config.DBName,
			)
		}
		return mysql.Open(dsn), nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", config.Driver)
	}
}

func Connect(config Config) (*gorm.DB, error) {
	dialector, err := Dialector(config)
	if err != nil {
		return nil, err
	}

	logLevel := config.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Настройка пула соединений
	if config.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Launch{},
		&models.Satellite{},
		&models.LaunchStatistics{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	if err := SeedSatellites(db); err != nil {
		return fmt.Errorf("failed to seed satellites: %w", err)
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	// Частичные индексы есть только в postgres
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_launches_upcoming ON launches(launch_date ASC NULLS LAST)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_launches_favorite ON launches(external_id) WHERE is_favorite").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_launch_statistics_date_desc ON launch_statistics(date DESC)").Error; err != nil {
		return err
	}

	return nil
}

// SeedSatellites добавляет МКС, если ее еще нет в таблице
func SeedSatellites(db *gorm.DB) error {
	iss := models.ISSSatellite()

	var existing models.Satellite
	err := db.Where("norad_id = ?", iss.NoradID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Create(&iss).Error
}
