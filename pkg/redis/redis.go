package redis

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"isstracker/internal/logger"

	"github.com/go-redis/redis/v8"
)

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func Connect(config Config, log logger.Logger) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     100,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  5 * time.Minute,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	info, err := client.Info(ctx, "server").Result()
	if err != nil {
		log.Warn("Failed to get Redis info", logger.Error(err))
	} else {
		log.Info("Redis connected",
			logger.String("addr", addr),
			logger.String("version", ParseInfo(info)["redis_version"]),
		)
	}

	return client, nil
}

var statsKeys = map[string]struct{}{
	"redis_version":              {},
	"connected_clients":          {},
	"used_memory_human":          {},
	"used_memory_peak_human":     {},
	"total_connections_received": {},
	"total_commands_processed":   {},
	"keyspace_hits":              {},
	"keyspace_misses":            {},
	"uptime_in_seconds":          {},
}

// GetStats возвращает статистику Redis для /system/stats
func GetStats(ctx context.Context, client *redis.Client) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	info, err := client.Info(ctx).Result()
	if err != nil {
		return nil, err
	}

	stats := make(map[string]string)
	for key, value := range ParseInfo(info) {
		if _, ok := statsKeys[key]; ok {
			stats[key] = value
		}
	}

	return stats, nil
}

// ParseInfo разбирает ответ INFO в пары ключ -> значение,
// пропуская заголовки секций
func ParseInfo(info string) map[string]string {
	result := make(map[string]string)

	scanner := bufio.NewScanner(strings.NewReader(info))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if key, value, found := strings.Cut(line, ":"); found {
			result[key] = value
		}
	}

	return result
}
