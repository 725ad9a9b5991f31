package cache

import (
	"context"
	"time"
)

// Cache - хранилище ключ -> значение с TTL на каждую запись.
// Значения хранятся в сериализованном виде, поэтому GetJSON всегда
// отдает вызывающему независимую копию.
type Cache interface {
	// GetJSON декодирует значение в dest. false - ключа нет или он истек.
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
