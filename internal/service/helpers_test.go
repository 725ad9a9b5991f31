package service

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"isstracker/internal/cache"
	"isstracker/pkg/database"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestCache(clock clockwork.Clock) *cache.MemoryCache {
	return cache.NewMemoryCache(clock)
}

type fakeISSClient struct {
	calls    atomic.Int32
	response map[string]interface{}
	err      error
}

func (f *fakeISSClient) GetPosition(context.Context) (map[string]interface{}, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakePeopleClient struct {
	calls    atomic.Int32
	response map[string]interface{}
	err      error
}

func (f *fakePeopleClient) GetAstros(context.Context) (map[string]interface{}, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
