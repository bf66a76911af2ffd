package stores

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db/models"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/redis"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.StorePricingConfig{}, &models.StorePriceTier{}))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func newTestCache(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type countingRepo struct {
	*Repository
	finds int
}

func (c *countingRepo) FindPricingConfig(ctx context.Context, storeID uuid.UUID) (*models.StorePricingConfig, error) {
	c.finds++
	return c.Repository.FindPricingConfig(ctx, storeID)
}

type testStack struct {
	svc   Service
	repo  *countingRepo
	cache *redis.Client
	mr    *miniredis.Miniredis
}

func newTestStack(t *testing.T) testStack {
	t.Helper()
	conn := newTestDB(t)
	cache, mr := newTestCache(t)
	repo := &countingRepo{Repository: NewRepository(conn)}

	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Tx:     db.NewWithConn(conn),
		Cache:  cache,
		Logger: newTestLogger(),
	})
	require.NoError(t, err)
	return testStack{svc: svc, repo: repo, cache: cache, mr: mr}
}
