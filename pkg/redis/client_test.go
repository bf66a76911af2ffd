package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/config"
)

type cachedConfig struct {
	Mode  string   `json:"mode"`
	Tiers []string `json:"tiers"`
}

func TestJSONRoundTripWithMiniredis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	key := client.PricingConfigKey("store-1")

	var missing cachedConfig
	found, err := client.GetJSON(ctx, key, &missing)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, client.SetJSON(ctx, key, cachedConfig{Mode: "gradual_wholesale", Tiers: []string{"a", "b"}}, time.Minute))
	require.Equal(t, time.Minute, mr.TTL(key))

	var got cachedConfig
	found, err = client.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "gradual_wholesale", got.Mode)
	require.Equal(t, []string{"a", "b"}, got.Tiers)

	mr.FastForward(2 * time.Minute)
	found, err = client.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	require.False(t, found, "entry should expire after its ttl")
}

func TestGetJSONRejectsCorruptPayload(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}
	mock.data["shopflow:pricing_config:s"] = "{not json"

	var dst cachedConfig
	found, err := client.GetJSON(ctx, client.PricingConfigKey("s"), &dst)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if found {
		t.Fatal("corrupt payload must not be reported as found")
	}
}

func TestDelRemovesKey(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	if err := client.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := client.Del(ctx, "k"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, "k"); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestUninitializedClient(t *testing.T) {
	ctx := context.Background()
	client := &Client{}

	if err := client.Ping(ctx); err == nil {
		t.Fatal("expected ping error on empty client")
	}
	if _, err := client.GetJSON(ctx, "k", &cachedConfig{}); err == nil {
		t.Fatal("expected get error on empty client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on empty client should be a no-op, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.PricingConfigKey("store-1"); got != "shopflow:pricing_config:store-1" {
		t.Fatalf("unexpected pricing config key %s", got)
	}
	if got := client.PricingConfigKey(" "); got != "shopflow:pricing_config" {
		t.Fatalf("blank parts should be skipped, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 7, DialTimeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.DB != 2 || opts.PoolSize != 7 || opts.DialTimeout != time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}

	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6379", DB: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.DB != 3 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
