package kv_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/wheretogo/compass/internal/database"
	"github.com/wheretogo/compass/internal/kv"
	"github.com/wheretogo/compass/internal/migrations"
)

func sqlStore(t *testing.T) *kv.SQLStore {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db, nil); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return kv.NewSQLStore(db)
}

func redisStore(t *testing.T) *kv.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return kv.NewRedisStore(rdb, "compass:")
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) kv.Store{
		"memory": func(*testing.T) kv.Store { return kv.NewMemoryStore() },
		"sqlite": func(t *testing.T) kv.Store { return sqlStore(t) },
		"redis":  func(t *testing.T) kv.Store { return redisStore(t) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			if _, err := s.Get(ctx, "device-id"); !errors.Is(err, kv.ErrNotFound) {
				t.Fatalf("Get missing: err = %v, want ErrNotFound", err)
			}

			if err := s.Set(ctx, "device-id", "abc"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := s.Get(ctx, "device-id")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got != "abc" {
				t.Errorf("Get = %q, want %q", got, "abc")
			}

			if err := s.Set(ctx, "device-id", "def"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			if got, _ := s.Get(ctx, "device-id"); got != "def" {
				t.Errorf("Get after overwrite = %q, want %q", got, "def")
			}

			if err := s.Set(ctx, "empty", ""); err != nil {
				t.Fatalf("Set empty: %v", err)
			}
			if got, err := s.Get(ctx, "empty"); err != nil || got != "" {
				t.Errorf("Get empty = %q, %v; want empty value", got, err)
			}

			if err := s.Remove(ctx, "device-id"); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if _, err := s.Get(ctx, "device-id"); !errors.Is(err, kv.ErrNotFound) {
				t.Fatalf("Get after Remove: err = %v, want ErrNotFound", err)
			}
			if err := s.Remove(ctx, "device-id"); err != nil {
				t.Fatalf("Remove missing: %v", err)
			}
		})
	}
}

func TestSQLStoreCheck(t *testing.T) {
	s := sqlStore(t)
	if err := s.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestRedisStorePrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	s := kv.NewRedisStore(rdb, "compass:")

	if err := s.Set(ctx, "where-to-go:d1:today", `{"date":"2024-01-15"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := mr.Get("compass:where-to-go:d1:today")
	if err != nil {
		t.Fatalf("raw key missing: %v", err)
	}
	if got != `{"date":"2024-01-15"}` {
		t.Errorf("raw value = %q", got)
	}
	if err := s.Check(ctx); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         "localhost:1",
		DialTimeout:  10 * time.Millisecond,
		ReadTimeout:  10 * time.Millisecond,
		WriteTimeout: 10 * time.Millisecond,
		MaxRetries:   -1,
	})
}

func TestRedisStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	rdb := deadRedis()
	defer rdb.Close()
	s := kv.NewRedisStore(rdb, "compass:")

	if err := s.Check(ctx); err == nil {
		t.Error("Check: expected error from unreachable redis")
	}
	if _, err := s.Get(ctx, "k"); err == nil || errors.Is(err, kv.ErrNotFound) {
		t.Errorf("Get: err = %v, want connection error", err)
	}
	if err := s.Set(ctx, "k", "v"); err == nil {
		t.Error("Set: expected error from unreachable redis")
	}
	if err := s.Remove(ctx, "k"); err == nil {
		t.Error("Remove: expected error from unreachable redis")
	}
}

func TestOpenRedisBadURL(t *testing.T) {
	if _, err := kv.OpenRedis(context.Background(), "not a url"); err == nil {
		t.Fatal("expected error for invalid url")
	}
}
