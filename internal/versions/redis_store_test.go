package versions

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client)
}

func TestRedisStoreMissingKeyIsEmpty(t *testing.T) {
	store := newRedisStore(t)

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(entries))
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t)

	if err := store.Replace(ctx, []DesignVersion{sampleEntry(1), sampleEntry(2)}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].VersionNumber != 2 {
		t.Fatalf("entry order lost: %+v", entries)
	}
}

func TestRedisStoreReplaceOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t)

	if err := store.Replace(ctx, []DesignVersion{sampleEntry(1), sampleEntry(2)}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.Replace(ctx, []DesignVersion{sampleEntry(3)}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	entries, _ := store.List(ctx)
	if len(entries) != 1 || entries[0].VersionNumber != 3 {
		t.Fatalf("expected single replacement entry, got %+v", entries)
	}
}
