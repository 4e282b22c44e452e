package cache

import (
	"activity-map-service/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisActivityCache, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisActivityCache(client, 15*time.Minute), s
}

func TestRedisActivityCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	start := time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)
	acts := []domain.Activity{
		{ID: 1, Name: "Morning Run", StartDate: start, Type: domain.ActivityRun, SourceType: "Run", DistanceMeters: 10000, MovingTimeSeconds: 3000, ElevationGainMeters: 120, Polyline: "_p~iF~ps|U"},
		{ID: 2, Name: "Swim", StartDate: start.Add(time.Hour), Type: domain.ActivityOther, SourceType: "Swim"},
	}

	if _, ok, err := c.Get(ctx, 42); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Put(ctx, 42, acts); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, 42)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "Morning Run" || got[0].Type != domain.ActivityRun || !got[0].StartDate.Equal(start) || got[0].Polyline != "_p~iF~ps|U" {
		t.Fatalf("unexpected first activity: %+v", got[0])
	}
	if got[1].Type != domain.ActivityOther {
		t.Fatalf("Type = %q, want Other", got[1].Type)
	}
}

func TestRedisActivityCacheExpires(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, 1, []domain.Activity{{ID: 9}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ttl := s.TTL("activities:1"); ttl != 15*time.Minute {
		t.Fatalf("ttl = %v, want 15m", ttl)
	}

	s.FastForward(16 * time.Minute)

	if _, ok, err := c.Get(ctx, 1); err != nil || ok {
		t.Fatalf("expected miss after expiry, got ok=%v err=%v", ok, err)
	}
}

func TestRedisActivityCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, 5, nil); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := c.Get(ctx, 5)
	if err != nil || !ok || len(got) != 0 {
		t.Fatalf("expected empty hit, got %v ok=%v err=%v", got, ok, err)
	}

	if err := c.Invalidate(ctx, 5); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, _ := c.Get(ctx, 5); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestRedisActivityCacheServerDown(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	defer client.Close()
	s.Close()

	c := NewRedisActivityCache(client, time.Minute)
	if _, _, err := c.Get(context.Background(), 1); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}
