package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisStore(redis.Addr(), "")
	ctx := context.Background()

	if _, found, err := s.Get(ctx, KeySessionToken); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, KeySessionToken, []byte("tok-123")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, found, err := s.Get(ctx, KeySessionToken)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found || string(got) != "tok-123" {
		t.Fatalf("unexpected result: found=%v value=%s", found, got)
	}

	if err := s.Delete(ctx, KeySessionToken); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := s.Get(ctx, KeySessionToken); found {
		t.Fatalf("expected miss after delete")
	}
}

func TestRedisStoreDeleteMissingIsNoop(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisStore(redis.Addr(), "")
	if err := s.Delete(context.Background(), "absent"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}
