package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if _, found, err := s.Get(ctx, KeyCart); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	payload := []byte(`[{"isbn":"978-4-00-310101-8","quantity":2}]`)
	if err := s.Set(ctx, KeyCart, payload); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, found, err := s.Get(ctx, KeyCart)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatalf("expected hit after set")
	}
	if string(got) != string(payload) {
		t.Fatalf("unexpected value: %s", got)
	}

	if err := s.Delete(ctx, KeyCart); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := s.Get(ctx, KeyCart); found {
		t.Fatalf("expected miss after delete")
	}
}

func TestFileStoreDeleteMissingIsNoop(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := s.Delete(context.Background(), "never_written"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := s.Set(context.Background(), "../escape", []byte("x")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.json")); err != nil {
		t.Fatalf("expected sanitized file inside base dir: %v", err)
	}
}

func TestFileStoreRejectsEmptyBasePath(t *testing.T) {
	if _, err := NewFileStore("  "); err == nil {
		t.Fatalf("expected error for empty base path")
	}
}
