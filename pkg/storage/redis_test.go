package storage

import (
	"testing"
	"time"
)

// Round-trip coverage against a real server lives in test/integration.

func TestNewRedisStore_RequiresAddr(t *testing.T) {
	if _, err := NewRedisStore("", "", 0, time.Hour); err == nil {
		t.Error("NewRedisStore with empty addr expected error, got nil")
	}
}

func TestNewRedisStore(t *testing.T) {
	store, err := NewRedisStore("localhost:6379", "", 0, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	if store == nil {
		t.Fatal("NewRedisStore() returned nil")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
