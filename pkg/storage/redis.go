package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	snapshotKeyPrefix = "oscillab:experiment:"
	latestKey         = "oscillab:experiment:latest"
)

// RedisStore persists snapshots in redis as JSON values with a TTL. The
// latest marker holds the ID of the most recent run, so an expired snapshot
// reads back as missing.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a redis-backed store. Connectivity is not checked
// here; call Ping.
func NewRedisStore(addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisStore{client: client, ttl: ttl}, nil
}

// Put stores the snapshot and points the latest marker at it.
func (s *RedisStore) Put(ctx context.Context, snapshot Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, snapshotKeyPrefix+snapshot.ID, data, s.ttl)
	pipe.Set(ctx, latestKey, snapshot.ID, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

// Get returns the snapshot with the given ID.
func (s *RedisStore) Get(ctx context.Context, id string) (Snapshot, bool, error) {
	data, err := s.client.Get(ctx, snapshotKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snapshot, true, nil
}

// GetLatest returns the snapshot the latest marker points at.
func (s *RedisStore) GetLatest(ctx context.Context) (Snapshot, bool, error) {
	id, err := s.client.Get(ctx, latestKey).Result()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to get latest marker: %w", err)
	}

	return s.Get(ctx, id)
}

// Ping verifies connectivity to the redis server.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
