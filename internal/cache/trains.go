// Package cache provides a Redis-backed read cache for the train network.
// Trains are immutable once registered, so the cached snapshot can only go
// stale when a new train is added — which deletes the key. When no Redis
// client is configured the cache degrades to a transparent pass-through.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// trainsKey holds the JSON-encoded full train list.
const trainsKey = "trains:all"

// TrainSource is the backing store the cache falls through to.
// Satisfied by repo.TrainRepo.
type TrainSource interface {
	List(ctx context.Context) ([]domain.Train, error)
}

// TrainCache caches the full train listing under a single key with a TTL.
// Cache faults are never surfaced: a broken Redis degrades to direct
// database reads, logged at warn level.
type TrainCache struct {
	client *redis.Client
	source TrainSource
	ttl    time.Duration
}

// NewTrainCache constructs a TrainCache over source. client may be nil, in
// which case every call goes straight to the source.
func NewTrainCache(client *redis.Client, source TrainSource, ttl time.Duration) *TrainCache {
	return &TrainCache{client: client, source: source, ttl: ttl}
}

// List returns the train network, from Redis when the snapshot is warm and
// from the source otherwise, repopulating the key on a miss.
func (c *TrainCache) List(ctx context.Context) ([]domain.Train, error) {
	if c.client == nil {
		return c.source.List(ctx)
	}

	raw, err := c.client.Get(ctx, trainsKey).Bytes()
	if err == nil {
		var trains []domain.Train
		if err := json.Unmarshal(raw, &trains); err == nil {
			return trains, nil
		}
		// Undecodable entry: drop it and fall through to the source.
		c.client.Del(ctx, trainsKey)
	} else if !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "train cache read failed", "error", err)
	}

	trains, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(trains); err == nil {
		if err := c.client.Set(ctx, trainsKey, raw, c.ttl).Err(); err != nil {
			slog.WarnContext(ctx, "train cache write failed", "error", err)
		}
	}
	return trains, nil
}

// Invalidate deletes the cached snapshot. Called after train registration.
func (c *TrainCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, trainsKey).Err()
}
