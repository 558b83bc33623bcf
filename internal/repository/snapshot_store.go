package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"CovidPulse/internal/domain/models"
	"CovidPulse/internal/domain/repository"
	"CovidPulse/internal/service/cache"
)

const latestSnapshotKey = "snapshot:latest"

// CacheSnapshotStore keeps the latest snapshot as JSON in a BytesCache.
type CacheSnapshotStore struct {
	cache  cache.BytesCache
	prefix string
	ttl    time.Duration
}

// NewCacheSnapshotStore creates a snapshot store; entries expire after ttl.
func NewCacheSnapshotStore(c cache.BytesCache, prefix string, ttl time.Duration) repository.SnapshotStore {
	return &CacheSnapshotStore{cache: c, prefix: prefix, ttl: ttl}
}

func (s *CacheSnapshotStore) key() string { return s.prefix + latestSnapshotKey }

func (s *CacheSnapshotStore) Save(ctx context.Context, snap *models.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.cache.SetBytes(ctx, s.key(), b, s.ttl); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

func (s *CacheSnapshotStore) Latest(ctx context.Context) (*models.Snapshot, error) {
	b, ok, err := s.cache.GetBytes(ctx, s.key())
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		return nil, models.ErrSnapshotNotFound
	}
	var snap models.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (s *CacheSnapshotStore) Close() error {
	return s.cache.Close()
}
