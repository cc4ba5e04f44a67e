package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRepository tracks token ids invalidated by logout until their
// natural expiry.
type RevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisRevocationRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRevocationRepository stores revocations as expiring Redis keys.
func NewRedisRevocationRepository(client redis.UniversalClient, prefix string) RevocationRepository {
	if prefix == "" {
		prefix = "revoked:"
	}
	return &redisRevocationRepository{client: client, prefix: prefix}
}

func (r *redisRevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("token id cannot be empty")
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// already unusable
		return nil
	}
	if err := r.client.Set(ctx, r.prefix+tokenID, expiresAt.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *redisRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, r.prefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

type memoryRevocationRepository struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationRepository keeps revocations in process memory.
func NewMemoryRevocationRepository(now func() time.Time) RevocationRepository {
	if now == nil {
		now = time.Now
	}
	return &memoryRevocationRepository{entries: make(map[string]time.Time), now: now}
}

func (r *memoryRevocationRepository) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("token id cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	if expiresAt.After(r.now()) {
		r.entries[tokenID] = expiresAt
	}
	return nil
}

func (r *memoryRevocationRepository) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !exp.After(r.now()) {
		delete(r.entries, tokenID)
		return false, nil
	}
	return true, nil
}

func (r *memoryRevocationRepository) pruneLocked() {
	now := r.now()
	for id, exp := range r.entries {
		if !exp.After(now) {
			delete(r.entries, id)
		}
	}
}
