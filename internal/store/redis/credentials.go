package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/quotewits/internal/auth"
	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

// identityRecord is the stored form of an identity. Unlike domain.Identity
// it serializes the password hash.
type identityRecord struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r identityRecord) identity() *domain.Identity {
	return &domain.Identity{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// Credentials stores identities in the KeyUsers hash
type Credentials struct {
	client *redis.Client
}

// Create assigns an ID with INCR and inserts with HSETNX, so a taken
// username is rejected atomically. An ID burnt by a lost race is not reused.
func (c *Credentials) Create(ctx context.Context, username string, passwordHash []byte, createdAt time.Time) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, err := c.client.Incr(ctx, KeyUserSeq).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to assign identity id: %w", err)
	}

	rec := identityRecord{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal identity: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	created, err := c.client.HSetNX(ctx, KeyUsers, username, data).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to save identity: %w", err)
	}
	if !created {
		return nil, domain.ErrDuplicateIdentity
	}

	return rec.identity(), nil
}

// FindByUsername loads the identity registered under username
func (c *Credentials) FindByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	data, err := c.client.HGet(ctx, KeyUsers, username).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	var rec identityRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal identity: %w", err)
	}
	return rec.identity(), nil
}

// Count returns the number of registered identities
func (c *Credentials) Count(ctx context.Context) (int64, error) {
	n, err := c.client.HLen(ctx, KeyUsers).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count identities: %w", err)
	}
	return n, nil
}
