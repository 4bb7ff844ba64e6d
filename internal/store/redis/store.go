// Package redis implements the credential and favorites repositories on
// top of a Redis keyspace, so that several API replicas can share state.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for identities and favorites
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks that the server answers
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Credentials returns a view of the store implementing auth.CredentialStore
func (s *Store) Credentials() *Credentials {
	return &Credentials{client: s.client}
}

// Favorites returns a view of the store implementing favorites.Repository
func (s *Store) Favorites() *Favorites {
	return &Favorites{client: s.client}
}
