package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/quotewits/internal/auth"
	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

// Credentials is the in-process identity store.
// State lives as long as the process; nothing is written to disk.
type Credentials struct {
	mu     sync.RWMutex
	byName map[string]*domain.Identity // username -> identity
	lastID int64                       // last assigned ID, guarded by mu
}

// NewCredentials creates an empty identity store.
func NewCredentials() *Credentials {
	return &Credentials{
		byName: make(map[string]*domain.Identity),
	}
}

// Create stores a new identity. The username check, ID assignment and
// insert happen under one lock, so concurrent registrations never share an ID.
func (s *Credentials) Create(ctx context.Context, username string, passwordHash []byte, createdAt time.Time) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[username]; exists {
		return nil, domain.ErrDuplicateIdentity
	}

	s.lastID++
	identity := &domain.Identity{
		ID:           s.lastID,
		Username:     username,
		PasswordHash: append([]byte(nil), passwordHash...),
		CreatedAt:    createdAt,
	}
	s.byName[username] = identity

	cp := *identity
	return &cp, nil
}

// FindByUsername returns a copy of the identity registered under username.
func (s *Credentials) FindByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.byName[username]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}
	cp := *identity
	return &cp, nil
}

// Count returns the number of registered identities.
func (s *Credentials) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.byName)), nil
}
