package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

const (
	// MinPasswordLength is counted in characters, not bytes.
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
	// DefaultBcryptCost matches the cost used by the first version of the service.
	DefaultBcryptCost = 10
)

// ErrIdentityNotFound is returned by a CredentialStore when the username is unknown.
var ErrIdentityNotFound = errors.New("identity not found")

// CredentialStore persists identities. It is append-only.
//
// Create must assign a fresh, unique, increasing ID and must return
// domain.ErrDuplicateIdentity if the username is taken, atomically with the
// insert.
type CredentialStore interface {
	Create(ctx context.Context, username string, passwordHash []byte, createdAt time.Time) (*domain.Identity, error)
	FindByUsername(ctx context.Context, username string) (*domain.Identity, error)
}

// Credentials registers and verifies identities.
type Credentials struct {
	store     CredentialStore
	cost      int
	now       func() time.Time
	dummyHash []byte
}

// NewCredentials builds the credential service on top of store.
// cost outside bcrypt's range falls back to DefaultBcryptCost.
func NewCredentials(store CredentialStore, cost int) (*Credentials, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	// Compared against when the username does not exist, so both failure
	// paths spend the same bcrypt time.
	dummy, err := bcrypt.GenerateFromPassword([]byte("quotewits-timing-equalizer"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &Credentials{
		store:     store,
		cost:      cost,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// Register validates the credentials, hashes the password and stores a new identity.
func (c *Credentials) Register(ctx context.Context, username, password string) (*domain.Identity, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, domain.ErrWeakCredential
	}
	if len(password) > MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	// Cheap pre-check so a taken username does not cost a hash.
	// The store re-checks atomically on insert.
	if _, err := c.store.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, ErrIdentityNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	identity, err := c.store.Create(ctx, username, hash, c.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}
	return identity, nil
}

// Verify returns the identity matching username and password.
// Unknown usernames and wrong passwords yield the same error.
func (c *Credentials) Verify(ctx context.Context, username, password string) (*domain.Identity, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	identity, err := c.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			_ = bcrypt.CompareHashAndPassword(c.dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredential
		}
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(identity.PasswordHash, []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredential
	}
	return identity, nil
}
