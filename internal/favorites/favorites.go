// Package favorites owns the per-identity collection of saved content.
// It validates items and stamps them; atomicity and per-identity
// serialization are the Repository's job.
package favorites

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

// Repository stores favorite entries keyed by identity ID.
//
// Insert must reject an existing (identity, content ID) pair with
// domain.ErrDuplicateFavorite, atomically with the write. Delete returns
// domain.ErrFavoritesEmpty when the identity has nothing saved and
// domain.ErrFavoriteNotFound when the ID is absent.
type Repository interface {
	List(ctx context.Context, identityID int64) ([]domain.FavoriteEntry, error)
	Insert(ctx context.Context, identityID int64, entry domain.FavoriteEntry) error
	Delete(ctx context.Context, identityID int64, itemID string) error
}

// Store is the favorites component used by the HTTP layer.
type Store struct {
	repo Repository
	now  func() time.Time
}

// New wraps repo.
func New(repo Repository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// List returns the identity's favorites in insertion order, never nil.
func (s *Store) List(ctx context.Context, identityID int64) ([]domain.FavoriteEntry, error) {
	entries, err := s.repo.List(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if entries == nil {
		entries = []domain.FavoriteEntry{}
	}
	return entries, nil
}

// Add validates item, stamps it with the server time and stores it.
// The ID is stored exactly as sent; Remove matches it the same way.
func (s *Store) Add(ctx context.Context, identityID int64, item domain.FavoriteEntry) (domain.FavoriteEntry, error) {
	if err := Validate(item); err != nil {
		return domain.FavoriteEntry{}, err
	}

	item.AddedAt = s.now().UTC()
	if err := s.repo.Insert(ctx, identityID, item); err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			return domain.FavoriteEntry{}, err
		}
		return domain.FavoriteEntry{}, fmt.Errorf("failed to add favorite: %w", err)
	}
	return item, nil
}

// Remove deletes the entry with itemID from the identity's favorites.
func (s *Store) Remove(ctx context.Context, identityID int64, itemID string) error {
	if err := s.repo.Delete(ctx, identityID, itemID); err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return err
		}
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// Validate checks the known fields and the bounds of the extension map.
func Validate(item domain.FavoriteEntry) error {
	if strings.TrimSpace(item.ID) == "" || !item.Type.Valid() {
		return domain.ErrInvalidItem
	}
	if len(item.Extra) > domain.MaxExtraFields {
		return domain.ErrInvalidItem
	}
	for _, v := range item.Extra {
		if len(v) > domain.MaxExtraValueSize {
			return domain.ErrInvalidItem
		}
	}
	return nil
}
