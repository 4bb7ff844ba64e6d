package memory

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

// bucket holds the favorites of one identity.
// Every mutation for that identity goes through mu.
type bucket struct {
	mu      sync.Mutex
	entries []domain.FavoriteEntry // insertion order
	ids     map[string]struct{}    // content IDs present in entries
}

// Favorites is the in-process favorites repository.
// Buckets are created on the first add and never pre-allocated.
type Favorites struct {
	mu      sync.RWMutex
	buckets map[int64]*bucket // identity ID -> bucket
}

// NewFavorites creates an empty favorites repository.
func NewFavorites() *Favorites {
	return &Favorites{
		buckets: make(map[int64]*bucket),
	}
}

func (s *Favorites) lookup(identityID int64) *bucket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.buckets[identityID]
}

func (s *Favorites) getOrCreate(identityID int64) *bucket {
	if b := s.lookup(identityID); b != nil {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.buckets[identityID]
	if b == nil {
		b = &bucket{ids: make(map[string]struct{})}
		s.buckets[identityID] = b
	}
	return b
}

// List returns a snapshot of the identity's favorites. Unknown identities
// get an empty slice.
func (s *Favorites) List(ctx context.Context, identityID int64) ([]domain.FavoriteEntry, error) {
	b := s.lookup(identityID)
	if b == nil {
		return []domain.FavoriteEntry{}, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.FavoriteEntry, len(b.entries))
	copy(out, b.entries)
	return out, nil
}

// Insert adds entry unless its content ID is already saved for the identity.
func (s *Favorites) Insert(ctx context.Context, identityID int64, entry domain.FavoriteEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := s.getOrCreate(identityID)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.ids[entry.ID]; exists {
		return domain.ErrDuplicateFavorite
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.entries = append(b.entries, entry)
	b.ids[entry.ID] = struct{}{}
	return nil
}

// Delete removes exactly one entry.
func (s *Favorites) Delete(ctx context.Context, identityID int64, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := s.lookup(identityID)
	if b == nil {
		return domain.ErrFavoritesEmpty
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == 0 {
		return domain.ErrFavoritesEmpty
	}
	if _, exists := b.ids[itemID]; !exists {
		return domain.ErrFavoriteNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	kept := make([]domain.FavoriteEntry, 0, len(b.entries)-1)
	for _, e := range b.entries {
		if e.ID != itemID {
			kept = append(kept, e)
		}
	}
	b.entries = kept
	delete(b.ids, itemID)
	return nil
}

// Identities returns how many identities have saved at least once.
func (s *Favorites) Identities(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.buckets)), nil
}
