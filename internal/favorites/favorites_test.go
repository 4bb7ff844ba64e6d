package favorites_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/quotewits/internal/domain"
	"github.com/MrSnakeDoc/quotewits/internal/favorites"
	"github.com/MrSnakeDoc/quotewits/internal/store/memory"
)

func TestAddListRemove(t *testing.T) {
	ctx := context.Background()
	s := favorites.New(memory.NewFavorites())

	before := time.Now().UTC()
	added, err := s.Add(ctx, 1, domain.FavoriteEntry{ID: "1", Type: domain.ContentQuote, Text: "t"})
	require.NoError(t, err)
	assert.Equal(t, "1", added.ID)
	assert.False(t, added.AddedAt.Before(before))

	_, err = s.Add(ctx, 1, domain.FavoriteEntry{ID: "1", Type: domain.ContentQuote})
	assert.ErrorIs(t, err, domain.ErrDuplicateFavorite)

	list, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "t", list[0].Text)

	require.NoError(t, s.Remove(ctx, 1, "1"))
	assert.ErrorIs(t, s.Remove(ctx, 1, "1"), domain.ErrFavoritesEmpty)

	list, err = s.List(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestIDIsMatchedVerbatim(t *testing.T) {
	ctx := context.Background()
	s := favorites.New(memory.NewFavorites())

	added, err := s.Add(ctx, 1, domain.FavoriteEntry{ID: " 1 ", Type: domain.ContentQuote})
	require.NoError(t, err)
	assert.Equal(t, " 1 ", added.ID)

	_, err = s.Add(ctx, 1, domain.FavoriteEntry{ID: "1", Type: domain.ContentQuote})
	require.NoError(t, err, "a differently spaced id is a different item")

	require.NoError(t, s.Remove(ctx, 1, " 1 "))
	assert.ErrorIs(t, s.Remove(ctx, 1, " 1 "), domain.ErrFavoriteNotFound)

	list, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)
}

func TestValidate(t *testing.T) {
	big := json.RawMessage(`"` + strings.Repeat("x", domain.MaxExtraValueSize) + `"`)
	tooMany := map[string]json.RawMessage{}
	for i := 0; i <= domain.MaxExtraFields; i++ {
		tooMany[string(rune('a'+i))] = json.RawMessage(`1`)
	}

	tests := []struct {
		name    string
		item    domain.FavoriteEntry
		wantErr bool
	}{
		{"quote", domain.FavoriteEntry{ID: "1", Type: domain.ContentQuote}, false},
		{"joke", domain.FavoriteEntry{ID: "j1", Type: domain.ContentJoke}, false},
		{"missing id", domain.FavoriteEntry{Type: domain.ContentQuote}, true},
		{"blank id", domain.FavoriteEntry{ID: "  ", Type: domain.ContentQuote}, true},
		{"unknown type", domain.FavoriteEntry{ID: "1", Type: "poem"}, true},
		{"missing type", domain.FavoriteEntry{ID: "1"}, true},
		{"too many extra fields", domain.FavoriteEntry{ID: "1", Type: domain.ContentQuote, Extra: tooMany}, true},
		{"extra value too large", domain.FavoriteEntry{ID: "1", Type: domain.ContentQuote, Extra: map[string]json.RawMessage{"note": big}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := favorites.Validate(tt.item)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidItem)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type failingRepo struct{}

func (failingRepo) List(context.Context, int64) ([]domain.FavoriteEntry, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) Insert(context.Context, int64, domain.FavoriteEntry) error {
	return errors.New("connection refused")
}

func (failingRepo) Delete(context.Context, int64, string) error {
	return errors.New("connection refused")
}

func TestRepositoryFailuresAreInternal(t *testing.T) {
	ctx := context.Background()
	s := favorites.New(failingRepo{})

	_, err := s.List(ctx, 1)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))

	_, err = s.Add(ctx, 1, domain.FavoriteEntry{ID: "1", Type: domain.ContentJoke})
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))

	err = s.Remove(ctx, 1, "1")
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	assert.Equal(t, "fallback", domain.MessageOf(err, "fallback"))
}
