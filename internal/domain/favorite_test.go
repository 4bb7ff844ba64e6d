package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteEntryKeepsUnknownFields(t *testing.T) {
	body := `{"id":"1","type":"quote","text":"t","author":"a","category":"c","note":"mine","rating":5}`

	var e FavoriteEntry
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	assert.Equal(t, "1", e.ID)
	assert.Equal(t, ContentQuote, e.Type)
	assert.Equal(t, "a", e.Author)
	assert.JSONEq(t, `"mine"`, string(e.Extra["note"]))
	assert.JSONEq(t, `5`, string(e.Extra["rating"]))

	e.AddedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"1","type":"quote","text":"t","author":"a","category":"c","note":"mine","rating":5,"addedAt":"2024-01-02T03:04:05Z"}`,
		string(out))
}

func TestFavoriteEntryKnownKeysWin(t *testing.T) {
	e := FavoriteEntry{
		ID:    "1",
		Type:  ContentJoke,
		Extra: map[string]json.RawMessage{"id": json.RawMessage(`"spoofed"`)},
	}
	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","type":"joke"}`, string(out))
}

func TestFavoriteEntryRejectsBadInput(t *testing.T) {
	var e FavoriteEntry

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"id":1,"type":"quote"}`), &e), ErrInvalidItem)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"id":"1","type":["quote"]}`), &e), ErrInvalidItem)
	assert.ErrorIs(t, json.Unmarshal([]byte(`null`), &e), ErrMalformedBody)
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &e))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(ErrDuplicateIdentity))
	assert.Equal(t, KindNotFound, KindOf(ErrFavoritesEmpty))
	assert.Equal(t, KindInternal, KindOf(assert.AnError))
	assert.Equal(t, "favorite not found", MessageOf(ErrFavoriteNotFound, "x"))
	assert.Equal(t, "x", MessageOf(ErrEmptyCollection, "x"))
}
