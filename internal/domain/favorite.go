package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Bounds on the free-form part of a favorite.
const (
	MaxExtraFields    = 16
	MaxExtraValueSize = 1 << 10
)

// FavoriteEntry is a content reference saved by one identity.
//
// The known fields are typed. Anything else the client sent is kept in Extra
// and written back flat next to the known fields. Known keys always win over
// Extra keys of the same name.
type FavoriteEntry struct {
	ID       string
	Type     ContentType
	Text     string
	Author   string
	Category string
	Extra    map[string]json.RawMessage
	AddedAt  time.Time
}

var knownFavoriteKeys = map[string]struct{}{
	"id": {}, "type": {}, "text": {}, "author": {}, "category": {}, "addedAt": {},
}

// MarshalJSON writes the entry as one flat JSON object.
func (f FavoriteEntry) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Extra)+6)
	for k, v := range f.Extra {
		if _, known := knownFavoriteKeys[k]; known {
			continue
		}
		out[k] = v
	}
	out["id"] = f.ID
	out["type"] = f.Type
	if f.Text != "" {
		out["text"] = f.Text
	}
	if f.Author != "" {
		out["author"] = f.Author
	}
	if f.Category != "" {
		out["category"] = f.Category
	}
	if !f.AddedAt.IsZero() {
		out["addedAt"] = f.AddedAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat JSON object. Known keys must hold strings,
// otherwise ErrInvalidItem is returned.
func (f *FavoriteEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return ErrMalformedBody
	}

	var entry FavoriteEntry
	var typ string
	fields := []struct {
		key string
		dst *string
	}{
		{"id", &entry.ID},
		{"type", &typ},
		{"text", &entry.Text},
		{"author", &entry.Author},
		{"category", &entry.Category},
	}
	for _, fld := range fields {
		v, ok := raw[fld.key]
		if !ok || isJSONNull(v) {
			continue
		}
		if err := json.Unmarshal(v, fld.dst); err != nil {
			return ErrInvalidItem
		}
	}
	entry.Type = ContentType(typ)

	if v, ok := raw["addedAt"]; ok && !isJSONNull(v) {
		// A client-supplied timestamp is ignored on add; stored entries carry a valid one.
		_ = json.Unmarshal(v, &entry.AddedAt)
	}

	for k, v := range raw {
		if _, known := knownFavoriteKeys[k]; known {
			continue
		}
		if entry.Extra == nil {
			entry.Extra = make(map[string]json.RawMessage)
		}
		entry.Extra[k] = v
	}

	*f = entry
	return nil
}

func isJSONNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
