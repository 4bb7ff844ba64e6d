package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

// favoriteRecord wraps an entry with its insertion sequence number, since
// hash fields come back unordered.
type favoriteRecord struct {
	Seq   int64                `json:"seq"`
	Entry domain.FavoriteEntry `json:"entry"`
}

// Favorites keeps one hash per identity: content ID -> favoriteRecord
type Favorites struct {
	client *redis.Client
}

// List returns the identity's favorites in insertion order
func (f *Favorites) List(ctx context.Context, identityID int64) ([]domain.FavoriteEntry, error) {
	fields, err := f.client.HGetAll(ctx, FavoritesKey(identityID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	records := make([]favoriteRecord, 0, len(fields))
	for id, raw := range fields {
		var rec favoriteRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal favorite %s: %w", id, err)
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Seq != records[j].Seq {
			return records[i].Seq < records[j].Seq
		}
		return records[i].Entry.ID < records[j].Entry.ID
	})

	entries := make([]domain.FavoriteEntry, len(records))
	for i, rec := range records {
		entries[i] = rec.Entry
	}
	return entries, nil
}

// Insert stores entry with HSETNX, rejecting an existing content ID
func (f *Favorites) Insert(ctx context.Context, identityID int64, entry domain.FavoriteEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := FavoritesKey(identityID)
	exists, err := f.client.HExists(ctx, key, entry.ID).Result()
	if err != nil {
		return fmt.Errorf("failed to check favorite: %w", err)
	}
	if exists {
		return domain.ErrDuplicateFavorite
	}

	seq, err := f.client.Incr(ctx, FavoritesSeqKey(identityID)).Result()
	if err != nil {
		return fmt.Errorf("failed to order favorite: %w", err)
	}
	data, err := json.Marshal(favoriteRecord{Seq: seq, Entry: entry})
	if err != nil {
		return fmt.Errorf("failed to marshal favorite: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	created, err := f.client.HSetNX(ctx, key, entry.ID, data).Result()
	if err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	if !created {
		return domain.ErrDuplicateFavorite
	}
	return nil
}

// Delete removes one entry with HDEL
func (f *Favorites) Delete(ctx context.Context, identityID int64, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := FavoritesKey(identityID)
	removed, err := f.client.HDel(ctx, key, itemID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if removed > 0 {
		return nil
	}

	left, err := f.client.HLen(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to count favorites: %w", err)
	}
	if left == 0 {
		return domain.ErrFavoritesEmpty
	}
	return domain.ErrFavoriteNotFound
}

// Identities returns how many identities currently have favorites
func (f *Favorites) Identities(ctx context.Context) (int64, error) {
	var count int64
	iter := f.client.Scan(ctx, 0, KeyPrefixFavorites+"*", 0).Iterator()
	for iter.Next(ctx) {
		if _, err := ExtractIdentityID(iter.Val()); err == nil {
			count++
		}
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan favorites: %w", err)
	}
	return count, nil
}
