package redis

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// KeyUsers is the hash of username -> identity record
	KeyUsers = "quotewits:users"
	// KeyUserSeq is the counter used to assign identity IDs
	KeyUserSeq = "quotewits:users:seq"
	// KeyPrefixFavorites is the prefix for per-identity favorites hashes
	KeyPrefixFavorites = "quotewits:favorites:"

	favoritesSeqSuffix = ":seq"
)

// FavoritesKey returns the hash holding the favorites of one identity
func FavoritesKey(identityID int64) string {
	return KeyPrefixFavorites + strconv.FormatInt(identityID, 10)
}

// FavoritesSeqKey returns the counter that orders the favorites of one identity
func FavoritesSeqKey(identityID int64) string {
	return FavoritesKey(identityID) + favoritesSeqSuffix
}

// ExtractIdentityID extracts the identity ID from a favorites key
func ExtractIdentityID(key string) (int64, error) {
	if !strings.HasPrefix(key, KeyPrefixFavorites) || strings.HasSuffix(key, favoritesSeqSuffix) {
		return 0, fmt.Errorf("invalid favorites key: %s", key)
	}
	id, err := strconv.ParseInt(key[len(KeyPrefixFavorites):], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid favorites key: %s", key)
	}
	return id, nil
}
