package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"career-match/internal/infrastructure/cache"
)

type jobSearchCacheKeyInput struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func normalizeSearchValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// JobsSearchCacheKey is stable for queries that differ only in case and
// spacing.
func JobsSearchCacheKey(params JobSearchParams) string {
	in := jobSearchCacheKeyInput{
		Query: normalizeSearchValue(params.Query),
		Limit: params.Limit,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return cache.SearchKeyPrefix + hex.EncodeToString(sum[:])
}

func JobsSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	return cache.SearchLockPrefix + strings.TrimPrefix(searchKey, cache.SearchKeyPrefix)
}

// SearchCache is the best-effort store behind job search. Implementations
// report misses rather than errors when the backend is unreachable.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}
