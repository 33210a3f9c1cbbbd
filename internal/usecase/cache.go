package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"jobconnect/internal/domain/matching"
)

// Cache is the JSON cache in front of the feed and recommendations. A
// cache that cannot reach its server reports misses and accepts writes.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const (
	feedCacheKey             = "posts:feed"
	recommendationsKeyPrefix = "jobs:recommended:"

	feedCacheTTL            = 30 * time.Second
	recommendationsCacheTTL = 10 * time.Minute
)

// RecommendationsCacheKey keys a user's recommendations by the skills they
// were computed from, so a profile edit never serves a stale list.
func RecommendationsCacheKey(userID int64, skills string) string {
	norm := strings.Join(matching.ParseSkills(skills), ",")
	sum := sha256.Sum256([]byte(norm))
	return recommendationsKeyPrefix + strconv.FormatInt(userID, 10) + ":" + hex.EncodeToString(sum[:8])
}

func recommendationsPattern() string {
	return recommendationsKeyPrefix + "*"
}
