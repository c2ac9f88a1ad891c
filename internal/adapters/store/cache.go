package store

import (
	"slices"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// RecommendationCache memoizes ranking results per snapshot date and the
// profile fields that drive ranking. Entries never carry a caller's profile.
type RecommendationCache struct {
	c *cache.Cache
}

// ranking is the profile-independent part of a Recommendation.
type ranking struct {
	allowed entities.CategorySet
	funds   []entities.RankedFund
	outcome entities.Outcome
}

// NewRecommendationCache creates a cache whose entries expire after ttl.
// A non-positive ttl keeps entries until Flush.
func NewRecommendationCache(ttl time.Duration) *RecommendationCache {
	if ttl <= 0 {
		return &RecommendationCache{c: cache.New(cache.NoExpiration, 0)}
	}
	return &RecommendationCache{c: cache.New(ttl, 2*ttl)}
}

func cacheKey(date time.Time, p entities.UserProfile) string {
	return date.Format("2006-01-02") + "|" + p.Key()
}

// Get returns the cached ranking for p, rebuilt around p itself.
func (rc *RecommendationCache) Get(date time.Time, p entities.UserProfile) (*entities.Recommendation, bool) {
	v, ok := rc.c.Get(cacheKey(date, p))
	if !ok {
		return nil, false
	}
	r, ok := v.(ranking)
	if !ok {
		return nil, false
	}
	return &entities.Recommendation{
		Profile: p,
		Allowed: r.allowed,
		Funds:   slices.Clone(r.funds),
		Outcome: r.outcome,
	}, true
}

// Set stores the ranking part of rec under its profile's key.
func (rc *RecommendationCache) Set(date time.Time, rec *entities.Recommendation) {
	rc.c.SetDefault(cacheKey(date, rec.Profile), ranking{
		allowed: rec.Allowed,
		funds:   slices.Clone(rec.Funds),
		outcome: rec.Outcome,
	})
}

// Flush drops every entry, e.g. after a new snapshot is loaded.
func (rc *RecommendationCache) Flush() {
	rc.c.Flush()
}

// Len returns the number of cached entries.
func (rc *RecommendationCache) Len() int {
	return rc.c.ItemCount()
}
