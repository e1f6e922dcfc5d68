package cache

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
)

// MaxTTL bounds how long a derived page may be served without re-derivation.
const MaxTTL = 24 * time.Hour

// Key identifies a derived page by product, product revision, category set, review
// revision and calendar day. Relative review dates change at midnight, so a page never
// outlives the day it was derived on.
func Key(product domain.Product, categories []domain.Category, reviews []domain.Review, day time.Time) string {
	slugs := make([]string, 0, len(categories))
	for _, c := range categories {
		slugs = append(slugs, strings.ToLower(strings.TrimSpace(c.Slug)))
	}
	sort.Strings(slugs)

	var latest time.Time
	for _, r := range reviews {
		if r.CreatedAt.After(latest) {
			latest = r.CreatedAt
		}
	}
	return fmt.Sprintf("pdp:%s:%d:%s:%d.%d:%s",
		product.ID, product.UpdatedAt.UnixNano(), strings.Join(slugs, ","), len(reviews), latest.UnixNano(),
		day.Format("20060102"))
}

func clampTTL(ttl, fallback time.Duration) time.Duration {
	if ttl <= 0 {
		ttl = fallback
	}
	if ttl <= 0 || ttl > MaxTTL {
		ttl = MaxTTL
	}
	return ttl
}
