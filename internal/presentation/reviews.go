package presentation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/attributes"
	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/Victor-armando18/storefront-engine/internal/money"
)

const maxDisplayedReviews = 10

// ReviewSummary is the display list (newest first, at most ten) plus the mean rating over
// every review that was passed in.
type ReviewSummary struct {
	Reviews []domain.ReviewView
	Average float64
	Count   int
}

func AggregateReviews(raw []domain.Review, now time.Time) ReviewSummary {
	summary := ReviewSummary{Reviews: []domain.ReviewView{}, Count: len(raw)}
	if len(raw) == 0 {
		return summary
	}

	var sum float64
	for _, r := range raw {
		sum += clampRating(r.Rating)
	}
	summary.Average = clampRating(money.RoundTo(sum/float64(len(raw)), 1))

	sorted := make([]domain.Review, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > maxDisplayedReviews {
		sorted = sorted[:maxDisplayedReviews]
	}

	for _, r := range sorted {
		summary.Reviews = append(summary.Reviews, domain.ReviewView{
			ID:           r.ID,
			DisplayName:  displayName(r.UserName, r.UserEmail),
			Rating:       clampRating(r.Rating),
			RelativeDate: relativeDate(r.CreatedAt, now),
			Text:         strings.TrimSpace(r.Comment),
			Images:       nonNil(attributes.StringList(r.Images)),
			Verified:     r.Verified,
		})
	}
	return summary
}

func displayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if local, _, found := strings.Cut(strings.TrimSpace(email), "@"); found && local != "" {
		return local
	}
	return "Anonymous"
}

// relativeDate buckets by calendar day in the clock's location.
func relativeDate(created, now time.Time) string {
	if created.IsZero() {
		return ""
	}
	created = created.In(now.Location())
	cy, cm, cd := created.Date()
	ny, nm, nd := now.Date()
	days := int(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC).
		Sub(time.Date(cy, cm, cd, 0, 0, 0, 0, time.UTC)).Hours() / 24)

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return ago(days/7, "week")
	case days < 365:
		return ago(days/30, "month")
	}
	return created.Format("Jan 2, 2006")
}

func ago(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
