package segment

import (
	"sort"
	"strings"

	"github.com/cognicore/seglens/pkg/seglens/config"
	"github.com/cognicore/seglens/pkg/seglens/review"
)

// Round1 rounds half-up on the tenths digit. Reported values are non-negative.
func Round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

// Round2 rounds half-up on the hundredths digit, for ratio multipliers.
func Round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// RatingStats computes the average rating (over positive ratings only) and
// the five-star share. Zero/absent ratings count toward totals elsewhere but
// are excluded from both figures here.
func RatingStats(reviews []review.Tagged) (avg, fiveStarShare float64) {
	var sum, rated, fiveStar int
	for _, rev := range reviews {
		if rev.Rating <= 0 {
			continue
		}
		rated++
		sum += rev.Rating
		if rev.Rating == 5 {
			fiveStar++
		}
	}
	if rated == 0 {
		return 0, 0
	}
	avg = Round2(float64(sum) / float64(rated))
	fiveStarShare = Round1(100 * float64(fiveStar) / float64(rated))
	return avg, fiveStarShare
}

// SelectQuotes picks representative quotes: reviews at or above the minimum
// length, highest-rated first, longer text breaking ties (longer, higher
// rated reviews read as more informative). Quotes over the display length are
// truncated with a marker.
func SelectQuotes(reviews []review.Tagged, th config.Thresholds) []string {
	var candidates []review.Tagged
	for _, rev := range reviews {
		if len(rev.Text) >= th.QuoteMinLength {
			candidates = append(candidates, rev)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Rating != candidates[j].Rating {
			return candidates[i].Rating > candidates[j].Rating
		}
		return len(candidates[i].Text) > len(candidates[j].Text)
	})

	limit := th.QuoteLimit
	if limit <= 0 {
		limit = len(candidates)
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	quotes := make([]string, 0, len(candidates))
	for _, rev := range candidates {
		quotes = append(quotes, Truncate(rev.Text, th.QuoteMaxLength))
	}
	return quotes
}

// Truncate cuts text beyond max display length, appending an ellipsis marker.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	return strings.TrimSpace(text[:max]) + "..."
}
