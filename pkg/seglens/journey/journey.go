// Package journey selects top-spending representative customers per segment
// for narrative illustration.
package journey

import (
	"sort"
	"strings"
	"time"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
	"github.com/cognicore/seglens/pkg/seglens/config"
	"github.com/cognicore/seglens/pkg/seglens/identity"
	"github.com/cognicore/seglens/pkg/seglens/review"
	"github.com/cognicore/seglens/pkg/seglens/saleslink"
	"github.com/cognicore/seglens/pkg/seglens/segment"
)

// Journey is one anonymized representative customer within a segment.
type Journey struct {
	AnonymizedID string  `json:"anonymized_id"`
	TotalSpend   float64 `json:"total_spend"`
	OrderLines   int     `json:"order_lines"`

	Categories []catalog.Category `json:"categories"`

	FirstOrder time.Time `json:"first_order"`
	LastOrder  time.Time `json:"last_order"`
	Location   string    `json:"location,omitempty"`

	Quote       string `json:"quote,omitempty"`
	ReviewCount int    `json:"review_count"`

	// ReviewedCategories may differ from purchased Categories.
	ReviewedCategories []catalog.Category `json:"reviewed_categories"`
}

// Select picks the segment's top spenders among reviewers that have an order
// aggregate, sorted descending by net spend, truncated to the journey limit.
func Select(prof *segment.Profile, linker *saleslink.Linker, th config.Thresholds) []Journey {
	byKey := make(map[string][]review.Tagged)
	for _, rev := range prof.Reviews {
		if identity.IsNone(rev.Key) {
			continue
		}
		byKey[rev.Key] = append(byKey[rev.Key], rev)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		if _, ok := linker.Order(key); ok {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := linker.Order(keys[i])
		b, _ := linker.Order(keys[j])
		if a.NetSales != b.NetSales {
			return a.NetSales > b.NetSales
		}
		return keys[i] < keys[j]
	})

	limit := th.JourneyLimit
	if limit <= 0 {
		limit = len(keys)
	}
	if len(keys) > limit {
		keys = keys[:limit]
	}

	journeys := make([]Journey, 0, len(keys))
	for _, key := range keys {
		order, _ := linker.Order(key)
		reviews := byKey[key]

		j := Journey{
			AnonymizedID: Anonymize(key),
			TotalSpend:   segment.Round2(order.NetSales),
			OrderLines:   order.OrderLines,
			Categories:   order.CombinableCategories(),
			FirstOrder:   order.FirstDate,
			LastOrder:    order.LastDate,
			ReviewCount:  len(reviews),
		}
		if profile, ok := linker.Profile(key); ok {
			j.Location = profile.Location()
		}
		j.Quote = segment.Truncate(longestText(reviews), th.QuoteMaxLength)
		j.ReviewedCategories = reviewedCategories(reviews)
		journeys = append(journeys, j)
	}
	return journeys
}

// Anonymize shortens an identity key to a prefix plus its domain suffix,
// e.g. "jam***@example.com".
func Anonymize(key string) string {
	at := strings.LastIndex(key, "@")
	if at <= 0 {
		if len(key) > 3 {
			return key[:3] + "***"
		}
		return key + "***"
	}
	local := key[:at]
	if len(local) > 3 {
		local = local[:3]
	}
	return local + "***@" + identity.Domain(key)
}

// longestText returns the longest review body; longer reviews carry more
// narrative detail.
func longestText(reviews []review.Tagged) string {
	best := ""
	for _, rev := range reviews {
		if len(rev.Text) > len(best) {
			best = rev.Text
		}
	}
	return best
}

func reviewedCategories(reviews []review.Tagged) []catalog.Category {
	seen := make(map[catalog.Category]struct{})
	for _, rev := range reviews {
		if rev.Category != catalog.None {
			seen[rev.Category] = struct{}{}
		}
	}
	var out []catalog.Category
	for _, c := range catalog.Purchasable {
		if _, ok := seen[c]; ok {
			out = append(out, c)
		}
	}
	if _, ok := seen[catalog.Other]; ok {
		out = append(out, catalog.Other)
	}
	return out
}
