package review

import (
	"strings"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
	"github.com/cognicore/seglens/pkg/seglens/identity"
	"github.com/cognicore/seglens/pkg/seglens/patterns"
)

// Tagger classifies reviews against the pattern tables. Tagging is pure:
// identical text always yields an identical label set, regardless of what was
// tagged before or after.
type Tagger struct {
	tables *patterns.Tables
}

// NewTagger creates a tagger over the given tables.
func NewTagger(tables *patterns.Tables) *Tagger {
	return &Tagger{tables: tables}
}

// Tag classifies one review. Every pattern in every set is evaluated
// independently; a review may match any number of labels across all five
// sets, in both segment layers at once.
func (t *Tagger) Tag(rev Review) Tagged {
	lower := strings.ToLower(rev.Text)
	return Tagged{
		Key:         identity.Normalize(rev.Email),
		DisplayName: rev.DisplayName,
		Text:        rev.Text,
		Rating:      rev.Rating,
		Date:        rev.Date,
		Verified:    rev.Verified,
		Category:    catalog.Map(rev.ProductRaw),

		IdentitySegments:   t.tables.Identity.MatchLower(lower),
		MotivationSegments: t.tables.Motivation.MatchLower(lower),
		Pains:              t.tables.Pains.MatchLower(lower),
		Benefits:           t.tables.Benefits.MatchLower(lower),
		Transformations:    t.tables.Transformations.MatchLower(lower),
	}
}

// TagAll classifies a review slice, skipping empty-bodied reviews.
func (t *Tagger) TagAll(revs []Review) []Tagged {
	out := make([]Tagged, 0, len(revs))
	for _, rev := range revs {
		if strings.TrimSpace(rev.Text) == "" {
			continue
		}
		out = append(out, t.Tag(rev))
	}
	return out
}
