// Package review loads the bounded review set and tags each review against
// the fixed pattern tables.
//
// Unlike the ledgers, reviews are materialized fully in memory: downstream
// stages (grouping, pairwise overlap, top-N ranking) need repeated random
// access that streaming cannot provide. The set is assumed to stay bounded.
package review

import (
	"time"

	"github.com/cognicore/seglens/pkg/seglens/catalog"
)

// Review is one free-text product review before tagging.
type Review struct {
	Email       string
	DisplayName string
	Text        string
	Rating      int
	Date        time.Time
	Verified    bool
	ProductRaw  string
}

// Tagged is a review after classification. Immutable once produced.
type Tagged struct {
	// Key is the normalized identity, or the sentinel when absent.
	Key         string
	DisplayName string
	Text        string
	Rating      int
	Date        time.Time
	Verified    bool
	Category    catalog.Category

	IdentitySegments   []string
	MotivationSegments []string
	Pains              []string
	Benefits           []string
	Transformations    []string
}
