// Package report assembles the single structured artifact the pipeline hands
// to external serializers.
package report

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/seglens/pkg/seglens/affinity"
	"github.com/cognicore/seglens/pkg/seglens/basket"
	"github.com/cognicore/seglens/pkg/seglens/catalog"
	"github.com/cognicore/seglens/pkg/seglens/journey"
	"github.com/cognicore/seglens/pkg/seglens/ledger"
	"github.com/cognicore/seglens/pkg/seglens/overlap"
	"github.com/cognicore/seglens/pkg/seglens/segment"
)

// Counters collects the per-source observability counts for one run.
type Counters struct {
	Orders   ledger.Counters `json:"orders"`
	Profiles ledger.Counters `json:"profiles"`

	ReviewsLoaded int `json:"reviews_loaded"`
	ReviewsTagged int `json:"reviews_tagged"`
}

// Report is the complete analytical artifact of one pipeline run.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Counters    Counters  `json:"counters"`

	Segments []*segment.Profile                   `json:"segments"`
	Overlaps []*overlap.Record                    `json:"overlaps"`
	Affinity map[catalog.Category][]affinity.Entry `json:"affinity"`
	Basket   *basket.Matrix                       `json:"basket"`

	// Journeys is keyed by segment label.
	Journeys map[string][]journey.Journey `json:"journeys"`
}

// New creates an empty report stamped with a fresh run ID.
func New(now time.Time) *Report {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return &Report{
		RunID:       ulid.MustNew(ulid.Timestamp(now), entropy).String(),
		GeneratedAt: now,
	}
}
