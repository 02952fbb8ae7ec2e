// Package seglens is the batch analytics facade. One Run folds the order and
// profile ledgers, tags the review set against the pattern tables, and
// assembles the complete report artifact.
package seglens

import (
	"context"
	"fmt"
	"time"

	"github.com/cognicore/seglens/pkg/seglens/affinity"
	"github.com/cognicore/seglens/pkg/seglens/basket"
	"github.com/cognicore/seglens/pkg/seglens/config"
	"github.com/cognicore/seglens/pkg/seglens/journey"
	"github.com/cognicore/seglens/pkg/seglens/ledger"
	"github.com/cognicore/seglens/pkg/seglens/overlap"
	"github.com/cognicore/seglens/pkg/seglens/report"
	"github.com/cognicore/seglens/pkg/seglens/review"
	"github.com/cognicore/seglens/pkg/seglens/saleslink"
	"github.com/cognicore/seglens/pkg/seglens/segment"
)

// Sources are the three inputs of one batch run. Ledger sources are streamed
// and may be nil; the review set is bounded and fully materialized.
type Sources struct {
	Orders   ledger.OrderSource
	Profiles ledger.ProfileSource
	Reviews  []review.Review
}

// Pipeline runs the analysis stages in fixed order over a configuration.
type Pipeline struct {
	comp *config.Components
}

// New creates a pipeline over loaded configuration components.
func New(comp *config.Components) *Pipeline {
	return &Pipeline{comp: comp}
}

// Run executes one batch pass and returns the report artifact. The context is
// checked between stages; ledger streaming aborts mid-source on error.
func (p *Pipeline) Run(ctx context.Context, src Sources) (*report.Report, error) {
	rep := report.New(time.Now().UTC())

	orders := ledger.NewOrderAggregator()
	if src.Orders != nil {
		if err := orders.Consume(src.Orders); err != nil {
			return nil, fmt.Errorf("consume order ledger: %w", err)
		}
	}
	rep.Counters.Orders = orders.Counters()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profiles := ledger.NewProfileAggregator()
	if src.Profiles != nil {
		if err := profiles.Consume(src.Profiles); err != nil {
			return nil, fmt.Errorf("consume profile ledger: %w", err)
		}
	}
	rep.Counters.Profiles = profiles.Counters()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tagger := review.NewTagger(p.comp.Tables)
	tagged := tagger.TagAll(src.Reviews)
	rep.Counters.ReviewsLoaded = len(src.Reviews)
	rep.Counters.ReviewsTagged = len(tagged)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	linker := saleslink.NewLinker(orders.Aggregates(), profiles.Aggregates())
	th := p.comp.Thresholds

	rep.Segments = segment.NewBuilder(p.comp.Tables, th).Build(tagged, linker)
	rep.Overlaps = overlap.Analyze(tagged, p.comp.Tables, linker)
	rep.Affinity = affinity.Analyze(tagged, rep.Segments, th)
	rep.Basket = basket.Build(orders.Aggregates())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep.Journeys = make(map[string][]journey.Journey)
	for _, prof := range rep.Segments {
		if js := journey.Select(prof, linker, th); len(js) > 0 {
			rep.Journeys[prof.Label] = js
		}
	}

	return rep, nil
}
