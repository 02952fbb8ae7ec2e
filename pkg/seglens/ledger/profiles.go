package ledger

import (
	"time"

	"github.com/cognicore/seglens/pkg/seglens/identity"
)

// ProfileAggregate is the running per-identity fold of the profile ledger.
type ProfileAggregate struct {
	Key        string
	City       string
	Region     string
	Country    string
	FirstOrder time.Time
	NetSales   float64
	GrossSales float64
	Orders     int

	// lastSeen is the recency tie-break for location overwrites.
	lastSeen time.Time
}

// ProfileAggregator folds profile records into per-identity aggregates.
type ProfileAggregator struct {
	byKey    map[string]*ProfileAggregate
	counters Counters
}

// NewProfileAggregator creates an empty profile aggregator.
func NewProfileAggregator() *ProfileAggregator {
	return &ProfileAggregator{byKey: make(map[string]*ProfileAggregate)}
}

// Fold applies one record. Only rows without a usable identity are skipped;
// location fields are overwritten when the record is at least as recent as
// the last one seen for the key.
func (g *ProfileAggregator) Fold(rec ProfileRecord) {
	g.counters.RowsSeen++

	key := identity.Normalize(rec.Email)
	if identity.IsNone(key) {
		g.counters.RowsSkipped++
		return
	}

	agg, ok := g.byKey[key]
	if !ok {
		agg = &ProfileAggregate{Key: key}
		g.byKey[key] = agg
	}

	agg.NetSales += rec.NetSales
	agg.GrossSales += rec.GrossSales
	agg.Orders += rec.Orders

	if !rec.Date.IsZero() {
		if agg.FirstOrder.IsZero() || rec.Date.Before(agg.FirstOrder) {
			agg.FirstOrder = rec.Date
		}
		if agg.lastSeen.IsZero() || !rec.Date.Before(agg.lastSeen) {
			agg.lastSeen = rec.Date
			setLocation(agg, rec)
		}
	} else if agg.lastSeen.IsZero() {
		setLocation(agg, rec)
	}

	g.counters.RowsFolded++
}

func setLocation(agg *ProfileAggregate, rec ProfileRecord) {
	if rec.City != "" {
		agg.City = rec.City
	}
	if rec.Region != "" {
		agg.Region = rec.Region
	}
	if rec.Country != "" {
		agg.Country = rec.Country
	}
}

// Location returns the best-available human-readable location string.
func (a *ProfileAggregate) Location() string {
	switch {
	case a.City != "" && a.Region != "":
		return a.City + ", " + a.Region
	case a.City != "" && a.Country != "":
		return a.City + ", " + a.Country
	case a.City != "":
		return a.City
	case a.Region != "":
		return a.Region
	case a.Country != "":
		return a.Country
	default:
		return ""
	}
}

// Consume drains a source through Fold, one record at a time.
func (g *ProfileAggregator) Consume(src ProfileSource) error {
	for {
		rec, ok, err := src.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		g.Fold(rec)
	}
}

// Get looks up the aggregate for an identity key.
func (g *ProfileAggregator) Get(key string) (*ProfileAggregate, bool) {
	agg, ok := g.byKey[key]
	return agg, ok
}

// Aggregates returns the key→aggregate map, read-only after hand-off.
func (g *ProfileAggregator) Aggregates() map[string]*ProfileAggregate {
	return g.byKey
}

// Counters returns the running row counts.
func (g *ProfileAggregator) Counters() Counters {
	return g.counters
}
