// Package ledger streams the two large row-oriented sources (order lines,
// customer profiles) and folds them into per-identity aggregates. Memory is
// O(distinct identities), never O(rows): records are processed strictly
// left-to-right and never buffered beyond the current row.
package ledger

import "time"

// OrderRecord is one order line from the sales ledger.
type OrderRecord struct {
	Email        string
	ProductRaw   string
	Quantity     int
	NetAmount    float64
	GrossAmount  float64
	Date         time.Time
	DiscountCode string
}

// ProfileRecord is one row from the customer profile ledger.
type ProfileRecord struct {
	Email      string
	City       string
	Region     string
	Country    string
	NetSales   float64
	GrossSales float64
	Orders     int
	Date       time.Time
}

// OrderSource yields order records one at a time. ok=false signals exhaustion.
type OrderSource interface {
	Next() (rec OrderRecord, ok bool, err error)
}

// ProfileSource yields profile records one at a time.
type ProfileSource interface {
	Next() (rec ProfileRecord, ok bool, err error)
}

// Counters exposes running aggregation counts for observability.
type Counters struct {
	RowsSeen    int64
	RowsSkipped int64
	RowsFolded  int64
}
