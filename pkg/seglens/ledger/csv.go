package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/seglens/pkg/seglens/internalerr"
)

// Column aliases map lowercase header names to logical fields, so exports
// from different source systems resolve without per-system code.
var orderAliases = map[string]string{
	"email":          "email",
	"customer email": "email",
	"customer_email": "email",

	"product":        "product",
	"product_type":   "product",
	"product type":   "product",
	"product_handle": "product",
	"product handle": "product",
	"handle":         "product",
	"lineitem name":  "product",
	"lineitem_name":  "product",

	"quantity":          "quantity",
	"qty":               "quantity",
	"lineitem quantity": "quantity",

	"net_amount": "net",
	"net amount": "net",
	"net sales":  "net",
	"subtotal":   "net",

	"gross_amount": "gross",
	"gross amount": "gross",
	"total sales":  "gross",
	"total":        "gross",

	"date":         "date",
	"day":          "date",
	"created_at":   "date",
	"created at":   "date",
	"processed at": "date",

	"discount_code": "discount",
	"discount code": "discount",
	"coupon":        "discount",
}

var profileAliases = map[string]string{
	"email":          "email",
	"customer email": "email",
	"customer_email": "email",

	"city": "city",

	"region":   "region",
	"province": "region",
	"state":    "region",

	"country":      "country",
	"country code": "country",
	"country_code": "country",

	"net_sales":   "net",
	"net sales":   "net",
	"total spent": "net",
	"total_spent": "net",

	"gross_sales": "gross",
	"gross sales": "gross",

	"orders":       "orders",
	"order count":  "orders",
	"order_count":  "orders",
	"total orders": "orders",

	"date":            "date",
	"updated_at":      "date",
	"updated at":      "date",
	"last order date": "date",
	"last_order_date": "date",
}

// columnIndex resolves a header row against an alias table.
func columnIndex(header []string, aliases map[string]string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.Trim(strings.ToLower(strings.TrimSpace(h)), "\"'")
		if field, ok := aliases[name]; ok {
			if _, taken := idx[field]; !taken {
				idx[field] = i
			}
		}
	}
	return idx
}

// csvSource is the shared streaming CSV machinery. It holds only the current
// row: the window of in-flight records is one.
type csvSource struct {
	reader  *csv.Reader
	idx     map[string]int
	rows    int64
	skipped int64
}

func newCSVSource(r io.Reader, aliases map[string]string, required string) (*csvSource, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty source: %w", internalerr.ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := columnIndex(header, aliases)
	if _, ok := idx[required]; !ok {
		return nil, fmt.Errorf("no %s column in header %v: %w", required, header, internalerr.ErrSourceUnavailable)
	}
	return &csvSource{reader: reader, idx: idx}, nil
}

// nextRow returns the next raw row, skipping rows the csv parser rejects.
func (s *csvSource) nextRow() ([]string, bool) {
	for {
		row, err := s.reader.Read()
		if err == io.EOF {
			return nil, false
		}
		if err != nil {
			s.skipped++
			continue
		}
		s.rows++
		return row, true
	}
}

func (s *csvSource) field(row []string, name string) string {
	i, ok := s.idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Rows returns how many rows have been yielded so far.
func (s *csvSource) Rows() int64 { return s.rows }

// Skipped returns how many rows the parser rejected.
func (s *csvSource) Skipped() int64 { return s.skipped }

// CSVOrderSource streams order records from a CSV export.
type CSVOrderSource struct {
	*csvSource
}

// NewCSVOrderSource wraps a reader. The header must contain an email column.
func NewCSVOrderSource(r io.Reader) (*CSVOrderSource, error) {
	src, err := newCSVSource(r, orderAliases, "email")
	if err != nil {
		return nil, err
	}
	return &CSVOrderSource{csvSource: src}, nil
}

// Next yields the next order record.
func (s *CSVOrderSource) Next() (OrderRecord, bool, error) {
	row, ok := s.nextRow()
	if !ok {
		return OrderRecord{}, false, nil
	}
	rec := OrderRecord{
		Email:        s.field(row, "email"),
		ProductRaw:   s.field(row, "product"),
		Quantity:     parseInt(s.field(row, "quantity")),
		NetAmount:    parseMoney(s.field(row, "net")),
		GrossAmount:  parseMoney(s.field(row, "gross")),
		Date:         parseDate(s.field(row, "date")),
		DiscountCode: s.field(row, "discount"),
	}
	return rec, true, nil
}

// CSVProfileSource streams profile records from a CSV export.
type CSVProfileSource struct {
	*csvSource
}

// NewCSVProfileSource wraps a reader. The header must contain an email column.
func NewCSVProfileSource(r io.Reader) (*CSVProfileSource, error) {
	src, err := newCSVSource(r, profileAliases, "email")
	if err != nil {
		return nil, err
	}
	return &CSVProfileSource{csvSource: src}, nil
}

// Next yields the next profile record.
func (s *CSVProfileSource) Next() (ProfileRecord, bool, error) {
	row, ok := s.nextRow()
	if !ok {
		return ProfileRecord{}, false, nil
	}
	rec := ProfileRecord{
		Email:      s.field(row, "email"),
		City:       s.field(row, "city"),
		Region:     s.field(row, "region"),
		Country:    s.field(row, "country"),
		NetSales:   parseMoney(s.field(row, "net")),
		GrossSales: parseMoney(s.field(row, "gross")),
		Orders:     parseInt(s.field(row, "orders")),
		Date:       parseDate(s.field(row, "date")),
	}
	return rec, true, nil
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	// Quantities exported through spreadsheets arrive as "2.0".
	if i := strings.Index(raw, "."); i > 0 {
		raw = raw[:i]
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func parseMoney(raw string) float64 {
	if raw == "" {
		return 0
	}
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "$"))
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 -0700",
	"01/02/2006",
}

func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// stripBOM wraps a reader to strip a UTF-8 BOM if present.
func stripBOM(r io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, err := r.Read(buf)
	if err != nil || n < 3 {
		return io.MultiReader(strings.NewReader(string(buf[:n])), r)
	}
	if buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF {
		return r
	}
	return io.MultiReader(strings.NewReader(string(buf[:n])), r)
}
