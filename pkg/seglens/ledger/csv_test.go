package ledger

import (
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/seglens/pkg/seglens/internalerr"
)

func drainOrders(t *testing.T, src *CSVOrderSource) []OrderRecord {
	t.Helper()
	var out []OrderRecord
	for {
		rec, ok, err := src.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			return out
		}
		out = append(out, rec)
	}
}

func TestCSVOrderSource(t *testing.T) {
	data := `Email,Lineitem name,Lineitem quantity,Net Sales,Total Sales,Day,Discount Code
a@x.com,classic-clog,1,"$1,010.50",1212.60,2024-01-05,SAVE10
b@y.com,everyday-sneaker,2,20,24,2024-02-01,
`
	src, err := NewCSVOrderSource(strings.NewReader(data))
	if err != nil {
		t.Fatalf("NewCSVOrderSource: %v", err)
	}

	recs := drainOrders(t, src)
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	first := recs[0]
	if first.Email != "a@x.com" || first.ProductRaw != "classic-clog" {
		t.Errorf("first record = %+v", first)
	}
	if first.NetAmount != 1010.50 {
		t.Errorf("NetAmount = %v, want 1010.50", first.NetAmount)
	}
	if first.Quantity != 1 || first.DiscountCode != "SAVE10" {
		t.Errorf("first record = %+v", first)
	}
	if first.Date.IsZero() {
		t.Error("date not parsed")
	}
	if src.Rows() != 2 {
		t.Errorf("Rows = %d", src.Rows())
	}
}

func TestCSVOrderSourceBOMAndAliases(t *testing.T) {
	data := "\xEF\xBB\xBFcustomer_email,product_type,qty,subtotal,total,created_at\n" +
		"a@x.com,insoles,1,7.25,8.00,2024-03-01\n"
	src, err := NewCSVOrderSource(strings.NewReader(data))
	if err != nil {
		t.Fatalf("NewCSVOrderSource: %v", err)
	}
	recs := drainOrders(t, src)
	if len(recs) != 1 || recs[0].Email != "a@x.com" || recs[0].NetAmount != 7.25 {
		t.Errorf("records = %+v", recs)
	}
}

func TestCSVOrderSourceMissingEmailColumn(t *testing.T) {
	_, err := NewCSVOrderSource(strings.NewReader("product,qty\nclogs,1\n"))
	if !errors.Is(err, internalerr.ErrSourceUnavailable) {
		t.Errorf("want ErrSourceUnavailable, got %v", err)
	}
}

func TestCSVOrderSourceEmptyInput(t *testing.T) {
	_, err := NewCSVOrderSource(strings.NewReader(""))
	if !errors.Is(err, internalerr.ErrSourceUnavailable) {
		t.Errorf("want ErrSourceUnavailable, got %v", err)
	}
}

func TestCSVProfileSource(t *testing.T) {
	data := `Email,City,Province,Country,Total Spent,Total Orders,Last Order Date
a@x.com,Austin,TX,US,345.60,4,2024-05-05
`
	src, err := NewCSVProfileSource(strings.NewReader(data))
	if err != nil {
		t.Fatalf("NewCSVProfileSource: %v", err)
	}
	rec, ok, err := src.Next()
	if err != nil || !ok {
		t.Fatalf("Next: %v %v", ok, err)
	}
	if rec.City != "Austin" || rec.Region != "TX" || rec.Country != "US" {
		t.Errorf("location = %+v", rec)
	}
	if rec.NetSales != 345.60 || rec.Orders != 4 {
		t.Errorf("totals = %+v", rec)
	}
}

func TestParseHelpers(t *testing.T) {
	if parseMoney("$1,234.56") != 1234.56 {
		t.Error("parseMoney currency")
	}
	if parseMoney("garbage") != 0 {
		t.Error("parseMoney fallback")
	}
	if parseInt("2.0") != 2 {
		t.Error("parseInt spreadsheet float")
	}
	if parseInt("x") != 0 {
		t.Error("parseInt fallback")
	}
	if parseDate("not a date").IsZero() != true {
		t.Error("parseDate fallback")
	}
	if parseDate("2024-01-05").IsZero() {
		t.Error("parseDate ISO date")
	}
}
