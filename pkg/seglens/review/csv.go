package review

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/seglens/pkg/seglens/internalerr"
)

var reviewAliases = map[string]string{
	"email":          "email",
	"reviewer email": "email",
	"reviewer_email": "email",
	"customer email": "email",

	"body":        "body",
	"review":      "body",
	"review body": "body",
	"review_body": "body",
	"content":     "body",
	"text":        "body",

	"rating": "rating",
	"stars":  "rating",
	"score":  "rating",

	"date":        "date",
	"created_at":  "date",
	"created at":  "date",
	"review date": "date",
	"review_date": "date",

	"name":          "name",
	"reviewer":      "name",
	"reviewer name": "name",
	"reviewer_name": "name",
	"display name":  "name",

	"verified":          "verified",
	"verified buyer":    "verified",
	"verified_buyer":    "verified",
	"verified purchase": "verified",
	"verified_purchase": "verified",

	"product":        "product",
	"product handle": "product",
	"product_handle": "product",
	"handle":         "product",
	"product type":   "product",
	"product_type":   "product",
}

// LoadCSV reads the full review export into memory, stripping HTML from
// bodies and dropping rows with empty text. Rows the csv parser rejects are
// skipped; a source with no loadable reviews is a structural fault.
func LoadCSV(r io.Reader) ([]Review, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty review source: %w", internalerr.ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("read review header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.Trim(strings.ToLower(strings.TrimSpace(h)), "\"'")
		if field, ok := reviewAliases[name]; ok {
			if _, taken := idx[field]; !taken {
				idx[field] = i
			}
		}
	}
	if _, ok := idx["body"]; !ok {
		return nil, fmt.Errorf("no review body column in header %v: %w", header, internalerr.ErrSourceUnavailable)
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var reviews []Review
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		text := StripHTML(field(row, "body"))
		if text == "" {
			continue
		}

		reviews = append(reviews, Review{
			Email:       field(row, "email"),
			DisplayName: field(row, "name"),
			Text:        text,
			Rating:      parseRating(field(row, "rating")),
			Date:        parseDate(field(row, "date")),
			Verified:    parseBool(field(row, "verified")),
			ProductRaw:  field(row, "product"),
		})
	}

	if len(reviews) == 0 {
		return nil, fmt.Errorf("no loadable reviews: %w", internalerr.ErrSourceUnavailable)
	}
	return reviews, nil
}

func parseRating(raw string) int {
	if raw == "" {
		return 0
	}
	if i := strings.Index(raw, "."); i > 0 {
		raw = raw[:i]
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "y", "verified":
		return true
	default:
		return false
	}
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
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
