package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Monetary amounts travel as plain JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DiscountType enumerates the supported discount strategies.
type DiscountType string

const (
	// DiscountPercentage takes a percentage of the discount base.
	DiscountPercentage DiscountType = "PERCENTAGE"
	// DiscountFixed takes a fixed monetary amount.
	DiscountFixed DiscountType = "FIXED"
)

// dateLayouts are the accepted expirationDate formats, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseDate parses an expiration date. A bare calendar date resolves to
// midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}
