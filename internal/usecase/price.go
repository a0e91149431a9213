package usecase

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Some exports prefix the value with a descriptor phrase ("actual
	// price£2.29"); strip it before looking for digits.
	pricePrefixRegex = regexp.MustCompile(`(?i)actual price`)
	priceValueRegex  = regexp.MustCompile(`[£$€]?\s*(\d+(?:\.\d+)?)`)
)

// ParsePrice extracts a numeric price from a heterogeneous currency-formatted
// string. Absence is the only failure signal: empty input, the "N/A" sentinel
// and strings without digits all return ok == false. It never errors.
func ParsePrice(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "N/A" {
		return decimal.Decimal{}, false
	}

	cleaned := strings.TrimSpace(pricePrefixRegex.ReplaceAllString(raw, ""))

	m := priceValueRegex.FindStringSubmatch(cleaned)
	if m == nil {
		return decimal.Decimal{}, false
	}

	price, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Decimal{}, false
	}
	return price, true
}
