package util

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/seanazu/value-hunter/model"
	"github.com/shopspring/decimal"
)

// BuildQuery renders filters as key=value pairs joined with '&', in declaration order.
// Absent values and empty strings are left out.
func BuildQuery(f model.ScreenerFilters) string {
	parts := make([]string, 0, len(model.FieldOrder))
	for _, field := range model.FieldOrder {
		value, err := f.Get(field)
		if err != nil || value == nil {
			continue
		}
		s := StringForm(value)
		if s == "" {
			continue
		}
		parts = append(parts, EncodeComponent(string(field))+"="+EncodeComponent(s))
	}
	return strings.Join(parts, "&")
}

// StringForm gives the text a filter value is sent as: true/false for booleans,
// the plain decimal form for numbers.
func StringForm(value any) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return decimal.NewFromFloat(v).String()
	case model.Exchange:
		return string(v)
	case string:
		return v
	}
	return ""
}

// EncodeComponent percent-encodes s for use as a query key or value; space becomes %20.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
