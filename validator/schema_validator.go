package validator

import (
	"sort"
	"strings"
	"unicode"

	"github.com/Oudwins/zog"
	"github.com/seanazu/value-hunter/model"
)

// requiredFilters is the part of ScreenerFilters that must be present on submit
type requiredFilters struct {
	MarketCapLowerThan    *float64
	PriceLowerThan        *float64
	AverageVolumeMoreThan *float64
	Exchange              *string
}

var RequiredFiltersShape = zog.Shape{
	"MarketCapLowerThan":    zog.Ptr(zog.Float64()).NotNil(),
	"PriceLowerThan":        zog.Ptr(zog.Float64()).NotNil(),
	"AverageVolumeMoreThan": zog.Ptr(zog.Float64()).NotNil(),
	"Exchange":              zog.Ptr(zog.String().Required()).NotNil(),
}

var requiredFiltersSchema = zog.Struct(RequiredFiltersShape)

// MissingRequired returns the wire names of the required filters that are absent,
// in declaration order. An empty exchange counts as absent.
func MissingRequired(f model.ScreenerFilters) []string {
	data := requiredFilters{
		MarketCapLowerThan:    f.MarketCapLowerThan,
		PriceLowerThan:        f.PriceLowerThan,
		AverageVolumeMoreThan: f.AverageVolumeMoreThan,
	}
	if f.Exchange != nil {
		ex := string(*f.Exchange)
		data.Exchange = &ex
	}

	issues := requiredFiltersSchema.Validate(&data)
	if len(issues) == 0 {
		return nil
	}

	flagged := make(map[string]bool, len(issues))
	for key, list := range issues {
		if strings.HasPrefix(key, "$") || len(list) == 0 {
			continue
		}
		flagged[lowerFirst(key)] = true
	}

	missing := make([]string, 0, len(flagged))
	for _, field := range model.RequiredFields {
		if flagged[string(field)] {
			missing = append(missing, string(field))
			delete(flagged, string(field))
		}
	}
	rest := make([]string, 0, len(flagged))
	for key := range flagged {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	return append(missing, rest...)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
