package util

import (
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/seanazu/value-hunter/model"
)

// CoerceFieldValue converts raw input (JSON value or form text) into the type
// ScreenerFilters.With expects for field. nil stays nil.
func CoerceFieldValue(field model.Field, raw any) (any, error) {
	kind, err := field.Kind()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	switch kind {
	case model.KindNumber:
		if s, ok := raw.(string); ok {
			raw = strings.TrimSpace(s)
		}
		var n float64
		if err := mapstructure.WeakDecode(raw, &n); err != nil {
			return nil, fmt.Errorf("field %s expects a number: %w", field, err)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("field %s expects a finite number", field)
		}
		return n, nil
	case model.KindBool:
		var b bool
		if err := mapstructure.WeakDecode(raw, &b); err != nil {
			return nil, fmt.Errorf("field %s expects a boolean: %w", field, err)
		}
		return b, nil
	default:
		var text string
		switch s := raw.(type) {
		case model.Exchange:
			text = string(s)
		case string:
			text = s
		default:
			return nil, fmt.Errorf("field %s expects a string, got %T", field, raw)
		}
		// empty stays allowed and means absent
		ex := model.Exchange(strings.TrimSpace(text))
		if ex != "" && !ex.Valid() {
			return nil, fmt.Errorf("field %s must be one of %v, got %q", field, model.Exchanges, string(ex))
		}
		return ex, nil
	}
}
