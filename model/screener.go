package model

import "fmt"

// --- ENUMS ---
type Exchange string

const (
	ExchangeNasdaq Exchange = "NASDAQ"
	ExchangeNyse   Exchange = "NYSE"
	ExchangeAmex   Exchange = "AMEX"
)

// Exchanges lists the selectable exchanges in the order the form shows them
var Exchanges = []Exchange{ExchangeNasdaq, ExchangeNyse, ExchangeAmex}

func (e Exchange) Valid() bool {
	for _, x := range Exchanges {
		if x == e {
			return true
		}
	}
	return false
}

// Field identifies one entry of ScreenerFilters by its wire name.
type Field string

const (
	FieldMarketCapLowerThan    Field = "marketCapLowerThan"
	FieldPriceLowerThan        Field = "priceLowerThan"
	FieldAverageVolumeMoreThan Field = "averageVolumeMoreThan"
	FieldExchange              Field = "exchange"
	FieldIsActivelyTrading     Field = "isActivelyTrading"
	FieldIsEtf                 Field = "isEtf"
	FieldIsFund                Field = "isFund"
	FieldLimit                 Field = "limit"
)

// FieldOrder is the declaration order of ScreenerFilters. The outgoing query follows it.
var FieldOrder = []Field{
	FieldMarketCapLowerThan,
	FieldPriceLowerThan,
	FieldAverageVolumeMoreThan,
	FieldExchange,
	FieldIsActivelyTrading,
	FieldIsEtf,
	FieldIsFund,
	FieldLimit,
}

// RequiredFields must all be present before a submission goes out.
var RequiredFields = []Field{
	FieldMarketCapLowerThan,
	FieldPriceLowerThan,
	FieldAverageVolumeMoreThan,
	FieldExchange,
}

type FieldKind int

const (
	KindNumber FieldKind = iota
	KindString
	KindBool
)

func (f Field) Kind() (FieldKind, error) {
	switch f {
	case FieldMarketCapLowerThan, FieldPriceLowerThan, FieldAverageVolumeMoreThan, FieldLimit:
		return KindNumber, nil
	case FieldExchange:
		return KindString, nil
	case FieldIsActivelyTrading, FieldIsEtf, FieldIsFund:
		return KindBool, nil
	}
	return 0, fmt.Errorf("unknown filter field %q", string(f))
}

// --- FILTERS ---
// ScreenerFilters is the form state of one screener session. A nil pointer means the field is absent.
type ScreenerFilters struct {
	MarketCapLowerThan    *float64  `json:"marketCapLowerThan,omitempty" bson:"marketCapLowerThan,omitempty"`
	PriceLowerThan        *float64  `json:"priceLowerThan,omitempty" bson:"priceLowerThan,omitempty"`
	AverageVolumeMoreThan *float64  `json:"averageVolumeMoreThan,omitempty" bson:"averageVolumeMoreThan,omitempty"`
	Exchange              *Exchange `json:"exchange,omitempty" bson:"exchange,omitempty"`
	IsActivelyTrading     *bool     `json:"isActivelyTrading,omitempty" bson:"isActivelyTrading,omitempty"`
	IsEtf                 *bool     `json:"isEtf,omitempty" bson:"isEtf,omitempty"`
	IsFund                *bool     `json:"isFund,omitempty" bson:"isFund,omitempty"`
	Limit                 *float64  `json:"limit,omitempty" bson:"limit,omitempty"`
}

// DefaultFilters returns the values a fresh form starts with.
func DefaultFilters() ScreenerFilters {
	return ScreenerFilters{
		MarketCapLowerThan:    Ptr(500000000.0),
		PriceLowerThan:        Ptr(15.0),
		AverageVolumeMoreThan: Ptr(300000.0),
		Exchange:              Ptr(ExchangeNasdaq),
		IsActivelyTrading:     Ptr(true),
	}
}

// Clone copies every present value so the result shares no pointers with f.
func (f ScreenerFilters) Clone() ScreenerFilters {
	return ScreenerFilters{
		MarketCapLowerThan:    clonePtr(f.MarketCapLowerThan),
		PriceLowerThan:        clonePtr(f.PriceLowerThan),
		AverageVolumeMoreThan: clonePtr(f.AverageVolumeMoreThan),
		Exchange:              clonePtr(f.Exchange),
		IsActivelyTrading:     clonePtr(f.IsActivelyTrading),
		IsEtf:                 clonePtr(f.IsEtf),
		IsFund:                clonePtr(f.IsFund),
		Limit:                 clonePtr(f.Limit),
	}
}

// Get returns the current value of field as float64, Exchange or bool, or nil when absent.
func (f ScreenerFilters) Get(field Field) (any, error) {
	switch field {
	case FieldMarketCapLowerThan:
		return deref(f.MarketCapLowerThan), nil
	case FieldPriceLowerThan:
		return deref(f.PriceLowerThan), nil
	case FieldAverageVolumeMoreThan:
		return deref(f.AverageVolumeMoreThan), nil
	case FieldExchange:
		return deref(f.Exchange), nil
	case FieldIsActivelyTrading:
		return deref(f.IsActivelyTrading), nil
	case FieldIsEtf:
		return deref(f.IsEtf), nil
	case FieldIsFund:
		return deref(f.IsFund), nil
	case FieldLimit:
		return deref(f.Limit), nil
	}
	return nil, fmt.Errorf("unknown filter field %q", string(field))
}

// With returns a copy of f that differs only in field. value must already have the
// field's kind (float64, Exchange or bool); nil clears the field.
func (f ScreenerFilters) With(field Field, value any) (ScreenerFilters, error) {
	next := f.Clone()
	var ok bool
	switch field {
	case FieldMarketCapLowerThan:
		next.MarketCapLowerThan, ok = asPtr[float64](value)
	case FieldPriceLowerThan:
		next.PriceLowerThan, ok = asPtr[float64](value)
	case FieldAverageVolumeMoreThan:
		next.AverageVolumeMoreThan, ok = asPtr[float64](value)
	case FieldExchange:
		next.Exchange, ok = asPtr[Exchange](value)
	case FieldIsActivelyTrading:
		next.IsActivelyTrading, ok = asPtr[bool](value)
	case FieldIsEtf:
		next.IsEtf, ok = asPtr[bool](value)
	case FieldIsFund:
		next.IsFund, ok = asPtr[bool](value)
	case FieldLimit:
		next.Limit, ok = asPtr[float64](value)
	default:
		return f, fmt.Errorf("unknown filter field %q", string(field))
	}
	if !ok {
		return f, fmt.Errorf("value %v (%T) does not fit field %q", value, value, string(field))
	}
	return next, nil
}

// --- RESULTS ---
// ScoredStock is one row returned by the screening service
type ScoredStock struct {
	Symbol      string  `json:"symbol"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// ResultRow is a ScoredStock with its 1-based rank, as the result list shows it.
type ResultRow struct {
	Rank        int     `json:"rank"`
	Symbol      string  `json:"symbol"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

func (r ResultRow) Title() string {
	return fmt.Sprintf("%d. Ticker: %s", r.Rank, r.Symbol)
}

func RankRows(stocks []ScoredStock) []ResultRow {
	rows := make([]ResultRow, 0, len(stocks))
	for i, s := range stocks {
		rows = append(rows, ResultRow{
			Rank:        i + 1,
			Symbol:      s.Symbol,
			Score:       s.Score,
			Explanation: s.Explanation,
		})
	}
	return rows
}

func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func asPtr[T any](value any) (*T, bool) {
	if value == nil {
		return nil, true
	}
	v, ok := value.(T)
	if !ok {
		return nil, false
	}
	return &v, true
}
