package model

import (
	"encoding/json"
	"fmt"
)

// Reserved term keys, in output order.
const (
	Term1Year = "1"
	Term3Year = "3"
)

// Terms lists reserved term keys in output order.
var Terms = []string{Term1Year, Term3Year}

// PurchaseOption is the upfront-payment strategy of a reserved offering.
type PurchaseOption string

const (
	NoUpfront      PurchaseOption = "noUpfront"
	PartialUpfront PurchaseOption = "partialUpfront"
	AllUpfront     PurchaseOption = "allUpfront"
)

// PurchaseOptions lists payment options in output order.
var PurchaseOptions = []PurchaseOption{NoUpfront, PartialUpfront, AllUpfront}

// AsPurchaseOption maps a feed token ("noUpfront", "No Upfront", ...) to a PurchaseOption.
func AsPurchaseOption(s string) (PurchaseOption, bool) {
	switch s {
	case "noUpfront", "No Upfront":
		return NoUpfront, true
	case "partialUpfront", "Partial Upfront":
		return PartialUpfront, true
	case "allUpfront", "All Upfront":
		return AllUpfront, true
	default:
		return "", false
	}
}

// PricePair is the hourly and upfront price of one reserved cell.
type PricePair struct {
	Hourly  *float64 `json:"hourly"`
	Upfront *float64 `json:"upfront"`
}

// ReservedPrices holds either the legacy term-only shape or the term/payment-option shape.
// Exactly one of the two maps is populated.
type ReservedPrices struct {
	ByTerm   map[string]PricePair
	ByOption map[string]map[PurchaseOption]PricePair
}

// NewTermPrices returns an empty legacy shape with both terms present.
func NewTermPrices() ReservedPrices {
	return ReservedPrices{ByTerm: map[string]PricePair{
		Term1Year: {},
		Term3Year: {},
	}}
}

// NewOptionPrices returns a term/payment-option shape with one empty cell per listed option.
func NewOptionPrices(shape map[string][]PurchaseOption) ReservedPrices {
	byOption := make(map[string]map[PurchaseOption]PricePair, len(shape))
	for term, opts := range shape {
		cells := make(map[PurchaseOption]PricePair, len(opts))
		for _, o := range opts {
			cells[o] = PricePair{}
		}
		byOption[term] = cells
	}
	return ReservedPrices{ByOption: byOption}
}

// HasOptions reports whether prices use the term/payment-option shape.
func (p ReservedPrices) HasOptions() bool { return p.ByOption != nil }

// PriceLeaf is one (term, option) cell flattened for tabular output.
// Option is empty for the legacy shape.
type PriceLeaf struct {
	Term    string
	Option  PurchaseOption
	Hourly  *float64
	Upfront *float64
}

// Leaves returns populated cells in term then payment-option order.
func (p ReservedPrices) Leaves() []PriceLeaf {
	var out []PriceLeaf
	for _, term := range Terms {
		if p.ByOption != nil {
			cells, ok := p.ByOption[term]
			if !ok {
				continue
			}
			for _, opt := range PurchaseOptions {
				if c, ok := cells[opt]; ok {
					out = append(out, PriceLeaf{Term: term, Option: opt, Hourly: c.Hourly, Upfront: c.Upfront})
				}
			}
			continue
		}
		if c, ok := p.ByTerm[term]; ok {
			out = append(out, PriceLeaf{Term: term, Hourly: c.Hourly, Upfront: c.Upfront})
		}
	}
	return out
}

func (p ReservedPrices) MarshalJSON() ([]byte, error) {
	if p.ByOption != nil {
		return json.Marshal(p.ByOption)
	}
	if p.ByTerm == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.ByTerm)
}

func (p *ReservedPrices) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("reserved prices: %w", err)
	}
	legacy := true
	for _, cell := range raw {
		for k := range cell {
			if k != "hourly" && k != "upfront" {
				legacy = false
			}
		}
	}
	if legacy {
		var byTerm map[string]PricePair
		if err := json.Unmarshal(data, &byTerm); err != nil {
			return fmt.Errorf("reserved prices: %w", err)
		}
		*p = ReservedPrices{ByTerm: byTerm}
		return nil
	}
	var byOption map[string]map[PurchaseOption]PricePair
	if err := json.Unmarshal(data, &byOption); err != nil {
		return fmt.Errorf("reserved prices: %w", err)
	}
	*p = ReservedPrices{ByOption: byOption}
	return nil
}
