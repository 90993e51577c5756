package normalize

import (
	"fmt"

	"github.com/Checker-Finance/pricefeeds/internal/feed"
	"github.com/Checker-Finance/pricefeeds/internal/resolve"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// Legacy reserved column names. Older feeds spell the hourly columns "year...".
const (
	colTerm1Upfront   = "yrTerm1"
	colTerm1Hourly    = "yrTerm1Hourly"
	colTerm1HourlyAlt = "yearTerm1Hourly"
	colTerm3Upfront   = "yrTerm3"
	colTerm3Hourly    = "yrTerm3Hourly"
	colTerm3HourlyAlt = "yearTerm3Hourly"
	colUpfront        = "upfront"
	colMonthly        = "monthlyStar"
	termKeyOneYear    = "yrTerm1"
	termKeyThreeYear  = "yrTerm3"
)

// rdsMultiAZ maps legacy instance family descriptions to a deployment tag.
var rdsMultiAZ = map[string]string{
	"Micro and Small Instances - Current Generation - Single-AZ":   "single",
	"Micro and Small Instances - Current Generation - Multi-AZ":    "multi-az",
	"Standard Instances - Current Generation - Single-AZ":          "single",
	"Standard Instances - Current Generation - Multi-AZ":           "multi-az",
	"Memory Optimized Instances - Current Generation - Single-AZ":  "single",
	"Memory Optimized Instances - Current Generation - Multi-AZ":   "multi-az",
	"Micro Instances - Previous Generation - Single-AZ":            "single",
	"Micro Instances - Previous Generation - Multi-AZ":             "multi-az",
	"Micro and Small Instances - Previous Generation - Single-AZ":  "single",
	"Micro and Small Instances - Previous Generation - Multi-AZ":   "multi-az",
	"Standard Instances - Previous Generation - Single-AZ":         "single",
	"Standard Instances - Previous Generation - Multi-AZ":          "multi-az",
	"Memory Optimized Instances - Previous Generation - Single-AZ": "single",
	"Memory Optimized Instances - Previous Generation - Multi-AZ":  "multi-az",
}

func multiAZFor(family string) (string, error) {
	if v, ok := rdsMultiAZ[family]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMultiAZ, family)
}

//
// ────────────────────────────────────────────────
//   On-Demand
// ────────────────────────────────────────────────
//

func foldOnDemand(b *onDemandBuilder, f Feed, doc *feed.Document, currency string) error {
	for _, r := range doc.Regions() {
		if !f.Scheme.lists(r) {
			continue
		}
		region, err := resolve.Region(r.Region)
		if err != nil {
			return err
		}

		var offerings []model.OnDemandOffering
		switch f.Scheme {
		case SchemeSizes:
			for _, it := range r.InstanceTypes {
				for _, s := range it.Sizes {
					for _, vc := range s.ValueColumns {
						offerings = append(offerings, model.OnDemandOffering{
							Type:  s.Size,
							OS:    vc.Name,
							Price: vc.Prices.In(currency),
						})
					}
				}
			}
		case SchemeTiers:
			for _, tg := range r.Types {
				for _, t := range tg.Tiers {
					typ, err := f.instanceType(t.Name)
					if err != nil {
						return err
					}
					offerings = append(offerings, model.OnDemandOffering{
						Type:    typ,
						OS:      f.OS,
						MultiAZ: f.MultiAZ,
						License: f.License,
						DB:      f.DB,
						Price:   t.Prices.In(currency),
					})
				}
			}
		case SchemeSizedTiers:
			for _, it := range r.InstanceTypes {
				for _, t := range it.Tiers {
					for _, vc := range t.ValueColumns {
						offerings = append(offerings, model.OnDemandOffering{
							Type:  t.Size,
							Price: vc.Prices.In(currency),
						})
					}
				}
			}
		default:
			return fmt.Errorf("scheme %d is not an on-demand scheme", f.Scheme)
		}
		b.appendRegion(region, offerings)
	}
	return nil
}

//
// ────────────────────────────────────────────────
//   Reserved
// ────────────────────────────────────────────────
//

func foldReserved(b *reservedBuilder, f Feed, doc *feed.Document, currency string) error {
	for _, r := range doc.Regions() {
		region, err := resolve.Region(r.Region)
		if err != nil {
			return err
		}
		idx := b.touch(region)

		for _, it := range r.InstanceTypes {
			var err error
			switch f.Scheme {
			case SchemeLegacyReserved:
				err = foldLegacyInstance(b, idx, f, it, currency)
			case SchemeTermReserved:
				err = foldTermInstance(b, idx, f, it, currency)
			default:
				err = fmt.Errorf("scheme %d is not a reserved scheme", f.Scheme)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// foldLegacyInstance reads flat yrTerm columns into a term-only price shape.
func foldLegacyInstance(b *reservedBuilder, idx int, f Feed, it feed.InstanceType, currency string) error {
	multiAZ := f.MultiAZ
	if f.MultiAZFromFamily {
		v, err := multiAZFor(it.Type)
		if err != nil {
			return err
		}
		multiAZ = v
	}

	for _, t := range it.Tiers {
		typ, err := f.instanceType(t.Size)
		if err != nil {
			return err
		}

		prices := model.NewTermPrices()
		one, three := prices.ByTerm[model.Term1Year], prices.ByTerm[model.Term3Year]
		for _, vc := range t.ValueColumns {
			p := vc.Prices.In(currency)
			switch vc.Name {
			case colTerm1Upfront:
				one.Upfront = p
			case colTerm1Hourly, colTerm1HourlyAlt:
				one.Hourly = p
			case colTerm3Upfront:
				three.Upfront = p
			case colTerm3Hourly, colTerm3HourlyAlt:
				three.Hourly = p
			}
		}
		prices.ByTerm[model.Term1Year], prices.ByTerm[model.Term3Year] = one, three

		b.add(idx, model.ReservedOffering{
			Type:        typ,
			OS:          f.OS,
			MultiAZ:     multiAZ,
			License:     f.License,
			DB:          f.DB,
			Utilization: f.Utilization,
			Prices:      prices,
		})
	}
	return nil
}

// foldTermInstance reads term/purchase-option columns; monthlyStar becomes an hourly rate.
func foldTermInstance(b *reservedBuilder, idx int, f Feed, it feed.InstanceType, currency string) error {
	shape := f.Shape
	if shape == nil {
		shape = fullShape
	}
	prices := model.NewOptionPrices(shape)

	for _, term := range it.Terms {
		key, ok := termKey(term.Term)
		if !ok {
			continue
		}
		cells := prices.ByOption[key]
		if cells == nil {
			cells = make(map[model.PurchaseOption]model.PricePair)
			prices.ByOption[key] = cells
		}
		for _, po := range term.PurchaseOptions {
			opt, ok := model.AsPurchaseOption(po.PurchaseOption)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownPurchaseOption, po.PurchaseOption)
			}
			cell := cells[opt]
			for _, vc := range po.ValueColumns {
				switch vc.Name {
				case colUpfront:
					cell.Upfront = vc.Prices.In(currency)
				case colMonthly:
					cell.Hourly = feed.MonthlyToHourly(vc.Prices.In(currency))
				}
			}
			cells[opt] = cell
		}
	}

	b.add(idx, model.ReservedOffering{
		Type:        it.Type,
		OS:          f.OS,
		MultiAZ:     f.MultiAZ,
		License:     f.License,
		DB:          f.DB,
		Utilization: f.Utilization,
		Prices:      prices,
	})
	return nil
}

// lists reports whether r carries the key an on-demand scheme reads. A region
// without it adds no entry; a present but empty list still does.
func (s Scheme) lists(r feed.Region) bool {
	switch s {
	case SchemeTiers:
		return r.Types != nil
	case SchemeSizes, SchemeSizedTiers:
		return r.InstanceTypes != nil
	default:
		return true
	}
}

func termKey(term string) (string, bool) {
	switch term {
	case termKeyOneYear:
		return model.Term1Year, true
	case termKeyThreeYear:
		return model.Term3Year, true
	default:
		return "", false
	}
}

func (f Feed) instanceType(raw string) (string, error) {
	if f.ResolveType == nil {
		return raw, nil
	}
	return f.ResolveType(raw)
}
