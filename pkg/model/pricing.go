package model

// DefaultCurrency is the only unit of account the upstream feeds publish prices in.
const DefaultCurrency = "USD"

// UnitPerHour is the display unit attached to on-demand documents.
const UnitPerHour = "perhr"

// Service identifies one of the priced service families.
type Service string

const (
	ServiceEC2         Service = "ec2"
	ServiceElastiCache Service = "elasticache"
	ServiceRDS         Service = "rds"
	ServiceRedshift    Service = "redshift"
)

// Services lists every supported service in output order.
var Services = []Service{ServiceEC2, ServiceElastiCache, ServiceRDS, ServiceRedshift}

// AsService normalizes a user supplied service name.
func AsService(s string) (Service, bool) {
	for _, svc := range Services {
		if string(svc) == s {
			return svc, true
		}
	}
	return "", false
}

// Mode is the pricing mode requested by the caller.
type Mode string

const (
	ModeOnDemand Mode = "ondemand"
	ModeReserved Mode = "reserved"
	ModeBoth     Mode = "both"
)

// AsMode parses a pricing mode. "on_demand" and "all" are accepted as aliases.
func AsMode(s string) (Mode, bool) {
	switch s {
	case "ondemand", "on_demand", "on-demand":
		return ModeOnDemand, true
	case "reserved":
		return ModeReserved, true
	case "both", "all":
		return ModeBoth, true
	default:
		return "", false
	}
}

// DocumentConfig is the header of every canonical document.
type DocumentConfig struct {
	Currency string `json:"currency"`
	Unit     string `json:"unit,omitempty"`
}

//
// ────────────────────────────────────────────────
//   On-Demand
// ────────────────────────────────────────────────
//

// OnDemandDocument is the canonical on-demand pricing for one service.
// Regions are not merged: every source feed appends its own RegionPricing entries.
type OnDemandDocument struct {
	Config  DocumentConfig   `json:"config"`
	Regions []OnDemandRegion `json:"regions"`
}

// OnDemandRegion groups the offerings one feed published for one region.
type OnDemandRegion struct {
	Region        string             `json:"region"`
	InstanceTypes []OnDemandOffering `json:"instanceTypes"`
}

// OnDemandOffering is a single hourly price. Price is nil when the feed had no usable token.
type OnDemandOffering struct {
	Type    string   `json:"type"`
	OS      string   `json:"os,omitempty"`
	MultiAZ string   `json:"multiaz,omitempty"`
	License string   `json:"license,omitempty"`
	DB      string   `json:"db,omitempty"`
	Price   *float64 `json:"price"`
}

// NewOnDemandDocument returns an empty document ready to be folded into.
func NewOnDemandDocument(currency string) *OnDemandDocument {
	return &OnDemandDocument{
		Config:  DocumentConfig{Currency: currency, Unit: UnitPerHour},
		Regions: []OnDemandRegion{},
	}
}

// Offerings counts every offering across all regions.
func (d *OnDemandDocument) Offerings() int {
	n := 0
	for _, r := range d.Regions {
		n += len(r.InstanceTypes)
	}
	return n
}

//
// ────────────────────────────────────────────────
//   Reserved
// ────────────────────────────────────────────────
//

// ReservedDocument is the canonical reserved pricing for one service.
// Regions are unique: offerings from every feed for the same region accumulate in one entry.
type ReservedDocument struct {
	Config  DocumentConfig   `json:"config"`
	Regions []ReservedRegion `json:"regions"`
}

// ReservedRegion holds every reserved offering seen for one canonical region.
type ReservedRegion struct {
	Region        string             `json:"region"`
	InstanceTypes []ReservedOffering `json:"instanceTypes"`
}

// ReservedOffering is one reservable instance type with its term prices.
type ReservedOffering struct {
	Type        string         `json:"type"`
	OS          string         `json:"os,omitempty"`
	MultiAZ     string         `json:"multiaz,omitempty"`
	License     string         `json:"license,omitempty"`
	DB          string         `json:"db,omitempty"`
	Utilization string         `json:"utilization,omitempty"`
	Prices      ReservedPrices `json:"prices"`
}

// NewReservedDocument returns an empty document ready to be folded into.
func NewReservedDocument(currency string) *ReservedDocument {
	return &ReservedDocument{
		Config:  DocumentConfig{Currency: currency},
		Regions: []ReservedRegion{},
	}
}

// Offerings counts every offering across all regions.
func (d *ReservedDocument) Offerings() int {
	n := 0
	for _, r := range d.Regions {
		n += len(r.InstanceTypes)
	}
	return n
}
