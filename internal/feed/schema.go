package feed

// Document is a repaired feed payload. Only the fields the normalizers read are declared.
type Document struct {
	Config struct {
		Regions []Region `json:"regions"`
	} `json:"config"`
}

// Region is one region entry. Which of Types or InstanceTypes is populated depends on the feed family.
type Region struct {
	Region        string         `json:"region"`
	Types         []TypeGroup    `json:"types"`
	InstanceTypes []InstanceType `json:"instanceTypes"`
}

// TypeGroup is the on-demand grouping used by cache and relational feeds.
type TypeGroup struct {
	Name  string `json:"name"`
	Tiers []Tier `json:"tiers"`
}

// InstanceType carries sizes (compute on-demand), tiers (warehouse on-demand,
// legacy reserved) or terms (current reserved scheme).
type InstanceType struct {
	Type  string `json:"type"`
	Sizes []Tier `json:"sizes"`
	Tiers []Tier `json:"tiers"`
	Terms []Term `json:"terms"`
}

// Tier is a priced row. Name and Prices are set on on-demand tier feeds,
// Size and ValueColumns on sized and legacy reserved feeds.
type Tier struct {
	Name         string        `json:"name"`
	Size         string        `json:"size"`
	Prices       Prices        `json:"prices"`
	ValueColumns []ValueColumn `json:"valueColumns"`
}

type Term struct {
	Term            string           `json:"term"`
	PurchaseOptions []PurchaseOption `json:"purchaseOptions"`
}

type PurchaseOption struct {
	PurchaseOption string        `json:"purchaseOption"`
	ValueColumns   []ValueColumn `json:"valueColumns"`
}

// ValueColumn is a named price column.
type ValueColumn struct {
	Name   string `json:"name"`
	Prices Prices `json:"prices"`
}

// Regions returns the region entries that carry a region id. A payload without
// config.regions yields none.
func (d *Document) Regions() []Region {
	if d == nil {
		return nil
	}
	out := make([]Region, 0, len(d.Config.Regions))
	for _, r := range d.Config.Regions {
		if r.Region != "" {
			out = append(out, r)
		}
	}
	return out
}
