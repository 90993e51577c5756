package normalize

import "github.com/Checker-Finance/pricefeeds/pkg/model"

// Scheme selects how a feed's region entries are read.
type Scheme int

const (
	// SchemeSizes: instanceTypes[].sizes[].valueColumns[], one offering per column (column name is the OS).
	SchemeSizes Scheme = iota
	// SchemeTiers: types[].tiers[] with a single price per tier.
	SchemeTiers
	// SchemeSizedTiers: instanceTypes[].tiers[].valueColumns[], one offering per column.
	SchemeSizedTiers
	// SchemeLegacyReserved: instanceTypes[].tiers[] with yrTerm1/yrTerm3 upfront and hourly columns.
	SchemeLegacyReserved
	// SchemeTermReserved: instanceTypes[].terms[].purchaseOptions[] with upfront and monthlyStar columns.
	SchemeTermReserved
)

// Generation is the hardware generation a feed covers.
type Generation string

const (
	Current  Generation = "current"
	Previous Generation = "previous"
)

// Feed describes one upstream feed and the contextual fields its offerings inherit.
type Feed struct {
	Path       string
	Scheme     Scheme
	Generation Generation

	OS          string
	License     string
	DB          string
	MultiAZ     string
	Utilization string

	// ResolveType maps the raw tier size to a canonical type. nil keeps the raw size.
	ResolveType func(string) (string, error)
	// MultiAZFromFamily derives multiaz from the instance family description.
	MultiAZFromFamily bool
	// Shape lists the payment options pre-populated per term for SchemeTermReserved.
	Shape map[string][]model.PurchaseOption
}

// Catalog is the ordered feed list of one service.
type Catalog struct {
	OnDemand []Feed
	Reserved []Feed
}

// fullShape is the three-option layout used for both terms.
var fullShape = map[string][]model.PurchaseOption{
	model.Term1Year: {model.NoUpfront, model.PartialUpfront, model.AllUpfront},
	model.Term3Year: {model.NoUpfront, model.PartialUpfront, model.AllUpfront},
}

// generationOrder is the order feeds are folded in: every current feed, then every previous one.
var generationOrder = []Generation{Current, Previous}
