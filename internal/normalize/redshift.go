package normalize

import "github.com/Checker-Finance/pricefeeds/pkg/model"

// RedshiftCatalog lists warehouse node feeds.
func RedshiftCatalog() Catalog {
	var cat Catalog
	for _, g := range generationOrder {
		dir := "redshift/"
		if g == Previous {
			dir += "previous-generation/"
		}
		cat.OnDemand = append(cat.OnDemand, Feed{
			Path:       dir + "pricing-on-demand-redshift-instances.min.js",
			Scheme:     SchemeSizedTiers,
			Generation: g,
		})
		cat.Reserved = append(cat.Reserved, Feed{
			Path:       dir + "pricing-reserved-redshift-instances.min.js",
			Scheme:     SchemeTermReserved,
			Generation: g,
			Shape:      fullShape,
		})
	}
	return cat
}

// NewRedshift returns the warehouse normalizer.
func NewRedshift(opts Options) *CatalogNormalizer {
	return newCatalogNormalizer(model.ServiceRedshift, RedshiftCatalog(), opts)
}
