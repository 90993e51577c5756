package normalize

import (
	"github.com/Checker-Finance/pricefeeds/internal/resolve"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// ElastiCacheCatalog lists cache node feeds. Only current-generation light and
// medium reserved feeds use internal size tokens; the rest publish canonical names.
func ElastiCacheCatalog() Catalog {
	cat := Catalog{
		OnDemand: []Feed{
			{Path: "elasticache/pricing-standard-deployments-elasticache.min.js", Scheme: SchemeTiers, Generation: Current},
			{Path: "elasticache/previous-generation/pricing-standard-deployments-elasticache.min.js", Scheme: SchemeTiers, Generation: Previous},
		},
	}

	current := []struct{ file, utilization string }{
		{"pricing-elasticache-light-standard-deployments-elasticache.min.js", "light"},
		{"pricing-elasticache-medium-standard-deployments.min.js", "medium"},
		{"pricing-elasticache-heavy-standard-deployments.min.js", "heavy"},
	}
	for _, c := range current {
		f := Feed{
			Path:        "elasticache/" + c.file,
			Scheme:      SchemeLegacyReserved,
			Generation:  Current,
			Utilization: c.utilization,
		}
		if c.utilization != "heavy" {
			f.ResolveType = resolve.ElastiCache.Resolve
		}
		cat.Reserved = append(cat.Reserved, f)
	}
	for _, u := range []string{"light", "medium", "heavy"} {
		cat.Reserved = append(cat.Reserved, Feed{
			Path:        "elasticache/previous-generation/pricing-elasticache-" + u + "-standard-deployments.min.js",
			Scheme:      SchemeLegacyReserved,
			Generation:  Previous,
			Utilization: u,
		})
	}
	return cat
}

// NewElastiCache returns the cache node normalizer.
func NewElastiCache(opts Options) *CatalogNormalizer {
	return newCatalogNormalizer(model.ServiceElastiCache, ElastiCacheCatalog(), opts)
}
