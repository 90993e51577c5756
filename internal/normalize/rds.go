package normalize

import (
	"github.com/Checker-Finance/pricefeeds/internal/resolve"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

const (
	deploySingleAZ = "single"
	deployMultiAZ  = "multi-az"
)

type rdsEngine struct {
	license string
	db      string
}

var (
	mysql       = rdsEngine{"gpl", "mysql"}
	oracleLI    = rdsEngine{"included", "oracle-se1"}
	oracleBYOL  = rdsEngine{"byol", "oracle"}
	sqlserverEx = rdsEngine{"included", "sqlserver-ex"}
	sqlserverWb = rdsEngine{"included", "sqlserver-web"}
	sqlserverSE = rdsEngine{"included", "sqlserver-se"}
	sqlserverBY = rdsEngine{"byol", "sqlserver"}
	postgres    = rdsEngine{"postgresql", "postgres"}
)

// rdsOnDemand: engine directory, file, engine, deployment.
var rdsOnDemand = []struct {
	dir, file string
	engine    rdsEngine
	multiAZ   string
}{
	{"mysql", "pricing-standard-deployments.min.js", mysql, deploySingleAZ},
	{"mysql", "pricing-multiAZ-deployments.min.js", mysql, deployMultiAZ},
	{"oracle", "pricing-li-standard-deployments.min.js", oracleLI, deploySingleAZ},
	{"oracle", "pricing-li-multiAZ-deployments.min.js", oracleLI, deployMultiAZ},
	{"oracle", "pricing-byol-standard-deployments.min.js", oracleBYOL, deploySingleAZ},
	{"oracle", "pricing-byol-multiAZ-deployments.min.js", oracleBYOL, deployMultiAZ},
	{"sqlserver", "sqlserver-li-ex-ondemand.min.js", sqlserverEx, deploySingleAZ},
	{"sqlserver", "sqlserver-li-web-ondemand.min.js", sqlserverWb, deploySingleAZ},
	{"sqlserver", "sqlserver-li-se-ondemand.min.js", sqlserverSE, deploySingleAZ},
	{"sqlserver", "sqlserver-li-se-ondemand-maz.min.js", sqlserverSE, deployMultiAZ},
	{"sqlserver", "sqlserver-byol-ondemand.min.js", sqlserverBY, deploySingleAZ},
	{"sqlserver", "sqlserver-byol-ondemand-maz.min.js", sqlserverBY, deployMultiAZ},
	{"postgresql", "pricing-standard-deployments.min.js", postgres, deploySingleAZ},
	{"postgresql", "pricing-multiAZ-deployments.min.js", postgres, deployMultiAZ},
}

// rdsReservedTerms are the reserved-instances feeds using the term/purchase-option layout.
var rdsReservedTerms = []struct {
	file    string
	engine  rdsEngine
	multiAZ string
}{
	{"mysql-standard.min.js", mysql, deploySingleAZ},
	{"mysql-multiAZ.min.js", mysql, deployMultiAZ},
	{"oracle-se1-license-included-standard.min.js", oracleLI, deploySingleAZ},
	{"oracle-se1-license-included-multiAZ.min.js", oracleLI, deployMultiAZ},
	{"oracle-se-byol-standard.min.js", oracleBYOL, deploySingleAZ},
	{"oracle-se-byol-multiAZ.min.js", oracleBYOL, deployMultiAZ},
	{"sql-server-se-byol-standard.min.js", sqlserverBY, deploySingleAZ},
	{"sql-server-se-byol-multiAZ.min.js", sqlserverBY, deployMultiAZ},
	{"postgresql-standard.min.js", postgres, deploySingleAZ},
	{"postgresql-multiAZ.min.js", postgres, deployMultiAZ},
}

// rdsReservedLegacy are the license-included SQL Server utilization feeds.
var rdsReservedLegacy = []struct {
	edition string
	engine  rdsEngine
}{
	{"ex", sqlserverEx},
	{"web", sqlserverWb},
	{"se", sqlserverSE},
}

// RDSCatalog lists relational database feeds. Reserved folds the legacy
// utilization feeds first, then the term/purchase-option feeds.
func RDSCatalog() Catalog {
	var cat Catalog

	for _, g := range generationOrder {
		for _, v := range rdsOnDemand {
			dir := "rds/" + v.dir + "/"
			if g == Previous {
				dir += "previous-generation/"
			}
			cat.OnDemand = append(cat.OnDemand, Feed{
				Path:       dir + v.file,
				Scheme:     SchemeTiers,
				Generation: g,
				MultiAZ:    v.multiAZ,
				License:    v.engine.license,
				DB:         v.engine.db,
			})
		}
	}

	for _, g := range generationOrder {
		dir := "rds/sqlserver/"
		if g == Previous {
			dir += "previous-generation/"
		}
		for _, v := range rdsReservedLegacy {
			for _, u := range []string{"light", "medium", "heavy"} {
				cat.Reserved = append(cat.Reserved, Feed{
					Path:              dir + "sqlserver-li-" + v.edition + "-" + u + "-ri.min.js",
					Scheme:            SchemeLegacyReserved,
					Generation:        g,
					License:           v.engine.license,
					DB:                v.engine.db,
					Utilization:       u,
					ResolveType:       resolve.CanonicalRDS,
					MultiAZFromFamily: true,
				})
			}
		}
	}

	for _, g := range generationOrder {
		dir := "rds/reserved-instances/"
		if g == Previous {
			dir = "rds/previous-generation/reserved-instances/"
		}
		for _, v := range rdsReservedTerms {
			cat.Reserved = append(cat.Reserved, Feed{
				Path:        dir + v.file,
				Scheme:      SchemeTermReserved,
				Generation:  g,
				MultiAZ:     v.multiAZ,
				License:     v.engine.license,
				DB:          v.engine.db,
				Utilization: "heavy",
				Shape:       fullShape,
			})
		}
	}
	return cat
}

// NewRDS returns the relational database normalizer.
func NewRDS(opts Options) *CatalogNormalizer {
	return newCatalogNormalizer(model.ServiceRDS, RDSCatalog(), opts)
}
