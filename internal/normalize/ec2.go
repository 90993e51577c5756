package normalize

import "github.com/Checker-Finance/pricefeeds/pkg/model"

// ec2Shape: three-year reservations are not sold without an upfront payment.
var ec2Shape = map[string][]model.PurchaseOption{
	model.Term1Year: {model.NoUpfront, model.PartialUpfront, model.AllUpfront},
	model.Term3Year: {model.PartialUpfront, model.AllUpfront},
}

var ec2Variants = []struct {
	os       string
	onDemand string
	reserved string
}{
	{"linux", "linux-od.min.js", "linux-unix-shared.min.js"},
	{"rhel", "rhel-od.min.js", "red-hat-enterprise-linux-shared.min.js"},
	{"sles", "sles-od.min.js", "suse-linux-shared.min.js"},
	{"mswin", "mswin-od.min.js", "windows-shared.min.js"},
	{"mswinSQL", "mswinSQL-od.min.js", "windows-with-sql-server-standard-shared.min.js"},
	{"mswinSQLWeb", "mswinSQLWeb-od.min.js", "windows-with-sql-server-web-shared.min.js"},
}

// EC2Catalog lists compute feeds. On-demand offerings take their OS from the
// price column name; reserved offerings from the feed.
func EC2Catalog() Catalog {
	var cat Catalog
	for _, g := range generationOrder {
		dir := "ec2/"
		if g == Previous {
			dir += "previous-generation/"
		}
		for _, v := range ec2Variants {
			cat.OnDemand = append(cat.OnDemand, Feed{
				Path:       dir + v.onDemand,
				Scheme:     SchemeSizes,
				Generation: g,
			})
			cat.Reserved = append(cat.Reserved, Feed{
				Path:        dir + "ri-v2/" + v.reserved,
				Scheme:      SchemeTermReserved,
				Generation:  g,
				OS:          v.os,
				Utilization: "heavy",
				Shape:       ec2Shape,
			})
		}
	}
	return cat
}

// NewEC2 returns the compute normalizer.
func NewEC2(opts Options) *CatalogNormalizer {
	return newCatalogNormalizer(model.ServiceEC2, EC2Catalog(), opts)
}
