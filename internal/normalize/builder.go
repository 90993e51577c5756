package normalize

import "github.com/Checker-Finance/pricefeeds/pkg/model"

// onDemandBuilder appends a new region entry for every feed region, never merging.
type onDemandBuilder struct {
	doc *model.OnDemandDocument
}

func newOnDemandBuilder(currency string) *onDemandBuilder {
	return &onDemandBuilder{doc: model.NewOnDemandDocument(currency)}
}

func (b *onDemandBuilder) appendRegion(region string, offerings []model.OnDemandOffering) {
	if offerings == nil {
		offerings = []model.OnDemandOffering{}
	}
	b.doc.Regions = append(b.doc.Regions, model.OnDemandRegion{
		Region:        region,
		InstanceTypes: offerings,
	})
}

// reservedBuilder keeps one region entry per canonical region, in first-seen order.
type reservedBuilder struct {
	doc   *model.ReservedDocument
	index map[string]int
}

func newReservedBuilder(currency string) *reservedBuilder {
	return &reservedBuilder{
		doc:   model.NewReservedDocument(currency),
		index: make(map[string]int),
	}
}

// touch returns the slice index of region, creating the entry on first sight.
func (b *reservedBuilder) touch(region string) int {
	if i, ok := b.index[region]; ok {
		return i
	}
	b.doc.Regions = append(b.doc.Regions, model.ReservedRegion{
		Region:        region,
		InstanceTypes: []model.ReservedOffering{},
	})
	i := len(b.doc.Regions) - 1
	b.index[region] = i
	return i
}

func (b *reservedBuilder) add(region int, o model.ReservedOffering) {
	r := &b.doc.Regions[region]
	r.InstanceTypes = append(r.InstanceTypes, o)
}
