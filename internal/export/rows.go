package export

import (
	"strconv"

	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

var (
	onDemandHeader = []string{"service", "region", "type", "multiaz", "license", "db", "os", "price"}
	reservedHeader = []string{"service", "region", "type", "multiaz", "license", "db", "os", "utilization", "term", "payment_type", "price", "upfront"}
)

// Header returns the fixed column set for mode.
func Header(mode model.Mode) []string {
	switch mode {
	case model.ModeOnDemand:
		return append([]string(nil), onDemandHeader...)
	case model.ModeReserved:
		return append([]string(nil), reservedHeader...)
	default:
		return append([]string{"reserved_od"}, reservedHeader...)
	}
}

// Rows flattens a snapshot to one row per offering (on-demand) or per price leaf
// (reserved), in service then region then offering order. Missing values render as "".
func Rows(snap *model.Snapshot) [][]string {
	var rows [][]string
	switch snap.Mode {
	case model.ModeOnDemand:
		for _, svc := range snap.Services {
			rows = append(rows, onDemandRows(svc, snap.OnDemand[svc])...)
		}
	case model.ModeReserved:
		for _, svc := range snap.Services {
			rows = append(rows, reservedRows(svc, snap.Reserved[svc])...)
		}
	default:
		for _, svc := range snap.Services {
			for _, r := range onDemandRows(svc, snap.OnDemand[svc]) {
				// widen to the reserved layout: utilization, term, payment_type before price, upfront after.
				wide := append([]string{string(model.ModeOnDemand)}, r[:7]...)
				wide = append(wide, "", "", "", r[7], "")
				rows = append(rows, wide)
			}
		}
		for _, svc := range snap.Services {
			for _, r := range reservedRows(svc, snap.Reserved[svc]) {
				rows = append(rows, append([]string{string(model.ModeReserved)}, r...))
			}
		}
	}
	return rows
}

func onDemandRows(svc model.Service, doc *model.OnDemandDocument) [][]string {
	if doc == nil {
		return nil
	}
	var rows [][]string
	for _, r := range doc.Regions {
		for _, o := range r.InstanceTypes {
			rows = append(rows, []string{
				string(svc), r.Region, o.Type, o.MultiAZ, o.License, o.DB, o.OS, price(o.Price),
			})
		}
	}
	return rows
}

func reservedRows(svc model.Service, doc *model.ReservedDocument) [][]string {
	if doc == nil {
		return nil
	}
	var rows [][]string
	for _, r := range doc.Regions {
		for _, o := range r.InstanceTypes {
			for _, leaf := range o.Prices.Leaves() {
				rows = append(rows, []string{
					string(svc), r.Region, o.Type, o.MultiAZ, o.License, o.DB, o.OS, o.Utilization,
					leaf.Term, string(leaf.Option), price(leaf.Hourly), price(leaf.Upfront),
				})
			}
		}
	}
	return rows
}

// price renders nil as "" and zero as "0".
func price(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
