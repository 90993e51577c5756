package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

// ─── Enums ─────────────────────────────────────────────────────────────

func TestAsMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"ondemand", ModeOnDemand, true},
		{"on_demand", ModeOnDemand, true},
		{"reserved", ModeReserved, true},
		{"both", ModeBoth, true},
		{"spot", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := AsMode(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsPurchaseOption(t *testing.T) {
	o, ok := AsPurchaseOption("Partial Upfront")
	require.True(t, ok)
	assert.Equal(t, PartialUpfront, o)

	_, ok = AsPurchaseOption("Light Utilization")
	assert.False(t, ok)
}

// ─── ReservedPrices ────────────────────────────────────────────────────

func TestReservedPrices_LegacyJSON(t *testing.T) {
	p := NewTermPrices()
	p.ByTerm[Term1Year] = PricePair{Hourly: f(0.1), Upfront: f(100)}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"hourly":0.1,"upfront":100},"3":{"hourly":null,"upfront":null}}`, string(b))

	var back ReservedPrices
	require.NoError(t, json.Unmarshal(b, &back))
	assert.False(t, back.HasOptions())
	assert.Equal(t, 0.1, *back.ByTerm[Term1Year].Hourly)
}

func TestReservedPrices_OptionJSON(t *testing.T) {
	p := NewOptionPrices(map[string][]PurchaseOption{
		Term1Year: {NoUpfront},
		Term3Year: {AllUpfront},
	})
	p.ByOption[Term3Year][AllUpfront] = PricePair{Hourly: f(0), Upfront: f(1500)}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"noUpfront":{"hourly":null,"upfront":null}},"3":{"allUpfront":{"hourly":0,"upfront":1500}}}`, string(b))

	var back ReservedPrices
	require.NoError(t, json.Unmarshal(b, &back))
	require.True(t, back.HasOptions())
	assert.Equal(t, 1500.0, *back.ByOption[Term3Year][AllUpfront].Upfront)
}

func TestReservedPrices_LeavesOrdered(t *testing.T) {
	p := NewOptionPrices(map[string][]PurchaseOption{
		Term3Year: {AllUpfront, PartialUpfront},
		Term1Year: {AllUpfront, NoUpfront, PartialUpfront},
	})

	var got []string
	for _, l := range p.Leaves() {
		got = append(got, l.Term+"/"+string(l.Option))
	}
	assert.Equal(t, []string{
		"1/noUpfront", "1/partialUpfront", "1/allUpfront",
		"3/partialUpfront", "3/allUpfront",
	}, got)
}

// ─── Snapshot ──────────────────────────────────────────────────────────

func TestSnapshot_MarshalByMode(t *testing.T) {
	od := NewOnDemandDocument(DefaultCurrency)
	od.Regions = append(od.Regions, OnDemandRegion{
		Region:        "us-east-1",
		InstanceTypes: []OnDemandOffering{{Type: "m1.small", Price: f(0.044)}},
	})

	s := NewSnapshot("run-1", ModeOnDemand, []Service{ServiceElastiCache})
	s.OnDemand[ServiceElastiCache] = od

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"elasticache":{"config":{"currency":"USD","unit":"perhr"},
		"regions":[{"region":"us-east-1","instanceTypes":[{"type":"m1.small","price":0.044}]}]}}`, string(b))
	assert.Equal(t, 1, s.Regions())
	assert.Equal(t, 1, s.Offerings())

	both := NewSnapshot("run-2", ModeBoth, []Service{ServiceRedshift})
	both.OnDemand[ServiceRedshift] = NewOnDemandDocument(DefaultCurrency)
	both.Reserved[ServiceRedshift] = NewReservedDocument(DefaultCurrency)

	b, err = json.Marshal(both)
	require.NoError(t, err)
	var generic map[string]map[string]any
	require.NoError(t, json.Unmarshal(b, &generic))
	assert.Contains(t, generic, "ondemand")
	assert.Contains(t, generic["reserved"], "redshift")
}

func TestNewSnapshotEvent(t *testing.T) {
	s := NewSnapshot("run-3", ModeReserved, []Service{ServiceEC2})
	doc := NewReservedDocument(DefaultCurrency)
	doc.Regions = []ReservedRegion{{Region: "eu-west-1", InstanceTypes: []ReservedOffering{{Type: "t2.micro"}, {Type: "m3.large"}}}}
	s.Reserved[ServiceEC2] = doc

	ev := NewSnapshotEvent(s)
	assert.Equal(t, "run-3", ev.RunID)
	assert.Equal(t, 1, ev.Regions)
	assert.Equal(t, 2, ev.Offerings)
}
