// Package resolve maps provider-internal region and instance-class tokens to
// canonical identifiers. Tables are immutable; every lookup miss is an error.
package resolve

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownRegion       = errors.New("unknown region")
	ErrUnknownInstanceType = errors.New("unknown instance type")
)

// MissError names the table and token that failed to resolve.
type MissError struct {
	Table string
	Token string
	kind  error
}

func (e *MissError) Error() string {
	return fmt.Sprintf("%s: %q not in %s table", e.kind, e.Token, e.Table)
}

func (e *MissError) Unwrap() error { return e.kind }

// Table is a read-only token lookup.
type Table struct {
	name    string
	entries map[string]string
	miss    error
}

func newTable(name string, miss error, entries map[string]string) Table {
	return Table{name: name, entries: entries, miss: miss}
}

// Resolve returns the canonical id for token.
func (t Table) Resolve(token string) (string, error) {
	if v, ok := t.entries[token]; ok {
		return v, nil
	}
	return "", &MissError{Table: t.name, Token: token, kind: t.miss}
}

// Tokens lists every token the table knows.
func (t Table) Tokens() []string {
	out := make([]string, 0, len(t.entries))
	for k := range t.entries {
		out = append(out, k)
	}
	return out
}

// Regions resolves historical region spellings.
var Regions = newTable("region", ErrUnknownRegion, map[string]string{
	"us-east":      "us-east-1",
	"us-west":      "us-west-1",
	"eu-ireland":   "eu-west-1",
	"eu-frankfurt": "eu-central-1",
	"apac-sin":     "ap-southeast-1",
	"apac-syd":     "ap-southeast-2",
	"apac-tokyo":   "ap-northeast-1",

	"us-east-1":      "us-east-1",
	"us-east-2":      "us-east-2",
	"us-west-1":      "us-west-1",
	"us-west-2":      "us-west-2",
	"us-gov-west-1":  "us-gov-west-1",
	"ca-central-1":   "ca-central-1",
	"sa-east-1":      "sa-east-1",
	"eu-west-1":      "eu-west-1",
	"eu-west-2":      "eu-west-2",
	"eu-central-1":   "eu-central-1",
	"ap-south-1":     "ap-south-1",
	"ap-southeast-1": "ap-southeast-1",
	"ap-southeast-2": "ap-southeast-2",
	"ap-northeast-1": "ap-northeast-1",
	"ap-northeast-2": "ap-northeast-2",
})

// ElastiCache resolves cache node class tokens, both on-demand and reserved spellings.
var ElastiCache = newTable("elasticache instance", ErrUnknownInstanceType, map[string]string{
	"microInstClass.microInst":       "cache.t1.micro",
	"sCacheNode.sm":                  "cache.m1.small",
	"sCacheNode.medInst":             "cache.m1.medium",
	"sCacheNode.lg":                  "cache.m1.large",
	"sCacheNode.xl":                  "cache.m1.xlarge",
	"hiMemCacheClass.xl":             "cache.m2.xlarge",
	"hiMemCacheClass.xxl":            "cache.m2.2xlarge",
	"hiMemCacheClass.xxxxl":          "cache.m2.4xlarge",
	"hiCPUDBInstClass.hiCPUxlDBInst": "cache.c1.xlarge",
	"enInstClass2.xl":                "cache.m3.xlarge",
	"enInstClass2.xxl":               "cache.m3.2xlarge",

	"mic":        "cache.t1.micro",
	"sm":         "cache.m1.small",
	"medInst":    "cache.m1.medium",
	"lg":         "cache.m1.large",
	"xl":         "cache.m1.xlarge",
	"xlHiMem":    "cache.m2.xlarge",
	"xxlHiMem":   "cache.m2.2xlarge",
	"xxxxlHiMem": "cache.m2.4xlarge",
	"xlHiCPU":    "cache.c1.xlarge",
	"xlEn":       "cache.m3.xlarge",
	"xxlEn":      "cache.m3.2xlarge",
})

// RDS resolves database instance class tokens across on-demand, multi-AZ and reserved spellings.
var RDS = newTable("rds instance", ErrUnknownInstanceType, map[string]string{
	"udbInstClass.uDBInst":          "db.t1.micro",
	"dbInstClass.uDBInst":           "db.t1.micro",
	"dbInstClass.db.t1.micro":       "db.t1.micro",
	"dbInstClass.db.m3.medium":      "db.m3.medium",
	"dbInstClass.db.m3.large":       "db.m3.large",
	"dbInstClass.db.m3.xlarge":      "db.m3.xlarge",
	"dbInstClass.db.m3.2xlarge":     "db.m3.2xlarge",
	"dbInstClass.smDBInst":          "db.m1.small",
	"dbInstClass.db.m1.small":       "db.m1.small",
	"dbInstClass.medDBInst":         "db.m1.medium",
	"dbInstClass.db.m1.medium":      "db.m1.medium",
	"dbInstClass.lgDBInst":          "db.m1.large",
	"dbInstClass.db.m1.large":       "db.m1.large",
	"dbInstClass.xlDBInst":          "db.m1.xlarge",
	"dbInstClass.db.m1.xlarge":      "db.m1.xlarge",
	"hiMemDBInstClass.xlDBInst":     "db.m2.xlarge",
	"memDBCurrentGen.db.m2.xlarge":  "db.m2.xlarge",
	"hiMemDBInstClass.xxlDBInst":    "db.m2.2xlarge",
	"memDBCurrentGen.db.m2.2xlarge": "db.m2.2xlarge",
	"hiMemDBInstClass.xxxxDBInst":   "db.m2.4xlarge",
	"memDBCurrentGen.db.m2.4xlarge": "db.m2.4xlarge",
	"clusterHiMemDB.xxxxxxxxl":      "db.cr1.8xlarge",
	"memDBCurrentGen.db.cr1.8xl":    "db.cr1.8xlarge",

	"multiAZDBInstClass.uDBInst":       "db.t1.micro",
	"multiAZDBInstClass.smDBInst":      "db.m1.small",
	"multiAZDBInstClass.medDBInst":     "db.m1.medium",
	"multiAZDBInstClass.lgDBInst":      "db.m1.large",
	"multiAZDBInstClass.xlDBInst":      "db.m1.xlarge",
	"multiAZDBInstClass.db.t1.micro":   "db.t1.micro",
	"multiAZDBInstClass.db.m1.small":   "db.m1.small",
	"multiAZDBInstClass.db.m1.medium":  "db.m1.medium",
	"multiAZDBInstClass.db.m1.large":   "db.m1.large",
	"multiAZDBInstClass.db.m1.xlarge":  "db.m1.xlarge",
	"multiAZDBInstClass.db.m3.medium":  "db.m3.medium",
	"multiAZDBInstClass.db.m3.large":   "db.m3.large",
	"multiAZDBInstClass.db.m3.xlarge":  "db.m3.xlarge",
	"multiAZDBInstClass.db.m3.2xlarge": "db.m3.2xlarge",
	"multiAZHiMemInstClass.xlDBInst":   "db.m2.xlarge",
	"multiAZHiMemInstClass.xxlDBInst":  "db.m2.2xlarge",
	"multiAZHiMemInstClass.xxxxDBInst": "db.m2.4xlarge",
	"multiAZClusterHiMemDB.xxxxxxxxl":  "db.cr1.8xlarge",

	"stdDeployRes.u":          "db.t1.micro",
	"stdDeployRes.micro":      "db.t1.micro",
	"stdDeployRes.sm":         "db.m1.small",
	"stdDeployRes.med":        "db.m1.medium",
	"stdDeployRes.lg":         "db.m1.large",
	"stdDeployRes.xl":         "db.m1.xlarge",
	"stdDeployRes.xlHiMem":    "db.m2.xlarge",
	"stdDeployRes.xxlHiMem":   "db.m2.2xlarge",
	"stdDeployRes.xxxxlHiMem": "db.m2.4xlarge",
	"stdDeployRes.xxxxxxxxl":  "db.cr1.8xlarge",

	"multiAZdeployRes.u":          "db.t1.micro",
	"multiAZdeployRes.sm":         "db.m1.small",
	"multiAZdeployRes.med":        "db.m1.medium",
	"multiAZdeployRes.lg":         "db.m1.large",
	"multiAZdeployRes.xl":         "db.m1.xlarge",
	"multiAZdeployRes.xlHiMem":    "db.m2.xlarge",
	"multiAZdeployRes.xxlHiMem":   "db.m2.2xlarge",
	"multiAZdeployRes.xxxxlHiMem": "db.m2.4xlarge",
	"multiAZdeployRes.xxxxxxxxl":  "db.cr1.8xlarge",
})

// Region resolves a feed region token.
func Region(token string) (string, error) { return Regions.Resolve(token) }

// CanonicalRDS accepts an already canonical "db." class or resolves a legacy token.
func CanonicalRDS(token string) (string, error) {
	if strings.HasPrefix(token, "db.") {
		return token, nil
	}
	return RDS.Resolve(token)
}
