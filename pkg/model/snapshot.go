package model

import (
	"encoding/json"
	"time"
)

// Snapshot is the aggregated result of one run: one document per selected service and mode.
type Snapshot struct {
	RunID       string
	Mode        Mode
	Services    []Service
	GeneratedAt time.Time
	OnDemand    map[Service]*OnDemandDocument
	Reserved    map[Service]*ReservedDocument
}

// NewSnapshot returns an empty snapshot for the given mode and services.
func NewSnapshot(runID string, mode Mode, services []Service) *Snapshot {
	s := &Snapshot{
		RunID:       runID,
		Mode:        mode,
		Services:    services,
		GeneratedAt: time.Now().UTC(),
	}
	if mode != ModeReserved {
		s.OnDemand = make(map[Service]*OnDemandDocument, len(services))
	}
	if mode != ModeOnDemand {
		s.Reserved = make(map[Service]*ReservedDocument, len(services))
	}
	return s
}

// Regions counts region entries across every document in the snapshot.
func (s *Snapshot) Regions() int {
	n := 0
	for _, d := range s.OnDemand {
		n += len(d.Regions)
	}
	for _, d := range s.Reserved {
		n += len(d.Regions)
	}
	return n
}

// Offerings counts offerings across every document in the snapshot.
func (s *Snapshot) Offerings() int {
	n := 0
	for _, d := range s.OnDemand {
		n += d.Offerings()
	}
	for _, d := range s.Reserved {
		n += d.Offerings()
	}
	return n
}

// MarshalJSON renders {service: document} for a single mode and
// {"ondemand": {...}, "reserved": {...}} for both.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	switch s.Mode {
	case ModeOnDemand:
		return json.Marshal(s.OnDemand)
	case ModeReserved:
		return json.Marshal(s.Reserved)
	default:
		return json.Marshal(struct {
			OnDemand map[Service]*OnDemandDocument `json:"ondemand"`
			Reserved map[Service]*ReservedDocument `json:"reserved"`
		}{s.OnDemand, s.Reserved})
	}
}
