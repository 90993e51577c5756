package model

import "time"

// SnapshotEvent is published once a run completes successfully.
type SnapshotEvent struct {
	RunID       string    `json:"run_id"`
	Mode        Mode      `json:"mode"`
	Services    []Service `json:"services"`
	Regions     int       `json:"regions"`
	Offerings   int       `json:"offerings"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewSnapshotEvent summarises a snapshot for publication.
func NewSnapshotEvent(s *Snapshot) SnapshotEvent {
	return SnapshotEvent{
		RunID:       s.RunID,
		Mode:        s.Mode,
		Services:    s.Services,
		Regions:     s.Regions(),
		Offerings:   s.Offerings(),
		GeneratedAt: s.GeneratedAt,
	}
}
