package domain

import "time"

type Source string

const (
	SourceRunning Source = "running"
	SourcePending Source = "pending"
	SourceNone    Source = "none"
)

// Snapshot answers "what session is this machine in right now": a running
// controller's status, else a descriptor waiting to be consumed, else none.
type Snapshot struct {
	Source     Source
	Status     Status
	Descriptor Descriptor
}

func (s Snapshot) Goal() string {
	switch s.Source {
	case SourceRunning:
		return s.Status.Goal
	case SourcePending:
		return s.Descriptor.Goal
	default:
		return ""
	}
}

func (s Snapshot) Intention() string {
	switch s.Source {
	case SourceRunning:
		return s.Status.Intention
	case SourcePending:
		return s.Descriptor.Intention
	default:
		return ""
	}
}

// Stale reports whether a published status is too old to belong to a live
// controller.
func (s Status) Stale(now time.Time, after time.Duration) bool {
	if s.UpdatedAt.IsZero() {
		return true
	}
	return now.Sub(s.UpdatedAt) > after
}

// Outcome summarizes a finished Run.
type Outcome struct {
	Descriptor  Descriptor
	Intention   string
	Completed   int
	Interrupted bool
}
