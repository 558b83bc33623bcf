package models

import "time"

// TrackerState is the loop controller's current phase.
type TrackerState int32

const (
	StateIdle TrackerState = iota
	StateFetching
	StateNotifyingCountry
	StateNotifyingSubdivisions
	StateSleeping
	StateStopped
)

func (s TrackerState) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateNotifyingCountry:
		return "notifying_country"
	case StateNotifyingSubdivisions:
		return "notifying_subdivisions"
	case StateSleeping:
		return "sleeping"
	case StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// CycleOutcomeKind decides what the loop does after a cycle.
type CycleOutcomeKind string

const (
	// CycleCompleted: every notification was attempted; long sleep follows.
	CycleCompleted CycleOutcomeKind = "completed"
	// CycleSkipped: the fetch failed, nothing was sent; long sleep follows.
	CycleSkipped CycleOutcomeKind = "skipped"
	// CycleFailed: an unexpected error; short retry sleep follows.
	CycleFailed CycleOutcomeKind = "failed"
	// CycleInterrupted: the context was cancelled mid-cycle.
	CycleInterrupted CycleOutcomeKind = "interrupted"
)

// CycleOutcome reports one cycle.
type CycleOutcome struct {
	Kind     CycleOutcomeKind
	Err      error
	Sent     int
	Failed   int
	Duration time.Duration
}
