package models

import "time"

// SessionPhase is the market phase at an instant.
type SessionPhase string

const (
	PhaseOpen   SessionPhase = "open"
	PhaseClosed SessionPhase = "closed"
)

// SessionState is the countdown target. Owned by the scheduler; recomputed
// from scratch on every tick, never mutated in place.
type SessionState struct {
	Phase    SessionPhase `json:"phase"`
	Boundary time.Time    `json:"boundary"`
	Label    string       `json:"label"`
}

// CountdownTick is one emission of the self-driving clock.
type CountdownTick struct {
	State     SessionState `json:"state"`
	Remaining string       `json:"remaining"` // H:MM:SS, floored at zero
	Now       time.Time    `json:"now"`
}
