package penalty

import "time"

// Warning types attached to a penalty ruling.
const (
	WarningNormal               = "NORMAL"
	WarningEjection             = "EJECTION"
	WarningEjectionAndSuspended = "EJECTION_AND_SUSPENSION"
)

const (
	// EjectionThreshold penalties in one game gets a player ejected.
	EjectionThreshold = 3
	// SuspensionThreshold penalties across the current and previous
	// game gets an ejection plus a one game suspension.
	SuspensionThreshold = 4
)

// Tracking is the per player, per game penalty record the escalation
// rules are judged against.
type Tracking struct {
	ID                string
	PlayerID          string
	GameID            string
	PenaltyCount      int
	Ejected           bool
	SuspendedNextGame bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Ruling is the escalation outcome for one recorded penalty.
type Ruling struct {
	Ejected      bool
	Suspended    bool
	PenaltyCount int
	Message      string
	WarningType  string
}
