package oplog

import "time"

// Outcome values for a recorded operation.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Record is one completed fleet operation. Records are written after the
// fact, so there is no in-progress state to resume.
type Record struct {
	// ID is the auto-increment primary key (assigned on insert).
	ID int64

	// Op names the operation, e.g. "start", "stop", "create", "firewall".
	Op string

	// Instance is the target instance name, empty for fleet-wide ops.
	Instance string

	// Zone is the target zone, when one applies.
	Zone string

	// Provider is the provider the operation ran against (e.g. "gcloud").
	Provider string

	// Outcome is OutcomeOK or OutcomeError.
	Outcome string

	// Detail carries the error text when Outcome is OutcomeError.
	Detail string

	// Duration is how long the operation took.
	Duration time.Duration

	// CreatedAt is when the operation finished.
	CreatedAt time.Time
}
