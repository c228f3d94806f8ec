package dto

import "time"

type StateOutput struct {
	Started     bool
	StartMillis int64
	StartedAt   time.Time
	// Degraded is set when the stored value could not be read and the
	// state fell back to not started.
	Degraded bool
}

type DurationOutput struct {
	Days    int64
	Hours   int
	Minutes int
	Seconds int
}

type StatusOutput struct {
	State    StateOutput
	Duration DurationOutput
	At       time.Time
}

type ComputeInput struct {
	State StateOutput
	At    time.Time
}

type ResetInput struct {
	Previous StateOutput
}

type ResetOutput struct {
	State StateOutput
	Ended DurationOutput
}
