package domain

import "time"

// StorageKey is the only key ever written to the persistence store.
const StorageKey = "streakResetTimestamp"

// CycleMillis is the length of one streak cycle.
const CycleMillis int64 = 24 * 60 * 60 * 1000

// State is the durable streak state. Started is false until the first reset.
type State struct {
	StartMillis int64
	Started     bool
}

func NewState(startMillis int64) State {
	return State{StartMillis: startMillis, Started: true}
}

// StartTime returns the streak start in local wall-clock time.
func (s State) StartTime() (time.Time, bool) {
	if !s.Started {
		return time.Time{}, false
	}
	return time.UnixMilli(s.StartMillis), true
}

// Duration is the display breakdown of a running streak. Hours, Minutes and
// Seconds count up inside the current, not yet completed cycle.
type Duration struct {
	CompletedCycles int64
	Hours           int
	Minutes         int
	Seconds         int
}

func (d Duration) IsZero() bool {
	return d == Duration{}
}

// Compute maps a streak state and the current time to its display duration.
// A clock that reads earlier than the start is clamped to zero elapsed.
func Compute(state State, nowMillis int64) Duration {
	if !state.Started || nowMillis <= state.StartMillis {
		return Duration{}
	}
	// now > start, so the unsigned difference is exact over the whole int64 range.
	elapsed := uint64(nowMillis) - uint64(state.StartMillis)
	inCycle := elapsed % uint64(CycleMillis)
	secs := inCycle / 1000
	return Duration{
		CompletedCycles: int64(elapsed / uint64(CycleMillis)),
		Hours:           int(secs / 3600),
		Minutes:         int(secs % 3600 / 60),
		Seconds:         int(secs % 60),
	}
}

// NextStart picks the start timestamp written by a reset. The stored start
// never moves backwards, even when the clock has been rolled back.
func NextStart(previous State, nowMillis int64) int64 {
	if previous.Started && previous.StartMillis > nowMillis {
		return previous.StartMillis
	}
	return nowMillis
}
