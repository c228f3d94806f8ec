package domain

import apperrors "holystreak/internal/platform/errors"

// GatePhase is the variant of the reset confirmation gate.
type GatePhase int

const (
	GateIdle GatePhase = iota
	GateConfirmPending
	GateSaving
)

func (p GatePhase) String() string {
	switch p {
	case GateIdle:
		return "idle"
	case GateConfirmPending:
		return "confirm-pending"
	case GateSaving:
		return "saving"
	}
	return "unknown"
}

// Gate guards the destructive reset behind an explicit confirmation. Only one
// save may be in flight; a failed save drops back to ConfirmPending so the
// user can retry or cancel.
type Gate struct {
	phase   GatePhase
	lastErr error
}

func (g Gate) Phase() GatePhase { return g.phase }

// Err is the error of the last failed save, cleared by any other transition.
func (g Gate) Err() error { return g.lastErr }

func (g Gate) Pending() bool { return g.phase == GateConfirmPending }

func (g Gate) Saving() bool { return g.phase == GateSaving }

// Request opens the confirmation. It is a no-op unless the gate is idle.
func (g Gate) Request() Gate {
	if g.phase != GateIdle {
		return g
	}
	return Gate{phase: GateConfirmPending}
}

// Cancel closes a pending confirmation. An in-flight save cannot be cancelled.
func (g Gate) Cancel() Gate {
	if g.phase != GateConfirmPending {
		return g
	}
	return Gate{phase: GateIdle}
}

// Confirm moves a pending confirmation to saving. The caller must start the
// save only when err is nil.
func (g Gate) Confirm() (Gate, error) {
	switch g.phase {
	case GateConfirmPending:
		return Gate{phase: GateSaving}, nil
	case GateSaving:
		return g, apperrors.ErrResetInFlight
	default:
		return g, apperrors.ErrInvalidInput
	}
}

// Resolve records the outcome of the save started by Confirm.
func (g Gate) Resolve(saveErr error) Gate {
	if g.phase != GateSaving {
		return g
	}
	if saveErr != nil {
		return Gate{phase: GateConfirmPending, lastErr: saveErr}
	}
	return Gate{phase: GateIdle}
}
