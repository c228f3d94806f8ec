package in

import (
	"context"
	"time"

	streakdto "holystreak/internal/modules/streak/dto"
	streakin "holystreak/internal/modules/streak/port/in"
)

type CLIHandler struct {
	usecase streakin.Usecase
}

func NewCLIHandler(usecase streakin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) (streakdto.StateOutput, error) {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (streakdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Compute(state streakdto.StateOutput, at time.Time) streakdto.DurationOutput {
	return h.usecase.Compute(streakdto.ComputeInput{State: state, At: at})
}

func (h CLIHandler) Reset(ctx context.Context, previous streakdto.StateOutput) (streakdto.ResetOutput, error) {
	return h.usecase.Reset(ctx, streakdto.ResetInput{Previous: previous})
}

// ResetCurrent reloads the stored state before resetting, for one-shot callers
// that hold no in-memory state.
func (h CLIHandler) ResetCurrent(ctx context.Context) (streakdto.ResetOutput, error) {
	previous, err := h.usecase.Load(ctx)
	if err != nil {
		return streakdto.ResetOutput{}, err
	}
	return h.Reset(ctx, previous)
}
