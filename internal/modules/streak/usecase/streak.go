package usecase

import (
	"context"
	"sync"
	"time"

	"holystreak/internal/modules/streak/domain"
	streakdto "holystreak/internal/modules/streak/dto"
	streakin "holystreak/internal/modules/streak/port/in"
	"holystreak/internal/modules/streak/service"
	apperrors "holystreak/internal/platform/errors"
)

type Interactor struct {
	svc *service.StreakService
	// resetting serializes resets: a second caller is rejected, not queued.
	resetting sync.Mutex
}

func NewInteractor(svc *service.StreakService) streakin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) (streakdto.StateOutput, error) {
	state, degraded := i.svc.Load(ctx)
	out := toStateOutput(state)
	out.Degraded = degraded
	return out, nil
}

func (i *Interactor) Status(ctx context.Context) (streakdto.StatusOutput, error) {
	state, degraded := i.svc.Load(ctx)
	now := i.svc.NowMillis()
	out := toStateOutput(state)
	out.Degraded = degraded
	return streakdto.StatusOutput{
		State:    out,
		Duration: toDurationOutput(domain.Compute(state, now)),
		At:       time.UnixMilli(now),
	}, nil
}

func (i *Interactor) Compute(input streakdto.ComputeInput) streakdto.DurationOutput {
	return toDurationOutput(domain.Compute(fromStateOutput(input.State), input.At.UnixMilli()))
}

func (i *Interactor) Reset(ctx context.Context, input streakdto.ResetInput) (streakdto.ResetOutput, error) {
	if !i.resetting.TryLock() {
		return streakdto.ResetOutput{}, apperrors.ErrResetInFlight
	}
	defer i.resetting.Unlock()

	previous := fromStateOutput(input.Previous)
	ended := domain.Compute(previous, i.svc.NowMillis())
	next, err := i.svc.Reset(ctx, previous)
	if err != nil {
		return streakdto.ResetOutput{State: input.Previous}, err
	}
	return streakdto.ResetOutput{
		State: toStateOutput(next),
		Ended: toDurationOutput(ended),
	}, nil
}

func toStateOutput(state domain.State) streakdto.StateOutput {
	out := streakdto.StateOutput{Started: state.Started, StartMillis: state.StartMillis}
	if at, ok := state.StartTime(); ok {
		out.StartedAt = at
	}
	return out
}

func fromStateOutput(state streakdto.StateOutput) domain.State {
	if !state.Started {
		return domain.State{}
	}
	return domain.NewState(state.StartMillis)
}

func toDurationOutput(d domain.Duration) streakdto.DurationOutput {
	return streakdto.DurationOutput{
		Days:    d.CompletedCycles,
		Hours:   d.Hours,
		Minutes: d.Minutes,
		Seconds: d.Seconds,
	}
}
