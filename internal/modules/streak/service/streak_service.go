package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"holystreak/internal/modules/streak/domain"
	streakout "holystreak/internal/modules/streak/port/out"
	"holystreak/internal/platform/clock"
)

type StreakService struct {
	clock  clock.Clock
	store  streakout.TimestampStore
	logger *zap.Logger
}

func NewStreakService(clock clock.Clock, store streakout.TimestampStore, logger *zap.Logger) *StreakService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreakService{clock: clock, store: store, logger: logger}
}

// Load reads the persisted state. Read failures degrade to the absent state
// and report degraded=true.
func (s *StreakService) Load(ctx context.Context) (state domain.State, degraded bool) {
	millis, ok, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Debug("streak load cancelled", zap.Error(err))
		} else {
			s.logger.Warn("streak load failed, treating as not started", zap.Error(err))
		}
		return domain.State{}, true
	}
	if !ok {
		s.logger.Debug("no streak stored")
		return domain.State{}, false
	}
	return domain.NewState(millis), false
}

func (s *StreakService) NowMillis() int64 {
	return s.clock.Now().UnixMilli()
}

// Reset writes a new start timestamp. The previous state is left untouched
// when the save fails.
func (s *StreakService) Reset(ctx context.Context, previous domain.State) (domain.State, error) {
	now := s.NowMillis()
	start := domain.NextStart(previous, now)
	if start != now {
		s.logger.Warn("clock is behind the stored streak start, keeping previous start",
			zap.Int64("now_ms", now),
			zap.Int64("start_ms", previous.StartMillis),
		)
	}
	if err := s.store.Save(ctx, start); err != nil {
		s.logger.Error("streak reset failed", zap.Error(err))
		return previous, err
	}
	s.logger.Info("streak reset", zap.Int64("start_ms", start))
	return domain.NewState(start), nil
}
