package domain_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"holystreak/internal/modules/streak/domain"
)

func TestComputeTable(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC).UnixMilli()
	cases := []struct {
		name  string
		state domain.State
		now   int64
		want  domain.Duration
	}{
		{name: "absent", state: domain.State{}, now: start, want: domain.Duration{}},
		{name: "absent ignores now", state: domain.State{}, now: start + 5*domain.CycleMillis, want: domain.Duration{}},
		{name: "instant of reset", state: domain.NewState(start), now: start, want: domain.Duration{}},
		{name: "one second", state: domain.NewState(start), now: start + 1000, want: domain.Duration{Seconds: 1}},
		{name: "sub second discarded", state: domain.NewState(start), now: start + 1999, want: domain.Duration{Seconds: 1}},
		{name: "one full cycle", state: domain.NewState(start), now: start + 86_400_000, want: domain.Duration{CompletedCycles: 1}},
		{name: "one cycle plus 1h1m1s", state: domain.NewState(start), now: start + 90_061_000, want: domain.Duration{CompletedCycles: 1, Hours: 1, Minutes: 1, Seconds: 1}},
		{name: "counts up at 25 hours", state: domain.NewState(start), now: start + 25*3_600_000, want: domain.Duration{CompletedCycles: 1, Hours: 1}},
		{name: "last second of cycle", state: domain.NewState(start), now: start + domain.CycleMillis - 1, want: domain.Duration{Hours: 23, Minutes: 59, Seconds: 59}},
		{name: "clock rolled back", state: domain.NewState(start), now: start - 3_600_000, want: domain.Duration{}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.Compute(tc.state, tc.now); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestComputeSpansFullInt64Range(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		start int64
		now   int64
		want  domain.Duration
	}{
		{name: "min start", start: math.MinInt64, now: 1_767_225_600_000, want: domain.Duration{CompletedCycles: 106_752_011_621, Hours: 7, Minutes: 12, Seconds: 55}},
		{name: "widest gap", start: math.MinInt64, now: math.MaxInt64, want: domain.Duration{CompletedCycles: 213_503_982_334, Hours: 14, Minutes: 25, Seconds: 51}},
		{name: "max start rolled back", start: math.MaxInt64, now: math.MinInt64, want: domain.Duration{}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.Compute(domain.NewState(tc.start), tc.now); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestComputeIsDeterministicAndBounded(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		start := rng.Int63n(1 << 42)
		now := start + rng.Int63n(400*domain.CycleMillis) - 10*domain.CycleMillis
		state := domain.NewState(start)

		first := domain.Compute(state, now)
		second := domain.Compute(state, now)
		if first != second {
			t.Fatalf("compute not deterministic for (%d, %d): %+v vs %+v", start, now, first, second)
		}
		if first.CompletedCycles < 0 || first.Hours < 0 || first.Hours > 23 || first.Minutes < 0 || first.Minutes > 59 || first.Seconds < 0 || first.Seconds > 59 {
			t.Fatalf("component out of range for (%d, %d): %+v", start, now, first)
		}
		if now < start && !first.IsZero() {
			t.Fatalf("expected clamp to zero for now < start, got %+v", first)
		}
	}
}

func TestNextStartNeverMovesBackwards(t *testing.T) {
	t.Parallel()
	if got := domain.NextStart(domain.State{}, 100); got != 100 {
		t.Fatalf("expected now for absent state, got %d", got)
	}
	if got := domain.NextStart(domain.NewState(50), 100); got != 100 {
		t.Fatalf("expected now for earlier start, got %d", got)
	}
	if got := domain.NextStart(domain.NewState(500), 100); got != 500 {
		t.Fatalf("expected previous start to be kept on rollback, got %d", got)
	}
}

func TestStartTime(t *testing.T) {
	t.Parallel()
	if _, ok := (domain.State{}).StartTime(); ok {
		t.Fatalf("absent state must not report a start time")
	}
	at := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	got, ok := domain.NewState(at.UnixMilli()).StartTime()
	if !ok || !got.Equal(at) {
		t.Fatalf("expected %s, got %s (ok=%v)", at, got, ok)
	}
}
