package domain_test

import (
	"errors"
	"testing"

	"holystreak/internal/modules/streak/domain"
	apperrors "holystreak/internal/platform/errors"
)

func TestGateConfirmFlow(t *testing.T) {
	t.Parallel()
	g := domain.Gate{}
	if g.Phase() != domain.GateIdle {
		t.Fatalf("gate must start idle, got %s", g.Phase())
	}
	g = g.Request()
	if !g.Pending() {
		t.Fatalf("expected confirm pending, got %s", g.Phase())
	}
	g, err := g.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !g.Saving() {
		t.Fatalf("expected saving, got %s", g.Phase())
	}
	if _, err := g.Confirm(); !errors.Is(err, apperrors.ErrResetInFlight) {
		t.Fatalf("expected second confirm to be rejected, got %v", err)
	}
	if g.Cancel().Phase() != domain.GateSaving {
		t.Fatalf("cancel must not abort an in-flight save")
	}
	g = g.Resolve(nil)
	if g.Phase() != domain.GateIdle || g.Err() != nil {
		t.Fatalf("expected idle without error, got %s %v", g.Phase(), g.Err())
	}
}

func TestGateCancelAndFailedSave(t *testing.T) {
	t.Parallel()
	g := domain.Gate{}.Request().Cancel()
	if g.Phase() != domain.GateIdle {
		t.Fatalf("expected idle after cancel, got %s", g.Phase())
	}
	if _, err := g.Confirm(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("confirm from idle must fail, got %v", err)
	}

	boom := errors.New("disk full")
	g, _ = g.Request().Confirm()
	g = g.Resolve(boom)
	if !g.Pending() {
		t.Fatalf("failed save must return to confirm pending, got %s", g.Phase())
	}
	if !errors.Is(g.Err(), boom) {
		t.Fatalf("expected last error to be kept, got %v", g.Err())
	}
	if g.Request().Err() == nil {
		t.Fatalf("request while pending is a no-op and keeps the error")
	}
	g, err := g.Confirm()
	if err != nil || g.Err() != nil {
		t.Fatalf("retry confirm should clear the error: %v %v", err, g.Err())
	}
}

func TestGateResolveOutsideSavingIsNoop(t *testing.T) {
	t.Parallel()
	g := domain.Gate{}.Request()
	if got := g.Resolve(nil); got.Phase() != domain.GateConfirmPending {
		t.Fatalf("resolve outside saving must not change the gate, got %s", got.Phase())
	}
}
