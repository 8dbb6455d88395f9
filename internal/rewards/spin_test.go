package rewards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playwatch/rewardd/internal/config"
)

func completeOneSpin(t *testing.T, svc *Service, advance func(time.Duration), userID string) *SpinResult {
	t.Helper()

	sess, err := svc.StartSpin(context.Background(), userID)
	if err != nil {
		t.Fatalf("StartSpin() error = %v", err)
	}
	advance(config.SpinViewTime + time.Second)

	res, err := svc.CompleteSpin(context.Background(), userID, sess.SessionID)
	if err != nil {
		t.Fatalf("CompleteSpin() error = %v", err)
	}
	return res
}

func TestSpinDayConvergesToQuota(t *testing.T) {
	svc, _, advance := newTestService(t)

	var wins, losses int
	for i := 0; i < svc.cfg.MaxSpinsPerDay; i++ {
		res := completeOneSpin(t, svc, advance, "u1")
		if res.Win {
			wins++
			if !res.Segment.Win || res.Segment.Points == 0 {
				t.Errorf("winning spin drew segment %+v", res.Segment)
			}
		} else {
			losses++
			if res.Segment.Win || res.Segment.Points != 0 {
				t.Errorf("losing spin drew segment %+v", res.Segment)
			}
		}
		advance(config.SpinCooldown) // clear the short cooldown
	}

	if wins != svc.cfg.SpinWinQuota {
		t.Errorf("wins = %d over a full day, want exactly %d", wins, svc.cfg.SpinWinQuota)
	}
	if losses != svc.cfg.MaxSpinsPerDay-svc.cfg.SpinWinQuota {
		t.Errorf("losses = %d, want %d", losses, svc.cfg.MaxSpinsPerDay-svc.cfg.SpinWinQuota)
	}

	// Points were credited for every win.
	bal, _ := svc.Balance("u1")
	if bal == 0 {
		t.Error("balance = 0 after a full spin day with wins")
	}

	// The eleventh spin is refused.
	if _, err := svc.StartSpin(context.Background(), "u1"); !errors.Is(err, ErrSpinLimitReached) {
		t.Errorf("StartSpin() past limit error = %v, want ErrSpinLimitReached", err)
	}
}

func TestSpinShortCooldownBetweenSpins(t *testing.T) {
	svc, _, advance := newTestService(t)

	completeOneSpin(t, svc, advance, "u1")

	if _, err := svc.StartSpin(context.Background(), "u1"); !errors.Is(err, ErrCoolingDown) {
		t.Errorf("StartSpin() during cooldown error = %v, want ErrCoolingDown", err)
	}

	advance(config.SpinCooldown + time.Second)
	if _, err := svc.StartSpin(context.Background(), "u1"); err != nil {
		t.Errorf("StartSpin() after cooldown error = %v", err)
	}
}

func TestEarlySpinCompletionRejected(t *testing.T) {
	svc, _, advance := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSpin(ctx, "u1")
	if err != nil {
		t.Fatalf("StartSpin() error = %v", err)
	}

	advance(5 * time.Second) // spin takes 20s

	if _, err := svc.CompleteSpin(ctx, "u1", sess.SessionID); !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("CompleteSpin() error = %v, want ErrVerificationFailed", err)
	}

	snap, _ := svc.Snapshot("u1")
	if snap.Spin.SpinsToday != 0 {
		t.Errorf("SpinsToday = %d after forged spin, want 0", snap.Spin.SpinsToday)
	}
}

func TestCancelSpin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartSpin(ctx, "u1")
	if err != nil {
		t.Fatalf("StartSpin() error = %v", err)
	}
	if err := svc.CancelSpin("u1", sess.SessionID); err != nil {
		t.Fatalf("CancelSpin() error = %v", err)
	}

	snap, _ := svc.Snapshot("u1")
	if snap.Spin.SpinsToday != 0 {
		t.Errorf("SpinsToday = %d after cancel, want 0", snap.Spin.SpinsToday)
	}
	if _, err := svc.StartSpin(ctx, "u1"); err != nil {
		t.Errorf("StartSpin() after cancel error = %v", err)
	}
}
