package rewards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/models"
)

func TestTaskFlowAwardsReward(t *testing.T) {
	svc, ads, advance := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartTask(ctx, "u1", models.AdPop)
	if err != nil {
		t.Fatalf("StartTask() error = %v", err)
	}
	if ads.calls != 1 {
		t.Errorf("ad fills = %d, want 1", ads.calls)
	}
	if sess.ViewTime != 10 {
		t.Errorf("view time = %d, want 10", sess.ViewTime)
	}

	advance(11 * time.Second)

	res, err := svc.CompleteTask(ctx, "u1", sess.SessionID)
	if err != nil {
		t.Fatalf("CompleteTask() error = %v", err)
	}
	if res.RewardPoints != config.PolicyFor(models.AdPop).Reward {
		t.Errorf("reward = %d, want %d", res.RewardPoints, config.PolicyFor(models.AdPop).Reward)
	}
	if res.State.CompletedToday != 1 || res.State.CompletedInBatch != 1 {
		t.Errorf("state = %d/%d, want 1/1", res.State.CompletedToday, res.State.CompletedInBatch)
	}

	bal, err := svc.Balance("u1")
	if err != nil {
		t.Fatalf("Balance() error = %v", err)
	}
	if bal != res.RewardPoints {
		t.Errorf("balance = %d, want %d", bal, res.RewardPoints)
	}

	txs, total, err := svc.Transactions("u1", models.TransactionFilters{}, models.Pagination{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if total != 1 || txs[0].Type != config.TxTypeAdReward {
		t.Errorf("history total=%d type=%s", total, txs[0].Type)
	}
}

func TestEarlyCompletionIsVerificationFailure(t *testing.T) {
	svc, _, advance := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartTask(ctx, "u1", models.AdPop)
	if err != nil {
		t.Fatalf("StartTask() error = %v", err)
	}

	advance(3 * time.Second) // pop requires 10s

	if _, err := svc.CompleteTask(ctx, "u1", sess.SessionID); !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("CompleteTask() error = %v, want ErrVerificationFailed", err)
	}

	// No mutation: no points, no counter movement.
	bal, _ := svc.Balance("u1")
	if bal != 0 {
		t.Errorf("balance = %d after forged completion, want 0", bal)
	}
	snap, _ := svc.Snapshot("u1")
	for _, st := range snap.AdStates {
		if st.CompletedToday != 0 {
			t.Errorf("%s counter moved: %d", st.Category, st.CompletedToday)
		}
	}

	// The discarded session cannot be completed later either.
	advance(time.Minute)
	if _, err := svc.CompleteTask(ctx, "u1", sess.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("retry error = %v, want ErrSessionNotFound", err)
	}
}

func TestStartTaskAdUnavailable(t *testing.T) {
	svc, ads, _ := newTestService(t)
	ads.err = errors.New("no fill")

	_, err := svc.StartTask(context.Background(), "u1", models.AdPop)
	if !errors.Is(err, ErrAdUnavailable) {
		t.Fatalf("StartTask() error = %v, want ErrAdUnavailable", err)
	}

	// No session was left behind.
	ads.err = nil
	if _, err := svc.StartTask(context.Background(), "u1", models.AdPop); err != nil {
		t.Errorf("retry StartTask() error = %v", err)
	}
}

func TestOneSessionPerUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.StartTask(ctx, "u1", models.AdPop); err != nil {
		t.Fatalf("StartTask() error = %v", err)
	}
	if _, err := svc.StartTask(ctx, "u1", models.AdWebsite); !errors.Is(err, ErrTaskActive) {
		t.Errorf("second StartTask() error = %v, want ErrTaskActive", err)
	}
	if _, err := svc.StartSpin(ctx, "u1"); !errors.Is(err, ErrTaskActive) {
		t.Errorf("StartSpin() during task error = %v, want ErrTaskActive", err)
	}

	// A different user is unaffected.
	if _, err := svc.StartTask(ctx, "u2", models.AdPop); err != nil {
		t.Errorf("other user StartTask() error = %v", err)
	}
}

func TestCancelTaskFreesSlotWithoutReward(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.StartTask(ctx, "u1", models.AdPop)
	if err != nil {
		t.Fatalf("StartTask() error = %v", err)
	}
	if err := svc.CancelTask("u1", sess.SessionID); err != nil {
		t.Fatalf("CancelTask() error = %v", err)
	}

	bal, _ := svc.Balance("u1")
	if bal != 0 {
		t.Errorf("balance = %d after cancel, want 0", bal)
	}
	if _, err := svc.StartTask(ctx, "u1", models.AdPop); err != nil {
		t.Errorf("StartTask() after cancel error = %v", err)
	}
}

func TestStartTaskGates(t *testing.T) {
	svc, _, advance := newTestService(t)
	ctx := context.Background()

	// Walk pop to its batch boundary: 5 completions arm the 5 min cooldown.
	for i := 0; i < 5; i++ {
		sess, err := svc.StartTask(ctx, "u1", models.AdPop)
		if err != nil {
			t.Fatalf("StartTask() #%d error = %v", i+1, err)
		}
		advance(11 * time.Second)
		if _, err := svc.CompleteTask(ctx, "u1", sess.SessionID); err != nil {
			t.Fatalf("CompleteTask() #%d error = %v", i+1, err)
		}
	}

	if _, err := svc.StartTask(ctx, "u1", models.AdPop); !errors.Is(err, ErrCoolingDown) {
		t.Errorf("StartTask() during batch cooldown error = %v, want ErrCoolingDown", err)
	}

	advance(6 * time.Minute)
	if _, err := svc.StartTask(ctx, "u1", models.AdPop); err != nil {
		t.Errorf("StartTask() after cooldown error = %v", err)
	}
}

func TestStartTaskInvalidCategory(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.StartTask(context.Background(), "u1", "banner"); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("StartTask() error = %v, want ErrInvalidCategory", err)
	}
}
