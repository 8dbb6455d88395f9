package rewards

import (
	"errors"
	"testing"
	"time"

	"github.com/playwatch/rewardd/internal/config"
)

func TestCheckinClaimOncePerDay(t *testing.T) {
	svc, _, advance := newTestService(t)

	claim, err := svc.ClaimCheckin("u1", false)
	if err != nil {
		t.Fatalf("ClaimCheckin() error = %v", err)
	}
	if claim.State.ClaimedDays != 1 || claim.RewardPoints != config.CheckinRewards[0] {
		t.Errorf("first claim = day %d / %d pts, want day 1 / %d pts",
			claim.State.ClaimedDays, claim.RewardPoints, config.CheckinRewards[0])
	}

	if _, err := svc.ClaimCheckin("u1", false); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("same-day claim error = %v, want ErrAlreadyCheckedIn", err)
	}

	advance(24 * time.Hour)
	claim, err = svc.ClaimCheckin("u1", false)
	if err != nil {
		t.Fatalf("next-day ClaimCheckin() error = %v", err)
	}
	if claim.State.ClaimedDays != 2 || claim.RewardPoints != config.CheckinRewards[1] {
		t.Errorf("second claim = day %d / %d pts", claim.State.ClaimedDays, claim.RewardPoints)
	}
}

func TestSurpriseBoxCycle(t *testing.T) {
	svc, _, advance := newTestService(t)

	var earned int64
	for day := 0; day < len(config.CheckinRewards); day++ {
		claim, err := svc.ClaimCheckin("u1", false)
		if err != nil {
			t.Fatalf("day %d ClaimCheckin() error = %v", day+1, err)
		}
		earned += claim.RewardPoints
		advance(24 * time.Hour)
	}

	status, err := svc.CheckinStatus("u1")
	if err != nil {
		t.Fatalf("CheckinStatus() error = %v", err)
	}
	if !status.SurpriseReady {
		t.Fatal("surprise box should be ready after the full cycle")
	}

	claim, err := svc.ClaimCheckin("u1", true)
	if err != nil {
		t.Fatalf("surprise ClaimCheckin() error = %v", err)
	}
	if claim.RewardPoints != config.SurpriseBoxReward || claim.State.ClaimedDays != 0 {
		t.Errorf("surprise claim = %d pts, day %d; want %d pts, day 0",
			claim.RewardPoints, claim.State.ClaimedDays, config.SurpriseBoxReward)
	}
	earned += claim.RewardPoints

	bal, _ := svc.Balance("u1")
	if bal != earned {
		t.Errorf("balance = %d, want %d", bal, earned)
	}

	// The next day starts a fresh cycle at day 1.
	advance(24 * time.Hour)
	claim, err = svc.ClaimCheckin("u1", false)
	if err != nil {
		t.Fatalf("new-cycle ClaimCheckin() error = %v", err)
	}
	if claim.State.ClaimedDays != 1 {
		t.Errorf("new cycle day = %d, want 1", claim.State.ClaimedDays)
	}
}

func TestSurpriseBoxNotReady(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.ClaimCheckin("u1", true); !errors.Is(err, ErrSurpriseNotReady) {
		t.Errorf("premature surprise claim error = %v, want ErrSurpriseNotReady", err)
	}
}
