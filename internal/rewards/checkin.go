package rewards

import (
	"log/slog"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/engine"
	"github.com/playwatch/rewardd/internal/models"
)

// CheckinStatus describes the streak and what today's claim would pay.
type CheckinStatus struct {
	State          models.CheckinState `json:"state"`
	CanClaim       bool                `json:"can_claim"`
	SurpriseReady  bool                `json:"surprise_ready"`
	RewardTable    []int64             `json:"reward_table"`
	SurpriseReward int64               `json:"surprise_reward"`
}

// CheckinClaim is the outcome of a successful claim.
type CheckinClaim struct {
	State        models.CheckinState `json:"state"`
	RewardPoints int64               `json:"reward_points"`
	RewardLabel  string              `json:"reward_label"`
}

// CheckinStatus returns the user's streak state and today's eligibility.
func (s *Service) CheckinStatus(userID string) (*CheckinStatus, error) {
	st, err := s.store.GetCheckinState(userID)
	if err != nil {
		return nil, err
	}
	return &CheckinStatus{
		State:          *st,
		CanClaim:       engine.CanClaimToday(*st, s.today()),
		SurpriseReady:  st.ClaimedDays == len(config.CheckinRewards),
		RewardTable:    config.CheckinRewards,
		SurpriseReward: config.SurpriseBoxReward,
	}, nil
}

// ClaimCheckin claims today's check-in. A surprise-box claim requires the
// full standard cycle to be complete; it resets the streak.
func (s *Service) ClaimCheckin(userID string, surpriseBox bool) (*CheckinClaim, error) {
	today := s.today()

	st, err := s.store.GetCheckinState(userID)
	if err != nil {
		return nil, err
	}
	if !engine.CanClaimToday(*st, today) {
		return nil, ErrAlreadyCheckedIn
	}
	if surpriseBox && st.ClaimedDays != len(config.CheckinRewards) {
		return nil, ErrSurpriseNotReady
	}

	res := engine.ClaimCheckin(*st, surpriseBox, today, config.CheckinRewards, config.SurpriseBoxReward)
	if err := s.store.SaveCheckinState(&res.State); err != nil {
		return nil, err
	}

	txType := config.TxTypeCheckinBonus
	if surpriseBox {
		txType = config.TxTypeSurpriseBox
	}
	if err := s.award(userID, res.RewardPoints, txType, res.RewardLabel); err != nil {
		return nil, err
	}

	slog.Info("check-in claimed",
		"userID", userID,
		"label", res.RewardLabel,
		"claimedDays", res.State.ClaimedDays,
		"reward", res.RewardPoints,
	)
	return &CheckinClaim{
		State:        res.State,
		RewardPoints: res.RewardPoints,
		RewardLabel:  res.RewardLabel,
	}, nil
}
