package rewards

import (
	"github.com/playwatch/rewardd/internal/models"
)

// Snapshot is the full reward state of one user, the single payload the
// client needs to render every reward surface.
type Snapshot struct {
	UserID      string                   `json:"user_id"`
	Points      int64                    `json:"points"`
	TotalEarned int64                    `json:"total_earned"`
	AdStates    []models.AdCategoryState `json:"ad_states"`
	Spin        models.SpinState         `json:"spin"`
	Checkin     models.CheckinState      `json:"checkin"`
	Referral    models.ReferralStats     `json:"referral"`
	AutoAd      models.AutoAdState       `json:"auto_ad"`
}

// Snapshot aggregates every per-user reward state in one read.
func (s *Service) Snapshot(userID string) (*Snapshot, error) {
	points, err := s.store.GetBalance(userID)
	if err != nil {
		return nil, err
	}
	total, err := s.store.GetTotalEarned(userID)
	if err != nil {
		return nil, err
	}
	adStates, err := s.store.GetAdStates(userID)
	if err != nil {
		return nil, err
	}
	spin, err := s.store.GetSpinState(userID)
	if err != nil {
		return nil, err
	}
	checkin, err := s.store.GetCheckinState(userID)
	if err != nil {
		return nil, err
	}
	referral, err := s.store.GetOrCreateReferral(userID)
	if err != nil {
		return nil, err
	}
	autoAd, err := s.store.GetAutoAdState(userID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		UserID:      userID,
		Points:      points,
		TotalEarned: total,
		AdStates:    adStates,
		Spin:        *spin,
		Checkin:     *checkin,
		Referral:    *referral,
		AutoAd:      *autoAd,
	}, nil
}

// Transactions returns a page of the user's reward history.
func (s *Service) Transactions(userID string, filters models.TransactionFilters, page models.Pagination) ([]models.RewardTransaction, int64, error) {
	return s.store.ListTransactions(userID, filters, page)
}

// Balance returns the user's spendable points.
func (s *Service) Balance(userID string) (int64, error) {
	return s.store.GetBalance(userID)
}
