package rewards

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/models"
	"github.com/playwatch/rewardd/internal/validate"
)

// Withdraw converts points into a pending cash payout on one of the payout
// rails. Points are deducted up front; if the request cannot be recorded the
// deduction is rolled back.
func (s *Service) Withdraw(userID string, points int64, rail, address string) (*models.Withdrawal, error) {
	if points < s.cfg.MinWithdrawPoints {
		return nil, fmt.Errorf("%w: minimum is %d points", ErrWithdrawBelowMin, s.cfg.MinWithdrawPoints)
	}
	if !validRail(rail) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRail, rail)
	}
	if err := validate.PayoutAddress(rail, address, s.cfg.Network); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	if err := s.store.DeductPoints(userID, points); err != nil {
		return nil, err
	}

	w := &models.Withdrawal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Points:      points,
		AmountCents: points / s.cfg.PointsPerCent,
		Rail:        rail,
		Address:     address,
		Status:      models.WithdrawalPending,
	}
	if err := s.store.CreateWithdrawal(w); err != nil {
		if rbErr := s.store.RefundPoints(userID, points); rbErr != nil {
			slog.Error("refund after failed withdrawal create failed",
				"userID", userID,
				"points", points,
				"error", rbErr,
			)
		}
		return nil, err
	}

	tx := &models.RewardTransaction{
		UserID: userID,
		Type:   config.TxTypeWithdrawal,
		Amount: points,
		Debit:  true,
		Icon:   config.TxIcons[config.TxTypeWithdrawal],
		Note:   w.ID,
	}
	if err := s.store.RecordTransaction(tx); err != nil {
		// The withdrawal itself is already on record; history stays best-effort.
		slog.Warn("failed to record withdrawal history entry",
			"userID", userID,
			"withdrawalID", w.ID,
			"error", err,
		)
	}

	slog.Info("withdrawal requested",
		"userID", userID,
		"withdrawalID", w.ID,
		"points", points,
		"cents", w.AmountCents,
		"rail", rail,
	)
	return w, nil
}

// Withdrawals lists the user's withdrawal requests, newest first.
func (s *Service) Withdrawals(userID string) ([]models.Withdrawal, error) {
	return s.store.ListWithdrawals(userID)
}

func validRail(rail string) bool {
	for _, r := range config.PayoutRails {
		if r == rail {
			return true
		}
	}
	return false
}
