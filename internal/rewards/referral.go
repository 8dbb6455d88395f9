package rewards

import (
	"errors"
	"log/slog"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/models"
	"github.com/playwatch/rewardd/internal/store"
)

// Referral returns the user's referral record, creating the code on first use.
func (s *Service) Referral(userID string) (*models.ReferralStats, error) {
	return s.store.GetOrCreateReferral(userID)
}

// ApplyReferralCode links the user to the code's owner and credits the owner
// the referral bonus. Each user can be referred at most once; self-referral
// is rejected.
func (s *Service) ApplyReferralCode(userID, code string) error {
	if _, err := s.store.GetOrCreateReferral(userID); err != nil {
		return err
	}

	owner, err := s.store.FindReferralByCode(code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReferralInvalid
		}
		return err
	}
	if owner.UserID == userID {
		return ErrReferralInvalid
	}

	if err := s.store.SetReferredBy(userID, owner.UserID); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return ErrReferralApplied
		}
		return err
	}

	if err := s.store.RecordReferral(owner.UserID); err != nil {
		return err
	}
	if err := s.award(owner.UserID, s.cfg.ReferralBonus, config.TxTypeReferralBonus, userID); err != nil {
		return err
	}

	slog.Info("referral applied",
		"userID", userID,
		"referrerID", owner.UserID,
		"bonus", s.cfg.ReferralBonus,
	)
	return nil
}
