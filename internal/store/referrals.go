package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/playwatch/rewardd/internal/models"
)

// GetOrCreateReferral retrieves the referral record for a user, generating a
// referral code on first access.
func (d *DB) GetOrCreateReferral(userID string) (*models.ReferralStats, error) {
	code := newReferralCode()
	_, err := d.conn.Exec(`
		INSERT OR IGNORE INTO referrals (user_id, code, referred_by, total, today)
		VALUES (?, ?, '', 0, 0)`,
		userID, code,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure referral row for %s: %w", userID, err)
	}

	r := &models.ReferralStats{}
	err = d.conn.QueryRow(`
		SELECT user_id, code, referred_by, total, today
		FROM referrals WHERE user_id = ?`, userID,
	).Scan(&r.UserID, &r.Code, &r.ReferredBy, &r.Total, &r.Today)
	if err != nil {
		return nil, fmt.Errorf("failed to get referral for %s: %w", userID, err)
	}
	return r, nil
}

// FindReferralByCode returns the referral record owning a code.
func (d *DB) FindReferralByCode(code string) (*models.ReferralStats, error) {
	r := &models.ReferralStats{}
	err := d.conn.QueryRow(`
		SELECT user_id, code, referred_by, total, today
		FROM referrals WHERE code = ?`, code,
	).Scan(&r.UserID, &r.Code, &r.ReferredBy, &r.Total, &r.Today)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find referral code %s: %w", code, err)
	}
	return r, nil
}

// SetReferredBy marks a user as referred. Fails with ErrDuplicate if the
// user was already referred by someone.
func (d *DB) SetReferredBy(userID, referrerID string) error {
	res, err := d.conn.Exec(`
		UPDATE referrals SET referred_by = ?
		WHERE user_id = ? AND referred_by = ''`,
		referrerID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set referred_by for %s: %w", userID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check referred_by result for %s: %w", userID, err)
	}
	if affected == 0 {
		return ErrDuplicate
	}
	return nil
}

// RecordReferral bumps the referrer's total and today counters atomically.
func (d *DB) RecordReferral(referrerID string) error {
	_, err := d.conn.Exec(`
		UPDATE referrals SET total = total + 1, today = today + 1
		WHERE user_id = ?`,
		referrerID,
	)
	if err != nil {
		return fmt.Errorf("failed to record referral for %s: %w", referrerID, err)
	}

	slog.Info("referral recorded", "referrerID", referrerID)
	return nil
}

// newReferralCode derives a short shareable code from a random UUID.
func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
