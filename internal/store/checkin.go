package store

import (
	"database/sql"
	"fmt"

	"github.com/playwatch/rewardd/internal/models"
)

// GetCheckinState returns the check-in streak state for a user, or a zero default.
func (d *DB) GetCheckinState(userID string) (*models.CheckinState, error) {
	var st models.CheckinState
	err := d.conn.QueryRow(`
		SELECT user_id, last_checkin_date, claimed_days
		FROM checkin_states WHERE user_id = ?`, userID,
	).Scan(&st.UserID, &st.LastCheckinDate, &st.ClaimedDays)
	if err == sql.ErrNoRows {
		return &models.CheckinState{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkin state for %s: %w", userID, err)
	}
	return &st, nil
}

// SaveCheckinState upserts the check-in streak state.
func (d *DB) SaveCheckinState(st *models.CheckinState) error {
	_, err := d.conn.Exec(`
		INSERT INTO checkin_states (user_id, last_checkin_date, claimed_days, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(user_id) DO UPDATE SET
			last_checkin_date = excluded.last_checkin_date,
			claimed_days = excluded.claimed_days,
			updated_at = datetime('now')`,
		st.UserID, st.LastCheckinDate, st.ClaimedDays,
	)
	if err != nil {
		return fmt.Errorf("failed to save checkin state for %s: %w", st.UserID, err)
	}
	return nil
}
