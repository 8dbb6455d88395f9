package store

import (
	"database/sql"
	"fmt"

	"github.com/playwatch/rewardd/internal/models"
)

// GetAutoAdState returns the auto-ad state for a user, or a zero default.
func (d *DB) GetAutoAdState(userID string) (*models.AutoAdState, error) {
	var (
		st       models.AutoAdState
		enabled  int
		disabled int
	)
	err := d.conn.QueryRow(`
		SELECT user_id, enabled, failures_today, disabled_for_day
		FROM auto_ad_states WHERE user_id = ?`, userID,
	).Scan(&st.UserID, &enabled, &st.FailuresToday, &disabled)
	if err == sql.ErrNoRows {
		return &models.AutoAdState{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auto-ad state for %s: %w", userID, err)
	}

	st.Enabled = enabled != 0
	st.DisabledForDay = disabled != 0
	return &st, nil
}

// SaveAutoAdState upserts the auto-ad state.
func (d *DB) SaveAutoAdState(st *models.AutoAdState) error {
	_, err := d.conn.Exec(`
		INSERT INTO auto_ad_states (user_id, enabled, failures_today, disabled_for_day)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			enabled = excluded.enabled,
			failures_today = excluded.failures_today,
			disabled_for_day = excluded.disabled_for_day`,
		st.UserID, boolToInt(st.Enabled), st.FailuresToday, boolToInt(st.DisabledForDay),
	)
	if err != nil {
		return fmt.Errorf("failed to save auto-ad state for %s: %w", st.UserID, err)
	}
	return nil
}

// ListAutoAdEnabled returns the auto-ad state of every opted-in user.
func (d *DB) ListAutoAdEnabled() ([]models.AutoAdState, error) {
	rows, err := d.conn.Query(`
		SELECT user_id, enabled, failures_today, disabled_for_day
		FROM auto_ad_states WHERE enabled = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-ad users: %w", err)
	}
	defer rows.Close()

	var out []models.AutoAdState
	for rows.Next() {
		var (
			st       models.AutoAdState
			enabled  int
			disabled int
		)
		if err := rows.Scan(&st.UserID, &enabled, &st.FailuresToday, &disabled); err != nil {
			return nil, fmt.Errorf("failed to scan auto-ad row: %w", err)
		}
		st.Enabled = enabled != 0
		st.DisabledForDay = disabled != 0
		out = append(out, st)
	}
	return out, rows.Err()
}
