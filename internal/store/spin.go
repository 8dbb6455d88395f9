package store

import (
	"database/sql"
	"fmt"

	"github.com/playwatch/rewardd/internal/models"
)

// GetSpinState returns the spin-wheel state for a user, or a zero default.
func (d *DB) GetSpinState(userID string) (*models.SpinState, error) {
	var (
		st       models.SpinState
		lastSpin int64
		cooldown int64
	)
	err := d.conn.QueryRow(`
		SELECT user_id, last_spin_time, spins_today, wins_today, losses_today, cooldown_until
		FROM spin_states WHERE user_id = ?`, userID,
	).Scan(&st.UserID, &lastSpin, &st.SpinsToday, &st.WinsToday, &st.LossesToday, &cooldown)
	if err == sql.ErrNoRows {
		return &models.SpinState{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get spin state for %s: %w", userID, err)
	}

	st.LastSpinTime = timeOrZero(lastSpin)
	st.CooldownUntil = timeOrZero(cooldown)
	return &st, nil
}

// SaveSpinState upserts the spin-wheel state.
func (d *DB) SaveSpinState(st *models.SpinState) error {
	_, err := d.conn.Exec(`
		INSERT INTO spin_states (user_id, last_spin_time, spins_today, wins_today, losses_today, cooldown_until, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(user_id) DO UPDATE SET
			last_spin_time = excluded.last_spin_time,
			spins_today = excluded.spins_today,
			wins_today = excluded.wins_today,
			losses_today = excluded.losses_today,
			cooldown_until = excluded.cooldown_until,
			updated_at = datetime('now')`,
		st.UserID, unixOrZero(st.LastSpinTime), st.SpinsToday, st.WinsToday, st.LossesToday,
		unixOrZero(st.CooldownUntil),
	)
	if err != nil {
		return fmt.Errorf("failed to save spin state for %s: %w", st.UserID, err)
	}
	return nil
}
