package store

import (
	"database/sql"
	"fmt"
	"log/slog"
)

const metaLastResetDate = "last_reset_date"

// LastResetDate returns the calendar date of the last completed daily reset,
// or "" if a reset has never run.
func (d *DB) LastResetDate() (string, error) {
	var date string
	err := d.conn.QueryRow(`SELECT value FROM app_meta WHERE key = ?`, metaLastResetDate).Scan(&date)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read last reset date: %w", err)
	}
	return date, nil
}

// ResetDaily performs the midnight sweep for the given calendar date:
// ad counters and gates, spin per-day counters, referral today counters,
// and auto-ad failure tracking all return to their day-start values.
// Check-in streaks survive the reset; missing a day simply stalls the cycle.
//
// The sweep is idempotent per date. It returns true when the sweep ran and
// false when the date was already swept.
func (d *DB) ResetDaily(today string) (bool, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback()

	var last string
	err = tx.QueryRow(`SELECT value FROM app_meta WHERE key = ?`, metaLastResetDate).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to read last reset date: %w", err)
	}
	if last == today {
		return false, nil
	}

	sweeps := []struct {
		name  string
		query string
	}{
		{"ad_states", `
			UPDATE ad_states SET
				completed_today = 0,
				completed_in_batch = 0,
				next_batch_available_at = 0,
				cooldown_until = 0,
				updated_at = datetime('now')`},
		{"spin_states", `
			UPDATE spin_states SET
				spins_today = 0,
				wins_today = 0,
				losses_today = 0,
				cooldown_until = 0,
				updated_at = datetime('now')`},
		{"referrals", `UPDATE referrals SET today = 0`},
		{"auto_ad_states", `UPDATE auto_ad_states SET failures_today = 0, disabled_for_day = 0`},
	}
	for _, s := range sweeps {
		if _, err := tx.Exec(s.query); err != nil {
			return false, fmt.Errorf("failed to reset %s: %w", s.name, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO app_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaLastResetDate, today,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record reset date: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit daily reset: %w", err)
	}

	slog.Info("daily reset completed", "date", today)
	return true, nil
}
