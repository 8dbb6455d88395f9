package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/playwatch/rewardd/internal/models"
)

// GetAdState returns the category state for a user, or an all-zero default
// if none has been persisted yet.
func (d *DB) GetAdState(userID string, cat models.AdCategory) (*models.AdCategoryState, error) {
	var (
		st        models.AdCategoryState
		nextBatch int64
		cooldown  int64
		updatedAt string
	)
	err := d.conn.QueryRow(`
		SELECT user_id, category, completed_today, completed_in_batch,
		       next_batch_available_at, cooldown_until, updated_at
		FROM ad_states WHERE user_id = ? AND category = ?`,
		userID, string(cat),
	).Scan(&st.UserID, &st.Category, &st.CompletedToday, &st.CompletedInBatch,
		&nextBatch, &cooldown, &updatedAt)
	if err == sql.ErrNoRows {
		return &models.AdCategoryState{UserID: userID, Category: cat}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ad state for %s/%s: %w", userID, cat, err)
	}

	st.NextBatchAvailableAt = timeOrZero(nextBatch)
	st.CooldownUntil = timeOrZero(cooldown)
	if t, perr := time.Parse("2006-01-02 15:04:05", updatedAt); perr == nil {
		st.UpdatedAt = t
	}
	return &st, nil
}

// GetAdStates returns the state of every category for a user, filling in
// zero defaults for categories with no row.
func (d *DB) GetAdStates(userID string) ([]models.AdCategoryState, error) {
	states := make([]models.AdCategoryState, 0, len(models.AllAdCategories))
	for _, cat := range models.AllAdCategories {
		st, err := d.GetAdState(userID, cat)
		if err != nil {
			return nil, err
		}
		states = append(states, *st)
	}
	return states, nil
}

// SaveAdState upserts a category state.
func (d *DB) SaveAdState(st *models.AdCategoryState) error {
	_, err := d.conn.Exec(`
		INSERT INTO ad_states (user_id, category, completed_today, completed_in_batch,
		                       next_batch_available_at, cooldown_until, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(user_id, category) DO UPDATE SET
			completed_today = excluded.completed_today,
			completed_in_batch = excluded.completed_in_batch,
			next_batch_available_at = excluded.next_batch_available_at,
			cooldown_until = excluded.cooldown_until,
			updated_at = datetime('now')`,
		st.UserID, string(st.Category), st.CompletedToday, st.CompletedInBatch,
		unixOrZero(st.NextBatchAvailableAt), unixOrZero(st.CooldownUntil),
	)
	if err != nil {
		return fmt.Errorf("failed to save ad state for %s/%s: %w", st.UserID, st.Category, err)
	}
	return nil
}
