package store

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// GetBalance returns the current spendable points for a user (0 if no row).
func (d *DB) GetBalance(userID string) (int64, error) {
	var points int64
	err := d.conn.QueryRow(`SELECT points FROM balances WHERE user_id = ?`, userID).Scan(&points)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for %s: %w", userID, err)
	}
	return points, nil
}

// GetTotalEarned returns the lifetime earned points for a user.
func (d *DB) GetTotalEarned(userID string) (int64, error) {
	var total int64
	err := d.conn.QueryRow(`SELECT total_earned FROM balances WHERE user_id = ?`, userID).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get total earned for %s: %w", userID, err)
	}
	return total, nil
}

// AddPoints credits points to a user with a server-side atomic increment,
// creating the balance row if needed.
func (d *DB) AddPoints(userID string, points int64) error {
	_, err := d.conn.Exec(`
		INSERT INTO balances (user_id, points, total_earned, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(user_id) DO UPDATE SET
			points = points + excluded.points,
			total_earned = total_earned + excluded.total_earned,
			updated_at = datetime('now')`,
		userID, points, points,
	)
	if err != nil {
		return fmt.Errorf("failed to add points for %s: %w", userID, err)
	}

	slog.Info("points credited", "userID", userID, "points", points)
	return nil
}

// DeductPoints debits points atomically. Returns ErrInsufficientPoints when
// the balance cannot cover the amount; the balance is never driven negative.
func (d *DB) DeductPoints(userID string, points int64) error {
	res, err := d.conn.Exec(`
		UPDATE balances
		SET points = points - ?, updated_at = datetime('now')
		WHERE user_id = ? AND points >= ?`,
		points, userID, points,
	)
	if err != nil {
		return fmt.Errorf("failed to deduct points for %s: %w", userID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deduct result for %s: %w", userID, err)
	}
	if affected == 0 {
		return ErrInsufficientPoints
	}

	slog.Info("points debited", "userID", userID, "points", points)
	return nil
}

// RefundPoints restores previously deducted points without touching
// total_earned. Used by compensating rollbacks.
func (d *DB) RefundPoints(userID string, points int64) error {
	_, err := d.conn.Exec(`
		UPDATE balances
		SET points = points + ?, updated_at = datetime('now')
		WHERE user_id = ?`,
		points, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to refund points for %s: %w", userID, err)
	}

	slog.Warn("points refunded after rollback", "userID", userID, "points", points)
	return nil
}

// RevokePoints removes previously credited points and their total_earned
// contribution. Used by compensating rollbacks of a failed award.
func (d *DB) RevokePoints(userID string, points int64) error {
	_, err := d.conn.Exec(`
		UPDATE balances
		SET points = points - ?, total_earned = total_earned - ?, updated_at = datetime('now')
		WHERE user_id = ?`,
		points, points, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke points for %s: %w", userID, err)
	}

	slog.Warn("points revoked after rollback", "userID", userID, "points", points)
	return nil
}
