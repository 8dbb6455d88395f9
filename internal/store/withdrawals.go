package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/playwatch/rewardd/internal/models"
)

// CreateWithdrawal inserts a new PENDING withdrawal request.
func (d *DB) CreateWithdrawal(w *models.Withdrawal) error {
	_, err := d.conn.Exec(`
		INSERT INTO withdrawals (id, user_id, points, amount_cents, rail, address, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.UserID, w.Points, w.AmountCents, w.Rail, w.Address, string(w.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal %s: %w", w.ID, err)
	}

	slog.Info("withdrawal created",
		"withdrawalID", w.ID,
		"userID", w.UserID,
		"points", w.Points,
		"rail", w.Rail,
	)
	return nil
}

// GetWithdrawal returns one withdrawal by ID.
func (d *DB) GetWithdrawal(id string) (*models.Withdrawal, error) {
	var (
		w         models.Withdrawal
		settledAt sql.NullString
	)
	err := d.conn.QueryRow(`
		SELECT id, user_id, points, amount_cents, rail, address, status, created_at, settled_at
		FROM withdrawals WHERE id = ?`, id,
	).Scan(&w.ID, &w.UserID, &w.Points, &w.AmountCents, &w.Rail, &w.Address, &w.Status, &w.CreatedAt, &settledAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal %s: %w", id, err)
	}
	if settledAt.Valid {
		w.SettledAt = &settledAt.String
	}
	return &w, nil
}

// ListWithdrawals returns a user's withdrawals, newest first.
func (d *DB) ListWithdrawals(userID string) ([]models.Withdrawal, error) {
	return d.listWithdrawals(`WHERE user_id = ?`, userID)
}

// ListPendingWithdrawals returns every PENDING withdrawal across users,
// oldest first, for admin settlement.
func (d *DB) ListPendingWithdrawals() ([]models.Withdrawal, error) {
	rows, err := d.conn.Query(`
		SELECT id, user_id, points, amount_cents, rail, address, status, created_at, settled_at
		FROM withdrawals WHERE status = ? ORDER BY created_at ASC`,
		string(models.WithdrawalPending),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending withdrawals: %w", err)
	}
	return scanWithdrawals(rows)
}

func (d *DB) listWithdrawals(whereClause string, args ...interface{}) ([]models.Withdrawal, error) {
	rows, err := d.conn.Query(`
		SELECT id, user_id, points, amount_cents, rail, address, status, created_at, settled_at
		FROM withdrawals `+whereClause+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return scanWithdrawals(rows)
}

func scanWithdrawals(rows *sql.Rows) ([]models.Withdrawal, error) {
	defer rows.Close()

	var out []models.Withdrawal
	for rows.Next() {
		var (
			w         models.Withdrawal
			settledAt sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Points, &w.AmountCents, &w.Rail, &w.Address,
			&w.Status, &w.CreatedAt, &settledAt); err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal row: %w", err)
		}
		if settledAt.Valid {
			w.SettledAt = &settledAt.String
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// SettleWithdrawal moves a PENDING withdrawal to PAID or REJECTED.
// Returns ErrNotFound when the withdrawal does not exist or is already settled.
func (d *DB) SettleWithdrawal(id string, status models.WithdrawalStatus) error {
	res, err := d.conn.Exec(`
		UPDATE withdrawals SET status = ?, settled_at = datetime('now')
		WHERE id = ? AND status = ?`,
		string(status), id, string(models.WithdrawalPending),
	)
	if err != nil {
		return fmt.Errorf("failed to settle withdrawal %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check settle result for %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.Info("withdrawal settled", "withdrawalID", id, "status", status)
	return nil
}
