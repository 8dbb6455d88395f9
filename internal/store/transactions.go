package store

import (
	"fmt"
	"strings"

	"github.com/playwatch/rewardd/internal/models"
)

// RecordTransaction inserts one reward-history entry and fills in its ID.
func (d *DB) RecordTransaction(tx *models.RewardTransaction) error {
	res, err := d.conn.Exec(`
		INSERT INTO reward_transactions (user_id, type, amount, debit, icon, note)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tx.UserID, tx.Type, tx.Amount, boolToInt(tx.Debit), tx.Icon, tx.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to record transaction for %s: %w", tx.UserID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read transaction id: %w", err)
	}
	tx.ID = id
	return nil
}

// ListTransactions returns a page of a user's reward history, newest first,
// along with the total row count for pagination.
func (d *DB) ListTransactions(userID string, filters models.TransactionFilters, page models.Pagination) ([]models.RewardTransaction, int64, error) {
	where := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filters.Type != nil {
		where = append(where, "type = ?")
		args = append(args, *filters.Type)
	}
	if filters.Debit != nil {
		where = append(where, "debit = ?")
		args = append(args, boolToInt(*filters.Debit))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM reward_transactions WHERE " + whereClause
	if err := d.conn.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for %s: %w", userID, err)
	}

	query := `
		SELECT id, user_id, type, amount, debit, icon, note, created_at
		FROM reward_transactions WHERE ` + whereClause + `
		ORDER BY id DESC LIMIT ? OFFSET ?`
	args = append(args, page.PageSize, (page.Page-1)*page.PageSize)

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions for %s: %w", userID, err)
	}
	defer rows.Close()

	var txs []models.RewardTransaction
	for rows.Next() {
		var (
			tx    models.RewardTransaction
			debit int
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &debit, &tx.Icon, &tx.Note, &tx.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		tx.Debit = debit != 0
		txs = append(txs, tx)
	}
	return txs, total, rows.Err()
}

// DeleteTransaction removes a history entry. Only used by compensating
// rollbacks when the balance write after it fails.
func (d *DB) DeleteTransaction(id int64) error {
	_, err := d.conn.Exec(`DELETE FROM reward_transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
