package store

import (
	"errors"
	"testing"

	"github.com/playwatch/rewardd/internal/models"
)

func TestAddAndDeductPoints(t *testing.T) {
	db := newTestDB(t)

	if err := db.AddPoints("u1", 100); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}
	if err := db.AddPoints("u1", 50); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}

	bal, err := db.GetBalance("u1")
	if err != nil {
		t.Fatalf("GetBalance() error = %v", err)
	}
	if bal != 150 {
		t.Errorf("balance = %d, want 150", bal)
	}

	total, err := db.GetTotalEarned("u1")
	if err != nil {
		t.Fatalf("GetTotalEarned() error = %v", err)
	}
	if total != 150 {
		t.Errorf("total earned = %d, want 150", total)
	}

	if err := db.DeductPoints("u1", 120); err != nil {
		t.Fatalf("DeductPoints() error = %v", err)
	}
	bal, _ = db.GetBalance("u1")
	if bal != 30 {
		t.Errorf("balance after deduct = %d, want 30", bal)
	}

	// Deduction never drives the balance negative.
	total, _ = db.GetTotalEarned("u1")
	if total != 150 {
		t.Errorf("total earned after deduct = %d, want 150", total)
	}
}

func TestDeductPointsInsufficient(t *testing.T) {
	db := newTestDB(t)

	if err := db.AddPoints("u1", 10); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}

	err := db.DeductPoints("u1", 11)
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("DeductPoints() error = %v, want ErrInsufficientPoints", err)
	}

	bal, _ := db.GetBalance("u1")
	if bal != 10 {
		t.Errorf("balance = %d, want 10 (unchanged)", bal)
	}

	// No row at all is also insufficient.
	if err := db.DeductPoints("nobody", 1); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("DeductPoints(nobody) error = %v, want ErrInsufficientPoints", err)
	}
}

func TestRefundAndRevokePoints(t *testing.T) {
	db := newTestDB(t)

	if err := db.AddPoints("u1", 100); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}
	if err := db.DeductPoints("u1", 40); err != nil {
		t.Fatalf("DeductPoints() error = %v", err)
	}

	// Refund restores spendable points but not lifetime earnings.
	if err := db.RefundPoints("u1", 40); err != nil {
		t.Fatalf("RefundPoints() error = %v", err)
	}
	bal, _ := db.GetBalance("u1")
	total, _ := db.GetTotalEarned("u1")
	if bal != 100 || total != 100 {
		t.Errorf("after refund: balance=%d total=%d, want 100/100", bal, total)
	}

	// Revoke undoes a credit on both axes.
	if err := db.RevokePoints("u1", 30); err != nil {
		t.Fatalf("RevokePoints() error = %v", err)
	}
	bal, _ = db.GetBalance("u1")
	total, _ = db.GetTotalEarned("u1")
	if bal != 70 || total != 70 {
		t.Errorf("after revoke: balance=%d total=%d, want 70/70", bal, total)
	}
}

func TestListTransactionsFiltersAndPaging(t *testing.T) {
	db := newTestDB(t)

	entries := []models.RewardTransaction{
		{UserID: "u1", Type: "ad", Amount: 5},
		{UserID: "u1", Type: "spin", Amount: 20},
		{UserID: "u1", Type: "withdraw", Amount: 5000, Debit: true},
		{UserID: "u1", Type: "ad", Amount: 5},
		{UserID: "u2", Type: "ad", Amount: 5},
	}
	for i := range entries {
		if err := db.RecordTransaction(&entries[i]); err != nil {
			t.Fatalf("RecordTransaction() error = %v", err)
		}
		if entries[i].ID == 0 {
			t.Fatal("RecordTransaction() did not fill ID")
		}
	}

	txs, total, err := db.ListTransactions("u1", models.TransactionFilters{}, models.Pagination{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if total != 4 || len(txs) != 4 {
		t.Fatalf("unfiltered: total=%d len=%d, want 4/4", total, len(txs))
	}
	// Newest first.
	if txs[0].Type != "ad" || txs[3].Type != "ad" || txs[1].Type != "withdraw" {
		t.Errorf("unexpected order: %s,%s,%s,%s", txs[0].Type, txs[1].Type, txs[2].Type, txs[3].Type)
	}

	adType := "ad"
	txs, total, err = db.ListTransactions("u1", models.TransactionFilters{Type: &adType}, models.Pagination{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListTransactions(type) error = %v", err)
	}
	if total != 2 || len(txs) != 2 {
		t.Errorf("type filter: total=%d len=%d, want 2/2", total, len(txs))
	}

	debit := true
	txs, total, err = db.ListTransactions("u1", models.TransactionFilters{Debit: &debit}, models.Pagination{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListTransactions(debit) error = %v", err)
	}
	if total != 1 || len(txs) != 1 || !txs[0].Debit {
		t.Errorf("debit filter: total=%d len=%d", total, len(txs))
	}

	txs, total, err = db.ListTransactions("u1", models.TransactionFilters{}, models.Pagination{Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("ListTransactions(page 2) error = %v", err)
	}
	if total != 4 || len(txs) != 1 {
		t.Errorf("page 2: total=%d len=%d, want 4/1", total, len(txs))
	}
}

func TestDeleteTransaction(t *testing.T) {
	db := newTestDB(t)

	tx := &models.RewardTransaction{UserID: "u1", Type: "ad", Amount: 5}
	if err := db.RecordTransaction(tx); err != nil {
		t.Fatalf("RecordTransaction() error = %v", err)
	}
	if err := db.DeleteTransaction(tx.ID); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}

	_, total, err := db.ListTransactions("u1", models.TransactionFilters{}, models.Pagination{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if total != 0 {
		t.Errorf("total after delete = %d, want 0", total)
	}
}
