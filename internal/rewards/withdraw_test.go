package rewards

import (
	"errors"
	"testing"

	"github.com/playwatch/rewardd/internal/models"
	"github.com/playwatch/rewardd/internal/store"
)

const validBSCAddress = "0xF278cF59F82eDcf871d630F28EcC8056f25C1cdb"

func TestWithdrawHappyPath(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.store.AddPoints("u1", 1000); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}

	w, err := svc.Withdraw("u1", 500, "BSC", validBSCAddress)
	if err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	if w.Status != models.WithdrawalPending {
		t.Errorf("status = %s, want PENDING", w.Status)
	}
	if w.AmountCents != 50 { // 500 points at 10 points per cent
		t.Errorf("amount = %d cents, want 50", w.AmountCents)
	}

	bal, _ := svc.Balance("u1")
	if bal != 500 {
		t.Errorf("balance = %d after withdrawal, want 500", bal)
	}

	list, err := svc.Withdrawals("u1")
	if err != nil {
		t.Fatalf("Withdrawals() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != w.ID {
		t.Errorf("withdrawal list = %+v", list)
	}
}

func TestWithdrawRejections(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.store.AddPoints("u1", 1000); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}

	tests := []struct {
		name    string
		points  int64
		rail    string
		address string
		wantErr error
	}{
		{"below minimum", 50, "BSC", validBSCAddress, ErrWithdrawBelowMin},
		{"unknown rail", 500, "DOGE", validBSCAddress, ErrInvalidRail},
		{"bad address", 500, "BSC", "0xnothex", ErrInvalidAddress},
		{"bad BTC address", 500, "BTC", "notanaddress", ErrInvalidAddress},
		{"insufficient points", 5000, "BSC", validBSCAddress, store.ErrInsufficientPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Withdraw("u1", tt.points, tt.rail, tt.address); !errors.Is(err, tt.wantErr) {
				t.Errorf("Withdraw() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// None of the rejections moved the balance.
	bal, _ := svc.Balance("u1")
	if bal != 1000 {
		t.Errorf("balance = %d after rejections, want 1000", bal)
	}
}
