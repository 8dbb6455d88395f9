package store

import (
	"testing"
	"time"

	"github.com/playwatch/rewardd/internal/models"
)

func seedDayState(t *testing.T, db *DB) {
	t.Helper()

	now := time.Now().Truncate(time.Second)
	if err := db.SaveAdState(&models.AdCategoryState{
		UserID: "u1", Category: models.AdPop,
		CompletedToday: 20, CompletedInBatch: 0,
		CooldownUntil: now.Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("SaveAdState() error = %v", err)
	}
	if err := db.SaveSpinState(&models.SpinState{
		UserID: "u1", LastSpinTime: now,
		SpinsToday: 10, WinsToday: 6, LossesToday: 4,
		CooldownUntil: now.Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("SaveSpinState() error = %v", err)
	}
	if err := db.SaveCheckinState(&models.CheckinState{
		UserID: "u1", LastCheckinDate: "2026-09-01", ClaimedDays: 4,
	}); err != nil {
		t.Fatalf("SaveCheckinState() error = %v", err)
	}
	if _, err := db.GetOrCreateReferral("u1"); err != nil {
		t.Fatalf("GetOrCreateReferral() error = %v", err)
	}
	if err := db.RecordReferral("u1"); err != nil {
		t.Fatalf("RecordReferral() error = %v", err)
	}
	if err := db.SaveAutoAdState(&models.AutoAdState{
		UserID: "u1", Enabled: true, FailuresToday: 3, DisabledForDay: true,
	}); err != nil {
		t.Fatalf("SaveAutoAdState() error = %v", err)
	}
	if err := db.AddPoints("u1", 500); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}
}

func TestResetDailySweep(t *testing.T) {
	db := newTestDB(t)
	seedDayState(t, db)

	ran, err := db.ResetDaily("2026-09-02")
	if err != nil {
		t.Fatalf("ResetDaily() error = %v", err)
	}
	if !ran {
		t.Fatal("ResetDaily() = false, want true for a fresh date")
	}

	ad, _ := db.GetAdState("u1", models.AdPop)
	if ad.CompletedToday != 0 || ad.CompletedInBatch != 0 || !ad.CooldownUntil.IsZero() || !ad.NextBatchAvailableAt.IsZero() {
		t.Errorf("ad state not reset: %+v", ad)
	}

	spin, _ := db.GetSpinState("u1")
	if spin.SpinsToday != 0 || spin.WinsToday != 0 || spin.LossesToday != 0 || !spin.CooldownUntil.IsZero() {
		t.Errorf("spin counters not reset: %+v", spin)
	}
	if spin.LastSpinTime.IsZero() {
		t.Error("LastSpinTime must survive the reset")
	}

	// Check-in streaks are not part of the sweep.
	ci, _ := db.GetCheckinState("u1")
	if ci.ClaimedDays != 4 || ci.LastCheckinDate != "2026-09-01" {
		t.Errorf("checkin state changed by reset: %+v", ci)
	}

	ref, _ := db.GetOrCreateReferral("u1")
	if ref.Today != 0 {
		t.Errorf("referral today = %d, want 0", ref.Today)
	}
	if ref.Total != 1 {
		t.Errorf("referral total = %d, want 1 (preserved)", ref.Total)
	}

	aa, _ := db.GetAutoAdState("u1")
	if aa.FailuresToday != 0 || aa.DisabledForDay {
		t.Errorf("auto-ad state not reset: %+v", aa)
	}
	if !aa.Enabled {
		t.Error("auto-ad opt-in must survive the reset")
	}

	// Balances are never touched by the sweep.
	bal, _ := db.GetBalance("u1")
	if bal != 500 {
		t.Errorf("balance = %d, want 500", bal)
	}

	last, err := db.LastResetDate()
	if err != nil {
		t.Fatalf("LastResetDate() error = %v", err)
	}
	if last != "2026-09-02" {
		t.Errorf("LastResetDate() = %q, want 2026-09-02", last)
	}
}

func TestResetDailyIdempotentPerDate(t *testing.T) {
	db := newTestDB(t)

	ran, err := db.ResetDaily("2026-09-02")
	if err != nil || !ran {
		t.Fatalf("first ResetDaily() = %v, %v", ran, err)
	}

	// Same date again: nothing to do.
	ran, err = db.ResetDaily("2026-09-02")
	if err != nil {
		t.Fatalf("second ResetDaily() error = %v", err)
	}
	if ran {
		t.Error("second ResetDaily() = true, want false")
	}

	// A new date runs again.
	ran, err = db.ResetDaily("2026-09-03")
	if err != nil || !ran {
		t.Errorf("next-day ResetDaily() = %v, %v, want true, nil", ran, err)
	}
}

func TestLastResetDateEmpty(t *testing.T) {
	db := newTestDB(t)

	last, err := db.LastResetDate()
	if err != nil {
		t.Fatalf("LastResetDate() error = %v", err)
	}
	if last != "" {
		t.Errorf("LastResetDate() = %q, want empty before first reset", last)
	}
}
