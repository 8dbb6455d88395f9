package models

import "time"

// AdCategory identifies one of the ad-task categories.
type AdCategory string

const (
	AdInterstitial AdCategory = "interstitial"
	AdPop          AdCategory = "pop"
	AdVisit        AdCategory = "visit"
	AdWebsite      AdCategory = "website"
	AdExtra        AdCategory = "extra"
)

// AllAdCategories lists every category in a stable order.
var AllAdCategories = []AdCategory{AdInterstitial, AdPop, AdVisit, AdWebsite, AdExtra}

// Valid reports whether c is a known ad category.
func (c AdCategory) Valid() bool {
	switch c {
	case AdInterstitial, AdPop, AdVisit, AdWebsite, AdExtra:
		return true
	}
	return false
}

// BatchGate selects which timestamp field a completed batch arms.
// The two fields are not interchangeable per category; each category
// historically used exactly one of them.
type BatchGate string

const (
	GateNextBatch BatchGate = "next_batch" // short inter-batch delay
	GateCooldown  BatchGate = "cooldown"   // batch delay lands on the cooldown field
)

// CategoryPolicy is the static batching policy of one ad category.
type CategoryPolicy struct {
	BatchSize  int           // 0 = no batching sub-step (visit)
	DailyCap   int           // max completions per calendar day
	BatchDelay time.Duration // delay applied when a batch completes
	Gate       BatchGate     // field the batch delay is written to
	Reward     int64         // points per completed task
	ViewTime   time.Duration // minimum ad view time before completion counts
}

// AdCategoryState tracks one user's progress in one ad category.
// A zero NextBatchAvailableAt / CooldownUntil means "not gated".
type AdCategoryState struct {
	UserID               string     `json:"user_id"`
	Category             AdCategory `json:"category"`
	CompletedToday       int        `json:"completed_today"`
	CompletedInBatch     int        `json:"completed_in_batch"`
	NextBatchAvailableAt time.Time  `json:"next_batch_available_at"`
	CooldownUntil        time.Time  `json:"cooldown_until"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// SpinState tracks one user's spin-wheel counters for the current day.
// Invariant: WinsToday + LossesToday == SpinsToday.
type SpinState struct {
	UserID        string    `json:"user_id"`
	LastSpinTime  time.Time `json:"last_spin_time"`
	SpinsToday    int       `json:"spins_today"`
	WinsToday     int       `json:"wins_today"`
	LossesToday   int       `json:"losses_today"`
	CooldownUntil time.Time `json:"cooldown_until"`
}

// WheelSegment is one slice of the spin wheel.
type WheelSegment struct {
	Label  string `json:"label"`
	Points int64  `json:"points"`
	Win    bool   `json:"win"`
}

// CheckinState tracks the daily check-in streak.
// ClaimedDays cycles 1..6 for standard days; the 7th claim (surprise box)
// resets it to 0 and starts a new cycle.
type CheckinState struct {
	UserID          string `json:"user_id"`
	LastCheckinDate string `json:"last_checkin_date"` // calendar date string, "" = never claimed
	ClaimedDays     int    `json:"claimed_days"`
}

// RewardTransaction is one entry in a user's reward history.
type RewardTransaction struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Amount    int64  `json:"amount"` // points, always positive; Debit marks direction
	Debit     bool   `json:"debit"`
	Icon      string `json:"icon"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"created_at"`
}

// WithdrawalStatus represents the settlement state of a withdrawal.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalPaid     WithdrawalStatus = "PAID"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

// Withdrawal is a request to convert points into a payout on a rail.
type Withdrawal struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Points      int64            `json:"points"`
	AmountCents int64            `json:"amount_cents"`
	Rail        string           `json:"rail"` // "BTC", "BSC", "SOL"
	Address     string           `json:"address"`
	Status      WithdrawalStatus `json:"status"`
	CreatedAt   string           `json:"created_at"`
	SettledAt   *string          `json:"settled_at,omitempty"`
}

// ReferralStats is the referral record for one user.
type ReferralStats struct {
	UserID     string `json:"user_id"`
	Code       string `json:"code"`
	ReferredBy string `json:"referred_by,omitempty"`
	Total      int    `json:"total"`
	Today      int    `json:"today"`
}

// AutoAdState tracks the opt-in background ad flow for one user.
type AutoAdState struct {
	UserID         string `json:"user_id"`
	Enabled        bool   `json:"enabled"`
	FailuresToday  int    `json:"failures_today"`
	DisabledForDay bool   `json:"disabled_for_day"`
}

// TransactionFilters contains filter parameters for listing reward transactions.
type TransactionFilters struct {
	Type  *string
	Debit *bool
}

// Pagination contains pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}
