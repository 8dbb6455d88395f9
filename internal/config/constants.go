package config

import (
	"time"

	"github.com/playwatch/rewardd/internal/models"
)

// Date format used for every "today" comparison.
const DateFormat = "2006-01-02"

// Ad Task Policies
//
// Batch delays and the gate field each category arms are fixed by historical
// behavior and must not drift: interstitial gates on the next-batch field,
// pop/website/extra gate on the cooldown field, visit has no batching sub-step.
var CategoryPolicies = map[models.AdCategory]models.CategoryPolicy{
	models.AdInterstitial: {BatchSize: 5, DailyCap: 30, BatchDelay: 6 * time.Minute, Gate: models.GateNextBatch, Reward: 20, ViewTime: 15 * time.Second},
	models.AdPop:          {BatchSize: 5, DailyCap: 20, BatchDelay: 5 * time.Minute, Gate: models.GateCooldown, Reward: 15, ViewTime: 10 * time.Second},
	models.AdVisit:        {BatchSize: 0, DailyCap: 25, BatchDelay: 0, Gate: models.GateCooldown, Reward: 10, ViewTime: 20 * time.Second},
	models.AdWebsite:      {BatchSize: 4, DailyCap: 20, BatchDelay: 7 * time.Minute, Gate: models.GateCooldown, Reward: 25, ViewTime: 30 * time.Second},
	models.AdExtra:        {BatchSize: 3, DailyCap: 12, BatchDelay: 10 * time.Minute, Gate: models.GateCooldown, Reward: 30, ViewTime: 15 * time.Second},
}

// PolicyFor returns the policy for a category. Callers must validate the
// category first; unknown categories get a zero policy.
func PolicyFor(cat models.AdCategory) models.CategoryPolicy {
	return CategoryPolicies[cat]
}

// Cooldowns
const (
	DailyCapCooldown = 24 * time.Hour
	SpinCooldown     = 5 * time.Minute // between spins while spins remain
	SpinViewTime     = 20 * time.Second
)

// Spin Wheel
//
// Segment selection is a plain uniform draw within the win or loss group;
// it never participates in quota balancing.
var WheelSegments = []models.WheelSegment{
	{Label: "10 Points", Points: 10, Win: true},
	{Label: "20 Points", Points: 20, Win: true},
	{Label: "30 Points", Points: 30, Win: true},
	{Label: "50 Points", Points: 50, Win: true},
	{Label: "75 Points", Points: 75, Win: true},
	{Label: "100 Points", Points: 100, Win: true},
	{Label: "Try Again", Points: 0, Win: false},
	{Label: "No Luck", Points: 0, Win: false},
}

// Check-in
var CheckinRewards = []int64{10, 20, 30, 40, 50, 60}

const SurpriseBoxReward = 100

// Sessions
const (
	SessionCookieName  = "reward_admin_session"
	SessionTimeout     = 1 * time.Hour
	SessionTokenLength = 32 // bytes, hex-encoded = 64 chars

	PendingSessionTTL      = 10 * time.Minute
	SessionJanitorInterval = 1 * time.Minute
)

// Database
const (
	DBBusyTimeout = 5000 // milliseconds
)

// Transaction Types
const (
	TxTypeAdReward      = "ad_reward"
	TxTypeSpinWin       = "spin_win"
	TxTypeCheckinBonus  = "checkin_bonus"
	TxTypeSurpriseBox   = "surprise_box"
	TxTypeReferralBonus = "referral_bonus"
	TxTypeAutoAd        = "auto_ad"
	TxTypeWithdrawal    = "withdrawal"
	TxTypeAdjustment    = "adjustment" // compensating entries
)

// TxIcons maps a transaction type to its display icon.
var TxIcons = map[string]string{
	TxTypeAdReward:      "🎬",
	TxTypeSpinWin:       "🎡",
	TxTypeCheckinBonus:  "📅",
	TxTypeSurpriseBox:   "🎁",
	TxTypeReferralBonus: "👥",
	TxTypeAutoAd:        "🔁",
	TxTypeWithdrawal:    "💸",
	TxTypeAdjustment:    "⚖️",
}

// Payout Rails
var PayoutRails = []string{"BTC", "BSC", "SOL"}

// Circuit Breaker (ad network providers)
const (
	CircuitClosed   = "closed"
	CircuitOpen     = "open"
	CircuitHalfOpen = "half-open"

	CircuitBreakerThreshold   = 5
	CircuitBreakerCooldown    = 60 * time.Second
	CircuitBreakerHalfOpenMax = 1
)

// Logging
const (
	LogFilePrefix = "rewardd-"
	LogMaxAgeDays = 14
)

// Pagination
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Server
const (
	ServerReadTimeout  = 30 * time.Second
	ServerWriteTimeout = 60 * time.Second
	ShutdownTimeout    = 10 * time.Second
)

// Daily Reset
const (
	ResetSweepInterval = 24 * time.Hour // uptime timer, not a midnight trigger
)
