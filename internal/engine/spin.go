package engine

import (
	"math/rand"
	"time"

	"github.com/playwatch/rewardd/internal/models"
)

// DecideOutcome decides win or loss for the next spin, balancing the day's
// results toward the target quota.
//
// With quotas remaining on both sides, the win probability is
// winsRemaining / (winsRemaining + lossesRemaining): a live-updating ratio
// that converges the tally to exactly targetWinQuota wins over
// maxSpinsPerDay spins. An exhausted quota forces the opposite outcome
// unconditionally, regardless of the random draw.
func DecideOutcome(winsToday, lossesToday, targetWinQuota, maxSpinsPerDay int, rng *rand.Rand) bool {
	targetLossQuota := maxSpinsPerDay - targetWinQuota

	winsRemaining := targetWinQuota - winsToday
	lossesRemaining := targetLossQuota - lossesToday

	if winsRemaining <= 0 {
		return false
	}
	if lossesRemaining <= 0 {
		return true
	}

	return rng.Float64() < float64(winsRemaining)/float64(winsRemaining+lossesRemaining)
}

// DrawSegment picks a wheel segment uniformly among the winning segments on
// a win, or among the no-prize segments on a loss. The draw is independent
// of the fairness balancing.
func DrawSegment(segments []models.WheelSegment, isWin bool, rng *rand.Rand) models.WheelSegment {
	var pool []models.WheelSegment
	for _, s := range segments {
		if s.Win == isWin {
			pool = append(pool, s)
		}
	}
	if len(pool) == 0 {
		// Degenerate wheel config; fall back to the whole wheel.
		pool = segments
	}
	return pool[rng.Intn(len(pool))]
}

// ApplySpin folds one completed spin into the state: bumps the counters,
// stamps the spin time, and arms the cooldown: short while spins remain,
// a full day after the last one.
func ApplySpin(st models.SpinState, isWin bool, now time.Time, shortCooldown time.Duration, maxSpinsPerDay int) models.SpinState {
	st.SpinsToday++
	if isWin {
		st.WinsToday++
	} else {
		st.LossesToday++
	}
	st.LastSpinTime = now

	if st.SpinsToday < maxSpinsPerDay {
		st.CooldownUntil = now.Add(shortCooldown)
	} else {
		st.CooldownUntil = now.Add(24 * time.Hour)
	}
	return st
}

// CanSpin reports whether the user may start a spin now. Checked by the
// caller before DecideOutcome; the selector itself trusts its input.
func CanSpin(st models.SpinState, maxSpinsPerDay int, now time.Time) error {
	if st.SpinsToday >= maxSpinsPerDay {
		return ErrDailyCapReached
	}
	if st.CooldownUntil.After(now) {
		return ErrCoolingDown
	}
	return nil
}
