// Package engine contains the pure state-transition functions behind the
// reward flows: the ad batch scheduler, the quota-balanced spin outcome
// selector and the check-in streak controller. Nothing here touches storage,
// the clock or the network; callers pass "now" in and persist the result out.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/models"
)

// Errors returned by the caller-side start gate.
var (
	ErrDailyCapReached = errors.New("daily cap reached")
	ErrCoolingDown     = errors.New("category cooling down")
)

// Advance applies one confirmed ad-task completion to a category state.
// It trusts its input: the caller checks CanStart before invoking it.
//
// Order matters: both counters increment first, then the daily-cap branch is
// checked before the batch branch. Hitting the cap is terminal for the day
// and clears any pending batch gate.
func Advance(st models.AdCategoryState, pol models.CategoryPolicy, now time.Time) models.AdCategoryState {
	st.CompletedToday++
	st.CompletedInBatch++
	st.UpdatedAt = now

	if st.CompletedToday >= pol.DailyCap {
		st.CompletedInBatch = 0
		st.CooldownUntil = now.Add(config.DailyCapCooldown)
		st.NextBatchAvailableAt = time.Time{}
		return st
	}

	if pol.BatchSize > 0 && st.CompletedInBatch >= pol.BatchSize {
		st.CompletedInBatch = 0
		switch pol.Gate {
		case models.GateNextBatch:
			st.NextBatchAvailableAt = now.Add(pol.BatchDelay)
		case models.GateCooldown:
			st.CooldownUntil = now.Add(pol.BatchDelay)
		}
	}

	return st
}

// CanStart reports whether a task in this category may be started now.
// The scheduler itself never enforces this gate; every caller must.
func CanStart(st models.AdCategoryState, pol models.CategoryPolicy, now time.Time) error {
	if st.CompletedToday >= pol.DailyCap {
		return fmt.Errorf("%w: %d of %d completed", ErrDailyCapReached, st.CompletedToday, pol.DailyCap)
	}
	if st.NextBatchAvailableAt.After(now) {
		return fmt.Errorf("%w: next batch at %s", ErrCoolingDown, st.NextBatchAvailableAt.UTC().Format(time.RFC3339))
	}
	if st.CooldownUntil.After(now) {
		return fmt.Errorf("%w: until %s", ErrCoolingDown, st.CooldownUntil.UTC().Format(time.RFC3339))
	}
	return nil
}
