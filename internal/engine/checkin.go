package engine

import (
	"fmt"

	"github.com/playwatch/rewardd/internal/models"
)

// CheckinResult is the outcome of a successful check-in claim.
type CheckinResult struct {
	State        models.CheckinState
	RewardPoints int64
	RewardLabel  string
}

// CanClaimToday reports whether a check-in claim is available: one claim per
// calendar day, gated purely by the stored date string.
func CanClaimToday(st models.CheckinState, today string) bool {
	return st.LastCheckinDate != today
}

// ClaimCheckin applies one check-in claim. The caller enforces eligibility
// (CanClaimToday, and ClaimedDays == 6 for a surprise-box claim); the
// controller itself does not re-validate.
//
// Standard days walk the reward table 1..len(table); the 7th claim is the
// surprise box, which awards surpriseReward and resets the cycle. A claim
// that would step past the table is clamped back to day 1.
func ClaimCheckin(st models.CheckinState, surpriseBox bool, today string, table []int64, surpriseReward int64) CheckinResult {
	st.LastCheckinDate = today

	if surpriseBox {
		st.ClaimedDays = 0
		return CheckinResult{
			State:        st,
			RewardPoints: surpriseReward,
			RewardLabel:  "Surprise Box",
		}
	}

	newClaimedDays := st.ClaimedDays + 1
	if newClaimedDays > len(table) {
		newClaimedDays = 1
	}
	st.ClaimedDays = newClaimedDays

	return CheckinResult{
		State:        st,
		RewardPoints: table[newClaimedDays-1],
		RewardLabel:  fmt.Sprintf("Day %d", newClaimedDays),
	}
}
