package rewards

import "errors"

// Sentinel errors surfaced to the API layer.
var (
	ErrInvalidCategory    = errors.New("invalid ad category")
	ErrDailyCapReached    = errors.New("daily cap reached")
	ErrCoolingDown        = errors.New("cooling down")
	ErrTaskActive         = errors.New("another task is already in flight")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrVerificationFailed = errors.New("completion verification failed")
	ErrAdUnavailable      = errors.New("no ad available")
	ErrSpinLimitReached   = errors.New("spin limit reached for today")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrSurpriseNotReady   = errors.New("surprise box not unlocked yet")
	ErrWithdrawBelowMin   = errors.New("withdrawal below minimum")
	ErrInvalidRail        = errors.New("unsupported payout rail")
	ErrInvalidAddress     = errors.New("invalid payout address")
	ErrReferralInvalid    = errors.New("referral code invalid")
	ErrReferralApplied    = errors.New("referral code already applied")
	ErrAutoAdDisabled     = errors.New("auto-ad disabled for today")
)
