package config

// API error codes. Returned in the error envelope so clients can branch
// without parsing messages.
const (
	ErrorInvalidRequest     = "ERROR_INVALID_REQUEST"
	ErrorInvalidCategory    = "ERROR_INVALID_CATEGORY"
	ErrorDailyCapReached    = "ERROR_DAILY_CAP_REACHED"
	ErrorCoolingDown        = "ERROR_COOLING_DOWN"
	ErrorTaskActive         = "ERROR_TASK_ACTIVE"
	ErrorSessionNotFound    = "ERROR_SESSION_NOT_FOUND"
	ErrorVerificationFailed = "ERROR_VERIFICATION_FAILED"
	ErrorAdUnavailable      = "ERROR_AD_UNAVAILABLE"
	ErrorSpinLimitReached   = "ERROR_SPIN_LIMIT_REACHED"
	ErrorAlreadyCheckedIn   = "ERROR_ALREADY_CHECKED_IN"
	ErrorSurpriseNotReady   = "ERROR_SURPRISE_NOT_READY"
	ErrorInsufficientPoints = "ERROR_INSUFFICIENT_POINTS"
	ErrorWithdrawBelowMin   = "ERROR_WITHDRAW_BELOW_MIN"
	ErrorInvalidRail        = "ERROR_INVALID_RAIL"
	ErrorInvalidAddress     = "ERROR_INVALID_ADDRESS"
	ErrorReferralInvalid    = "ERROR_REFERRAL_INVALID"
	ErrorReferralApplied    = "ERROR_REFERRAL_APPLIED"
	ErrorAutoAdDisabled     = "ERROR_AUTO_AD_DISABLED"
	ErrorInvalidCredentials = "ERROR_INVALID_CREDENTIALS"
	ErrorSessionExpired     = "ERROR_SESSION_EXPIRED"
	ErrorUnauthorized       = "ERROR_UNAUTHORIZED"
	ErrorRateLimited        = "ERROR_RATE_LIMITED"
	ErrorDatabase           = "ERROR_DATABASE"
	ErrorNotFound           = "ERROR_NOT_FOUND"
)
