package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
	"github.com/playwatch/rewardd/internal/rewards"
	"github.com/playwatch/rewardd/internal/store"
)

// serviceError maps service sentinels onto the error envelope. Anything
// unmapped is a server fault and logs with the original error.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rewards.ErrInvalidCategory):
		httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidCategory, err.Error())
	case errors.Is(err, rewards.ErrDailyCapReached):
		httputil.Error(w, http.StatusConflict, config.ErrorDailyCapReached, err.Error())
	case errors.Is(err, rewards.ErrCoolingDown):
		httputil.Error(w, http.StatusConflict, config.ErrorCoolingDown, err.Error())
	case errors.Is(err, rewards.ErrTaskActive):
		httputil.Error(w, http.StatusConflict, config.ErrorTaskActive, err.Error())
	case errors.Is(err, rewards.ErrSessionNotFound):
		httputil.Error(w, http.StatusNotFound, config.ErrorSessionNotFound, err.Error())
	case errors.Is(err, rewards.ErrVerificationFailed):
		httputil.Error(w, http.StatusForbidden, config.ErrorVerificationFailed, err.Error())
	case errors.Is(err, rewards.ErrAdUnavailable):
		httputil.Error(w, http.StatusServiceUnavailable, config.ErrorAdUnavailable, err.Error())
	case errors.Is(err, rewards.ErrSpinLimitReached):
		httputil.Error(w, http.StatusConflict, config.ErrorSpinLimitReached, err.Error())
	case errors.Is(err, rewards.ErrAlreadyCheckedIn):
		httputil.Error(w, http.StatusConflict, config.ErrorAlreadyCheckedIn, err.Error())
	case errors.Is(err, rewards.ErrSurpriseNotReady):
		httputil.Error(w, http.StatusConflict, config.ErrorSurpriseNotReady, err.Error())
	case errors.Is(err, rewards.ErrWithdrawBelowMin):
		httputil.Error(w, http.StatusBadRequest, config.ErrorWithdrawBelowMin, err.Error())
	case errors.Is(err, rewards.ErrInvalidRail):
		httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRail, err.Error())
	case errors.Is(err, rewards.ErrInvalidAddress):
		httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidAddress, err.Error())
	case errors.Is(err, rewards.ErrReferralInvalid):
		httputil.Error(w, http.StatusBadRequest, config.ErrorReferralInvalid, err.Error())
	case errors.Is(err, rewards.ErrReferralApplied):
		httputil.Error(w, http.StatusConflict, config.ErrorReferralApplied, err.Error())
	case errors.Is(err, rewards.ErrAutoAdDisabled):
		httputil.Error(w, http.StatusConflict, config.ErrorAutoAdDisabled, err.Error())
	case errors.Is(err, store.ErrInsufficientPoints):
		httputil.Error(w, http.StatusBadRequest, config.ErrorInsufficientPoints, "Not enough points")
	case errors.Is(err, store.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, config.ErrorNotFound, "Not found")
	default:
		slog.Error("unhandled service error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, config.ErrorDatabase, "Internal error")
	}
}
