package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/playwatch/rewardd/internal/api/middleware"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
	"github.com/playwatch/rewardd/internal/rewards"
)

type applyReferralRequest struct {
	Code string `json:"code"`
}

// ReferralHandler returns a handler for GET /api/referral.
func ReferralHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Referral(middleware.UserID(r))
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, stats)
	}
}

// ApplyReferralHandler returns a handler for POST /api/referral/apply.
func ApplyReferralHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyReferralRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "code is required")
			return
		}

		if err := svc.ApplyReferralCode(middleware.UserID(r), req.Code); err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "applied"})
	}
}
