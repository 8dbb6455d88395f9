package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/playwatch/rewardd/internal/api/middleware"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
	"github.com/playwatch/rewardd/internal/rewards"
)

type claimCheckinRequest struct {
	SurpriseBox bool `json:"surprise_box"`
}

// CheckinStatusHandler returns a handler for GET /api/checkin.
func CheckinStatusHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.CheckinStatus(middleware.UserID(r))
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, status)
	}
}

// ClaimCheckinHandler returns a handler for POST /api/checkin/claim.
func ClaimCheckinHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req claimCheckinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "Invalid request body")
			return
		}

		claim, err := svc.ClaimCheckin(middleware.UserID(r), req.SurpriseBox)
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, claim)
	}
}
