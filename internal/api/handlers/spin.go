package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/playwatch/rewardd/internal/api/middleware"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
	"github.com/playwatch/rewardd/internal/rewards"
)

// WheelHandler returns a handler for GET /api/spin/wheel: the segment
// layout the client renders.
func WheelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, config.WheelSegments)
	}
}

// StartSpinHandler returns a handler for POST /api/spin/start.
func StartSpinHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.StartSpin(r.Context(), middleware.UserID(r))
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, sess)
	}
}

// CompleteSpinHandler returns a handler for POST /api/spin/complete.
func CompleteSpinHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "session_id is required")
			return
		}

		res, err := svc.CompleteSpin(r.Context(), middleware.UserID(r), req.SessionID)
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, res)
	}
}

// CancelSpinHandler returns a handler for POST /api/spin/cancel.
func CancelSpinHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "session_id is required")
			return
		}

		if err := svc.CancelSpin(middleware.UserID(r), req.SessionID); err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
	}
}
