package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/playwatch/rewardd/internal/api/middleware"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
	"github.com/playwatch/rewardd/internal/models"
	"github.com/playwatch/rewardd/internal/rewards"
)

type startTaskRequest struct {
	Category models.AdCategory `json:"category"`
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

// StartTaskHandler returns a handler for POST /api/tasks/start.
func StartTaskHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "Invalid request body")
			return
		}

		sess, err := svc.StartTask(r.Context(), middleware.UserID(r), req.Category)
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, sess)
	}
}

// CompleteTaskHandler returns a handler for POST /api/tasks/complete.
func CompleteTaskHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "session_id is required")
			return
		}

		res, err := svc.CompleteTask(r.Context(), middleware.UserID(r), req.SessionID)
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, res)
	}
}

// CancelTaskHandler returns a handler for POST /api/tasks/cancel.
func CancelTaskHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "session_id is required")
			return
		}

		if err := svc.CancelTask(middleware.UserID(r), req.SessionID); err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
	}
}
