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

type withdrawRequest struct {
	Points  int64  `json:"points"`
	Rail    string `json:"rail"`
	Address string `json:"address"`
}

// WithdrawHandler returns a handler for POST /api/withdrawals.
func WithdrawHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req withdrawRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "Invalid request body")
			return
		}
		if req.Points <= 0 || req.Rail == "" || req.Address == "" {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "points, rail and address are required")
			return
		}

		wd, err := svc.Withdraw(middleware.UserID(r), req.Points, req.Rail, req.Address)
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusCreated, wd)
	}
}

// ListWithdrawalsHandler returns a handler for GET /api/withdrawals.
func ListWithdrawalsHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Withdrawals(middleware.UserID(r))
		if err != nil {
			serviceError(w, err)
			return
		}
		if list == nil {
			list = []models.Withdrawal{}
		}
		httputil.JSON(w, http.StatusOK, list)
	}
}
