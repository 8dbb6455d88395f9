package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
	"github.com/playwatch/rewardd/internal/models"
	"github.com/playwatch/rewardd/internal/store"
)

// PendingWithdrawalsHandler returns a handler for GET /api/admin/withdrawals:
// every unsettled request across users, oldest first.
func PendingWithdrawalsHandler(db *store.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := db.ListPendingWithdrawals()
		if err != nil {
			serviceError(w, err)
			return
		}
		if pending == nil {
			pending = []models.Withdrawal{}
		}
		httputil.JSON(w, http.StatusOK, pending)
	}
}

type settleRequest struct {
	Status models.WithdrawalStatus `json:"status"`
}

// SettleWithdrawalHandler returns a handler for POST /api/admin/withdrawals/{id}/settle.
// A rejection refunds the deducted points.
func SettleWithdrawalHandler(db *store.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req settleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "Invalid request body")
			return
		}
		if req.Status != models.WithdrawalPaid && req.Status != models.WithdrawalRejected {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "status must be PAID or REJECTED")
			return
		}

		wd, err := db.GetWithdrawal(id)
		if err != nil {
			serviceError(w, err)
			return
		}

		if err := db.SettleWithdrawal(id, req.Status); err != nil {
			serviceError(w, err)
			return
		}

		if req.Status == models.WithdrawalRejected {
			if err := db.RefundPoints(wd.UserID, wd.Points); err != nil {
				serviceError(w, err)
				return
			}
		}

		settled, err := db.GetWithdrawal(id)
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, settled)
	}
}

type overviewResponse struct {
	Policies       map[models.AdCategory]models.CategoryPolicy `json:"policies"`
	WheelSegments  []models.WheelSegment                       `json:"wheel_segments"`
	SpinWinQuota   int                                         `json:"spin_win_quota"`
	MaxSpinsPerDay int                                         `json:"max_spins_per_day"`
	CheckinRewards []int64                                     `json:"checkin_rewards"`
	SurpriseReward int64                                       `json:"surprise_reward"`
	LastResetDate  string                                      `json:"last_reset_date"`
}

// OverviewHandler returns a handler for GET /api/admin/overview: the active
// reward economy configuration plus the last daily sweep date.
func OverviewHandler(db *store.DB, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		last, err := db.LastResetDate()
		if err != nil {
			serviceError(w, err)
			return
		}

		httputil.JSON(w, http.StatusOK, overviewResponse{
			Policies:       config.CategoryPolicies,
			WheelSegments:  config.WheelSegments,
			SpinWinQuota:   cfg.SpinWinQuota,
			MaxSpinsPerDay: cfg.MaxSpinsPerDay,
			CheckinRewards: config.CheckinRewards,
			SurpriseReward: config.SurpriseBoxReward,
			LastResetDate:  last,
		})
	}
}
