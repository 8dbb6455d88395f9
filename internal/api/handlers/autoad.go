package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/playwatch/rewardd/internal/api/middleware"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
	"github.com/playwatch/rewardd/internal/rewards"
)

type autoAdRequest struct {
	Enabled bool `json:"enabled"`
}

// AutoAdHandler returns a handler for POST /api/autoad: the opt-in toggle
// for the background ad flow.
func AutoAdHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req autoAdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "Invalid request body")
			return
		}

		st, err := svc.SetAutoAd(middleware.UserID(r), req.Enabled)
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, st)
	}
}
