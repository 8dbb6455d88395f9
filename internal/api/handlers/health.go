package handlers

import (
	"net/http"
	"time"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
)

var startTime = time.Now()

type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Network  string `json:"network"`
	Timezone string `json:"timezone"`
	Uptime   string `json:"uptime"`
}

// HealthHandler returns a handler for GET /api/health.
func HealthHandler(cfg *config.Config, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, healthResponse{
			Status:   "ok",
			Version:  version,
			Network:  cfg.Network,
			Timezone: cfg.Timezone,
			Uptime:   time.Since(startTime).Round(time.Second).String(),
		})
	}
}
