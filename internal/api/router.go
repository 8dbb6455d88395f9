// Package api exposes the reward service over HTTP: user routes behind the
// signed-token auth, admin routes behind session auth.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/playwatch/rewardd/internal/api/handlers"
	"github.com/playwatch/rewardd/internal/api/middleware"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/rewards"
	"github.com/playwatch/rewardd/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Dependencies holds all service references needed by the API layer.
type Dependencies struct {
	DB       *store.DB
	Service  *rewards.Service
	Sessions *middleware.SessionStore
	Auth     *middleware.UserAuth
	Limiter  *middleware.IPRateLimiter
	Config   *config.Config
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps *Dependencies) chi.Router {
	r := chi.NewRouter()

	// Global middleware (applied to ALL routes).
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogging)
	r.Use(deps.Limiter.Middleware)

	slog.Info("router initialized",
		"middleware", []string{"realIP", "recoverer", "requestLogging", "rateLimit"},
	)

	// Exempt routes: no user auth, no session.
	r.Get("/api/health", handlers.HealthHandler(deps.Config, Version))
	r.Post("/api/admin/login", handlers.LoginHandler(deps.Sessions))

	r.Route("/api", func(r chi.Router) {
		// User routes, signed-token auth.
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.Middleware)

			r.Get("/state", handlers.StateHandler(deps.Service))
			r.Get("/balance", handlers.BalanceHandler(deps.Service))
			r.Get("/transactions", handlers.TransactionsHandler(deps.Service))

			r.Post("/tasks/start", handlers.StartTaskHandler(deps.Service))
			r.Post("/tasks/complete", handlers.CompleteTaskHandler(deps.Service))
			r.Post("/tasks/cancel", handlers.CancelTaskHandler(deps.Service))

			r.Get("/spin/wheel", handlers.WheelHandler())
			r.Post("/spin/start", handlers.StartSpinHandler(deps.Service))
			r.Post("/spin/complete", handlers.CompleteSpinHandler(deps.Service))
			r.Post("/spin/cancel", handlers.CancelSpinHandler(deps.Service))

			r.Get("/checkin", handlers.CheckinStatusHandler(deps.Service))
			r.Post("/checkin/claim", handlers.ClaimCheckinHandler(deps.Service))

			r.Post("/withdrawals", handlers.WithdrawHandler(deps.Service))
			r.Get("/withdrawals", handlers.ListWithdrawalsHandler(deps.Service))

			r.Get("/referral", handlers.ReferralHandler(deps.Service))
			r.Post("/referral/apply", handlers.ApplyReferralHandler(deps.Service))

			r.Post("/autoad", handlers.AutoAdHandler(deps.Service))
		})

		// Admin routes, session auth.
		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.Sessions.Middleware)

			r.Post("/logout", handlers.LogoutHandler(deps.Sessions))
			r.Get("/overview", handlers.OverviewHandler(deps.DB, deps.Config))
			r.Get("/withdrawals", handlers.PendingWithdrawalsHandler(deps.DB))
			r.Post("/withdrawals/{id}/settle", handlers.SettleWithdrawalHandler(deps.DB))
		})
	})

	return r
}
