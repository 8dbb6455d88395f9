package handlers

import (
	"net/http"
	"strconv"

	"github.com/playwatch/rewardd/internal/api/middleware"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
	"github.com/playwatch/rewardd/internal/models"
	"github.com/playwatch/rewardd/internal/rewards"
)

// StateHandler returns a handler for GET /api/state: the full per-user
// reward snapshot in one call.
func StateHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Snapshot(middleware.UserID(r))
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, snap)
	}
}

// BalanceHandler returns a handler for GET /api/balance.
func BalanceHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := svc.Balance(middleware.UserID(r))
		if err != nil {
			serviceError(w, err)
			return
		}
		httputil.JSON(w, http.StatusOK, map[string]int64{"points": points})
	}
}

// TransactionsHandler returns a handler for GET /api/transactions with
// optional type/debit filters and pagination.
func TransactionsHandler(svc *rewards.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		page := parsePositiveInt(q.Get("page"), 1)
		pageSize := parsePositiveInt(q.Get("page_size"), config.DefaultPageSize)
		if pageSize > config.MaxPageSize {
			pageSize = config.MaxPageSize
		}

		var filters models.TransactionFilters
		if t := q.Get("type"); t != "" {
			filters.Type = &t
		}
		if d := q.Get("debit"); d != "" {
			debit := d == "true" || d == "1"
			filters.Debit = &debit
		}

		txs, total, err := svc.Transactions(middleware.UserID(r), filters, models.Pagination{Page: page, PageSize: pageSize})
		if err != nil {
			serviceError(w, err)
			return
		}
		if txs == nil {
			txs = []models.RewardTransaction{}
		}
		httputil.JSONList(w, txs, page, pageSize, total)
	}
}

func parsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
