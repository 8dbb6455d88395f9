package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/playwatch/rewardd/internal/api/middleware"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// LoginHandler returns a handler for POST /api/admin/login. No session
// required; this is the endpoint that creates one.
func LoginHandler(sessions *middleware.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidRequest, "Username and password are required")
			return
		}

		token, err := sessions.Login(req.Username, req.Password)
		if err != nil {
			httputil.Error(w, http.StatusUnauthorized, config.ErrorInvalidCredentials, "Invalid username or password")
			return
		}

		setSessionCookie(w, token, 0)
		slog.Info("admin login via API", "remoteAddr", r.RemoteAddr)
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "logged_in"})
	}
}

// LogoutHandler returns a handler for POST /api/admin/logout.
func LogoutHandler(sessions *middleware.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(config.SessionCookieName); err == nil {
			sessions.Logout(cookie.Value)
		}

		setSessionCookie(w, "", -1)
		slog.Info("admin logout via API", "remoteAddr", r.RemoteAddr)
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
	}
}
