package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
)

type contextKey string

const userIDKey contextKey = "userID"

// AuthHeader carries the signed user token: "<uid>.<hex hmac-sha256>".
const AuthHeader = "X-Auth-Token"

// UserAuth authenticates app clients. The stable user id arrives signed with
// the shared secret; profile data never flows through this service.
type UserAuth struct {
	secret []byte
}

// NewUserAuth creates the authenticator from the shared signing secret.
func NewUserAuth(secret string) *UserAuth {
	return &UserAuth{secret: []byte(secret)}
}

// SignUserToken produces the token a client presents for userID.
func SignUserToken(secret, userID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(userID))
	return userID + "." + hex.EncodeToString(mac.Sum(nil))
}

// Middleware rejects requests without a valid signed user token and stashes
// the user id in the request context.
func (a *UserAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(AuthHeader)
		userID, ok := a.verify(token)
		if !ok {
			slog.Debug("user auth failed",
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr,
			)
			httputil.Error(w, http.StatusUnauthorized, config.ErrorUnauthorized, "Valid auth token required")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *UserAuth) verify(token string) (string, bool) {
	idx := strings.LastIndex(token, ".")
	if idx <= 0 || idx == len(token)-1 {
		return "", false
	}
	userID, sigHex := token[:idx], token[idx+1:]

	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return "", false
	}

	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(userID))
	if subtle.ConstantTimeCompare(sig, mac.Sum(nil)) != 1 {
		return "", false
	}
	return userID, true
}

// UserID extracts the authenticated user id from the request context.
func UserID(r *http.Request) string {
	uid, _ := r.Context().Value(userIDKey).(string)
	return uid
}
