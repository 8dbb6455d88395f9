package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/httputil"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login on a bad username or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionStore manages in-memory admin sessions. Sessions die with the
// process; admins just log in again.
type SessionStore struct {
	mu       sync.RWMutex
	expiries map[string]time.Time // token -> expiry
	passHash []byte
	username string
}

// NewSessionStore hashes the admin password and returns an empty store.
func NewSessionStore(username, password string) (*SessionStore, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	slog.Info("session store initialized", "username", username)
	return &SessionStore{
		expiries: make(map[string]time.Time),
		passHash: hash,
		username: username,
	}, nil
}

// Login checks the credentials and mints a session token.
func (s *SessionStore) Login(username, password string) (string, error) {
	if username != s.username || bcrypt.CompareHashAndPassword(s.passHash, []byte(password)) != nil {
		slog.Warn("admin login rejected", "attempted", username)
		return "", ErrInvalidCredentials
	}

	raw := make([]byte, config.SessionTokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(raw)
	expiry := time.Now().Add(config.SessionTimeout)

	s.mu.Lock()
	s.expiries[token] = expiry
	// Opportunistic sweep; the map only grows by one entry per login.
	for t, exp := range s.expiries {
		if time.Now().After(exp) {
			delete(s.expiries, t)
		}
	}
	s.mu.Unlock()

	slog.Info("admin login successful", "username", username, "expiresAt", expiry.UTC().Format(time.RFC3339))
	return token, nil
}

// Validate reports whether the token belongs to a live session.
func (s *SessionStore) Validate(token string) bool {
	s.mu.RLock()
	expiry, ok := s.expiries[token]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		s.mu.Lock()
		delete(s.expiries, token)
		s.mu.Unlock()
		return false
	}
	return true
}

// Logout drops the session.
func (s *SessionStore) Logout(token string) {
	s.mu.Lock()
	delete(s.expiries, token)
	s.mu.Unlock()
	slog.Info("admin logged out")
}

// Middleware rejects requests without a valid session cookie.
func (s *SessionStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(config.SessionCookieName)
		if err != nil || !s.Validate(cookie.Value) {
			slog.Debug("session middleware rejected request",
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr,
			)
			httputil.Error(w, http.StatusUnauthorized, config.ErrorSessionExpired, "Session expired, please log in")
			return
		}
		next.ServeHTTP(w, r)
	})
}
