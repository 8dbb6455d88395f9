// Package rewards orchestrates the reward flows on top of the pure engines:
// pending view sessions, point awards with compensating rollbacks, check-in
// claims, referrals, withdrawals and the background auto-ad runner. All
// storage and ad-network access goes through injected ports.
package rewards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/engine"
	"github.com/playwatch/rewardd/internal/models"
)

// Store is the persistence port. internal/store implements it on sqlite.
type Store interface {
	GetAdState(userID string, cat models.AdCategory) (*models.AdCategoryState, error)
	GetAdStates(userID string) ([]models.AdCategoryState, error)
	SaveAdState(st *models.AdCategoryState) error

	GetSpinState(userID string) (*models.SpinState, error)
	SaveSpinState(st *models.SpinState) error

	GetCheckinState(userID string) (*models.CheckinState, error)
	SaveCheckinState(st *models.CheckinState) error

	GetBalance(userID string) (int64, error)
	GetTotalEarned(userID string) (int64, error)
	AddPoints(userID string, points int64) error
	DeductPoints(userID string, points int64) error
	RefundPoints(userID string, points int64) error
	RevokePoints(userID string, points int64) error

	RecordTransaction(tx *models.RewardTransaction) error
	DeleteTransaction(id int64) error
	ListTransactions(userID string, filters models.TransactionFilters, page models.Pagination) ([]models.RewardTransaction, int64, error)

	CreateWithdrawal(w *models.Withdrawal) error
	ListWithdrawals(userID string) ([]models.Withdrawal, error)

	GetOrCreateReferral(userID string) (*models.ReferralStats, error)
	FindReferralByCode(code string) (*models.ReferralStats, error)
	SetReferredBy(userID, referrerID string) error
	RecordReferral(referrerID string) error

	GetAutoAdState(userID string) (*models.AutoAdState, error)
	SaveAutoAdState(st *models.AutoAdState) error
	ListAutoAdEnabled() ([]models.AutoAdState, error)
}

// AdNetwork is the ad delivery port. adnet.ProviderSet implements it.
type AdNetwork interface {
	Fill(ctx context.Context, placement string) error
}

// Session kinds.
const (
	sessionTask = "task"
	sessionSpin = "spin"
)

// pendingSession reifies a running ad view or wheel spin on the server.
// The reward is only released when the session completes after its minimum
// view time; anything earlier is treated as a forged completion.
type pendingSession struct {
	ID        string
	Kind      string
	Category  models.AdCategory
	StartedAt time.Time
	ReadyAt   time.Time
	ExpiresAt time.Time
}

// SessionInfo is what a start call hands back to the client.
type SessionInfo struct {
	SessionID string            `json:"session_id"`
	Category  models.AdCategory `json:"category,omitempty"`
	ViewTime  int64             `json:"view_time_seconds"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Service wires the engines to storage and the ad network.
type Service struct {
	store Store
	ads   AdNetwork
	cfg   *config.Config

	mu       sync.Mutex
	sessions map[string]*pendingSession // one in-flight session per user

	rngMu sync.Mutex
	rng   *rand.Rand

	now func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewService creates the orchestration service. Call Start to launch the
// session janitor and Stop to shut it down.
func NewService(st Store, ads AdNetwork, cfg *config.Config) *Service {
	loc := cfg.Location()
	return &Service{
		store:    st,
		ads:      ads,
		cfg:      cfg,
		sessions: make(map[string]*pendingSession),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      func() time.Time { return time.Now().In(loc) },
		stopCh:   make(chan struct{}),
	}
}

// Start launches the background session janitor.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.janitor()
	slog.Info("rewards service started")
}

// Stop terminates background goroutines and waits for them to exit.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
	slog.Info("rewards service stopped")
}

// janitor drops expired pending sessions so an abandoned view never blocks
// the user's next start.
func (s *Service) janitor() {
	defer s.wg.Done()

	ticker := time.NewTicker(config.SessionJanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for uid, sess := range s.sessions {
				if now.After(sess.ExpiresAt) {
					delete(s.sessions, uid)
					slog.Debug("expired session dropped",
						"userID", uid,
						"sessionID", sess.ID,
						"kind", sess.Kind,
					)
				}
			}
			s.mu.Unlock()
		}
	}
}

// today returns the current calendar date string in the configured timezone.
func (s *Service) today() string {
	return s.now().Format(config.DateFormat)
}

// decideOutcome runs the fairness selector under the rng lock.
func (s *Service) decideOutcome(winsToday, lossesToday int) bool {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return engine.DecideOutcome(winsToday, lossesToday, s.cfg.SpinWinQuota, s.cfg.MaxSpinsPerDay, s.rng)
}

// drawSegment picks the wheel segment under the rng lock.
func (s *Service) drawSegment(isWin bool) models.WheelSegment {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return engine.DrawSegment(config.WheelSegments, isWin, s.rng)
}

// registerSession installs a session for the user, enforcing one in-flight
// session per user. An expired leftover is replaced silently.
func (s *Service) registerSession(userID string, sess *pendingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[userID]; ok && s.now().Before(existing.ExpiresAt) {
		return ErrTaskActive
	}
	s.sessions[userID] = sess
	return nil
}

// takeSession removes and returns the user's session when it matches the
// given id and kind.
func (s *Service) takeSession(userID, sessionID, kind string) (*pendingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.ID != sessionID || sess.Kind != kind {
		return nil, ErrSessionNotFound
	}
	delete(s.sessions, userID)

	if s.now().After(sess.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// award credits points and records the matching history entry. If the history
// write fails the credit is revoked so balance and history never diverge.
func (s *Service) award(userID string, points int64, txType, note string) error {
	if err := s.store.AddPoints(userID, points); err != nil {
		return fmt.Errorf("failed to credit %d points: %w", points, err)
	}

	tx := &models.RewardTransaction{
		UserID: userID,
		Type:   txType,
		Amount: points,
		Icon:   config.TxIcons[txType],
		Note:   note,
	}
	if err := s.store.RecordTransaction(tx); err != nil {
		if rbErr := s.store.RevokePoints(userID, points); rbErr != nil {
			slog.Error("rollback of unrecorded award failed",
				"userID", userID,
				"points", points,
				"error", rbErr,
			)
		}
		return fmt.Errorf("failed to record award: %w", err)
	}
	return nil
}

// mapEngineErr translates engine gate errors into service sentinels.
func mapEngineErr(err error) error {
	switch {
	case errors.Is(err, engine.ErrDailyCapReached):
		return fmt.Errorf("%w: %v", ErrDailyCapReached, err)
	case errors.Is(err, engine.ErrCoolingDown):
		return fmt.Errorf("%w: %v", ErrCoolingDown, err)
	default:
		return err
	}
}

func newSessionID() string {
	return uuid.New().String()
}
