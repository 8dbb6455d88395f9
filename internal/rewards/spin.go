package rewards

import (
	"context"
	"errors"
	"log/slog"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/engine"
	"github.com/playwatch/rewardd/internal/models"
)

// SpinResult is the outcome of one completed wheel spin.
type SpinResult struct {
	Win     bool                `json:"win"`
	Segment models.WheelSegment `json:"segment"`
	State   models.SpinState    `json:"state"`
}

// StartSpin opens a pending spin. The wheel animation runs client-side; the
// server holds the outcome back until the minimum spin time has elapsed.
func (s *Service) StartSpin(ctx context.Context, userID string) (*SessionInfo, error) {
	now := s.now()

	st, err := s.store.GetSpinState(userID)
	if err != nil {
		return nil, err
	}
	if err := engine.CanSpin(*st, s.cfg.MaxSpinsPerDay, now); err != nil {
		if errors.Is(err, engine.ErrDailyCapReached) {
			return nil, ErrSpinLimitReached
		}
		return nil, mapEngineErr(err)
	}

	sess := &pendingSession{
		ID:        newSessionID(),
		Kind:      sessionSpin,
		StartedAt: now,
		ReadyAt:   now.Add(config.SpinViewTime),
		ExpiresAt: now.Add(config.PendingSessionTTL),
	}
	if err := s.registerSession(userID, sess); err != nil {
		return nil, err
	}

	slog.Info("spin started", "userID", userID, "sessionID", sess.ID)
	return &SessionInfo{
		SessionID: sess.ID,
		ViewTime:  int64(config.SpinViewTime.Seconds()),
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// CompleteSpin verifies the pending spin, decides the outcome with the
// quota-balanced selector, draws a segment and releases any prize. The
// outcome decision and segment draw stay independent: balancing never skews
// which winning segment comes up.
func (s *Service) CompleteSpin(ctx context.Context, userID, sessionID string) (*SpinResult, error) {
	sess, err := s.takeSession(userID, sessionID, sessionSpin)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if now.Before(sess.ReadyAt) {
		slog.Warn("spin completed before spin time elapsed",
			"userID", userID,
			"sessionID", sessionID,
			"early", sess.ReadyAt.Sub(now),
		)
		return nil, ErrVerificationFailed
	}

	st, err := s.store.GetSpinState(userID)
	if err != nil {
		return nil, err
	}
	if err := engine.CanSpin(*st, s.cfg.MaxSpinsPerDay, sess.StartedAt); err != nil {
		if errors.Is(err, engine.ErrDailyCapReached) {
			return nil, ErrSpinLimitReached
		}
		return nil, mapEngineErr(err)
	}

	isWin := s.decideOutcome(st.WinsToday, st.LossesToday)
	segment := s.drawSegment(isWin)

	newSt := engine.ApplySpin(*st, isWin, now, config.SpinCooldown, s.cfg.MaxSpinsPerDay)
	if err := s.store.SaveSpinState(&newSt); err != nil {
		return nil, err
	}

	if isWin && segment.Points > 0 {
		if err := s.award(userID, segment.Points, config.TxTypeSpinWin, segment.Label); err != nil {
			return nil, err
		}
	}

	slog.Info("spin completed",
		"userID", userID,
		"win", isWin,
		"segment", segment.Label,
		"spinsToday", newSt.SpinsToday,
		"winsToday", newSt.WinsToday,
	)
	return &SpinResult{
		Win:     isWin,
		Segment: segment,
		State:   newSt,
	}, nil
}

// CancelSpin discards a pending spin without an outcome.
func (s *Service) CancelSpin(userID, sessionID string) error {
	if _, err := s.takeSession(userID, sessionID, sessionSpin); err != nil {
		return err
	}
	slog.Info("spin cancelled", "userID", userID, "sessionID", sessionID)
	return nil
}
