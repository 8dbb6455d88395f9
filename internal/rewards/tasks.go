package rewards

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/engine"
	"github.com/playwatch/rewardd/internal/models"
)

// TaskResult is the outcome of a verified ad-task completion.
type TaskResult struct {
	Category     models.AdCategory      `json:"category"`
	RewardPoints int64                  `json:"reward_points"`
	State        models.AdCategoryState `json:"state"`
}

// StartTask opens a pending ad view for the category. The ad network is
// asked for a fill first; a no-fill leaves all state untouched.
func (s *Service) StartTask(ctx context.Context, userID string, cat models.AdCategory) (*SessionInfo, error) {
	if !cat.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
	}
	pol := config.PolicyFor(cat)
	now := s.now()

	st, err := s.store.GetAdState(userID, cat)
	if err != nil {
		return nil, err
	}
	if err := engine.CanStart(*st, pol, now); err != nil {
		return nil, mapEngineErr(err)
	}

	if err := s.ads.Fill(ctx, string(cat)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdUnavailable, err)
	}

	sess := &pendingSession{
		ID:        newSessionID(),
		Kind:      sessionTask,
		Category:  cat,
		StartedAt: now,
		ReadyAt:   now.Add(pol.ViewTime),
		ExpiresAt: now.Add(config.PendingSessionTTL),
	}
	if err := s.registerSession(userID, sess); err != nil {
		return nil, err
	}

	slog.Info("ad task started",
		"userID", userID,
		"category", cat,
		"sessionID", sess.ID,
	)
	return &SessionInfo{
		SessionID: sess.ID,
		Category:  cat,
		ViewTime:  int64(pol.ViewTime.Seconds()),
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// CompleteTask verifies a pending ad view and releases the reward. Completing
// before the minimum view time has elapsed is a forged completion: the session
// is discarded and nothing is mutated.
func (s *Service) CompleteTask(ctx context.Context, userID, sessionID string) (*TaskResult, error) {
	sess, err := s.takeSession(userID, sessionID, sessionTask)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if now.Before(sess.ReadyAt) {
		slog.Warn("task completed before view time elapsed",
			"userID", userID,
			"category", sess.Category,
			"sessionID", sessionID,
			"early", sess.ReadyAt.Sub(now),
		)
		return nil, ErrVerificationFailed
	}

	pol := config.PolicyFor(sess.Category)

	st, err := s.store.GetAdState(userID, sess.Category)
	if err != nil {
		return nil, err
	}
	newSt := engine.Advance(*st, pol, now)
	if err := s.store.SaveAdState(&newSt); err != nil {
		return nil, err
	}

	if err := s.award(userID, pol.Reward, config.TxTypeAdReward, string(sess.Category)); err != nil {
		return nil, err
	}

	slog.Info("ad task completed",
		"userID", userID,
		"category", sess.Category,
		"completedToday", newSt.CompletedToday,
		"reward", pol.Reward,
	)
	return &TaskResult{
		Category:     sess.Category,
		RewardPoints: pol.Reward,
		State:        newSt,
	}, nil
}

// CancelTask discards a pending ad view without reward.
func (s *Service) CancelTask(userID, sessionID string) error {
	if _, err := s.takeSession(userID, sessionID, sessionTask); err != nil {
		return err
	}
	slog.Info("ad task cancelled", "userID", userID, "sessionID", sessionID)
	return nil
}
