package rewards

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/playwatch/rewardd/internal/engine"
	"github.com/playwatch/rewardd/internal/models"
)

// autoAdPlacement is the placement tag auto-ad fills are requested under.
const autoAdPlacement = "auto"

// autoAdCategory is the ad category the background flow draws against, so
// auto ads and manual interstitials share one daily cap.
const autoAdCategory = models.AdInterstitial

// SetAutoAd toggles the opt-in background ad flow. Re-enabling is refused
// while the flow is disabled for the day after repeated failures.
func (s *Service) SetAutoAd(userID string, enabled bool) (*models.AutoAdState, error) {
	st, err := s.store.GetAutoAdState(userID)
	if err != nil {
		return nil, err
	}
	if enabled && st.DisabledForDay {
		return nil, ErrAutoAdDisabled
	}

	st.Enabled = enabled
	if err := s.store.SaveAutoAdState(st); err != nil {
		return nil, err
	}

	slog.Info("auto-ad toggled", "userID", userID, "enabled", enabled)
	return st, nil
}

// AutoAdRunner periodically shows a background ad to every opted-in user.
// Network errors do not cost the user the reward; the award is made on good
// faith and the failure only counts toward the daily disablement.
type AutoAdRunner struct {
	svc      *Service
	interval time.Duration

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewAutoAdRunner builds the runner from the service configuration.
func NewAutoAdRunner(svc *Service) *AutoAdRunner {
	return &AutoAdRunner{
		svc:      svc,
		interval: time.Duration(svc.cfg.AutoAdIntervalMin) * time.Minute,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the background loop.
func (r *AutoAdRunner) Start() {
	r.wg.Add(1)
	go r.loop()
	slog.Info("auto-ad runner started", "interval", r.interval)
}

// Stop terminates the loop and waits for it to exit.
func (r *AutoAdRunner) Stop() {
	close(r.stopCh)
	r.wg.Wait()
	slog.Info("auto-ad runner stopped")
}

func (r *AutoAdRunner) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if err := r.RunOnce(ctx); err != nil {
				slog.Error("auto-ad sweep failed", "error", err)
			}
			cancel()
		}
	}
}

// RunOnce performs one sweep over every opted-in user.
func (r *AutoAdRunner) RunOnce(ctx context.Context) error {
	users, err := r.svc.store.ListAutoAdEnabled()
	if err != nil {
		return fmt.Errorf("failed to list auto-ad users: %w", err)
	}

	for i := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		if users[i].DisabledForDay {
			continue
		}
		if err := r.runUser(ctx, &users[i]); err != nil {
			slog.Warn("auto-ad cycle failed for user",
				"userID", users[i].UserID,
				"error", err,
			)
		}
	}
	return nil
}

// runUser executes one background ad cycle for a single user.
func (r *AutoAdRunner) runUser(ctx context.Context, aa *models.AutoAdState) error {
	s := r.svc
	now := s.now()
	pol := config.PolicyFor(autoAdCategory)

	st, err := s.store.GetAdState(aa.UserID, autoAdCategory)
	if err != nil {
		return err
	}
	if err := engine.CanStart(*st, pol, now); err != nil {
		// Cap reached or cooling down; skip silently until the next sweep.
		return nil
	}

	if fillErr := s.ads.Fill(ctx, autoAdPlacement); fillErr != nil {
		aa.FailuresToday++
		if aa.FailuresToday >= s.cfg.AutoAdFailureLimit {
			aa.DisabledForDay = true
			slog.Warn("auto-ad disabled for the day",
				"userID", aa.UserID,
				"failures", aa.FailuresToday,
			)
		}
		if err := s.store.SaveAutoAdState(aa); err != nil {
			return err
		}
		slog.Warn("auto-ad fill failed, awarding on good faith",
			"userID", aa.UserID,
			"error", fillErr,
		)
	} else if aa.FailuresToday > 0 {
		aa.FailuresToday = 0
		if err := s.store.SaveAutoAdState(aa); err != nil {
			return err
		}
	}

	newSt := engine.Advance(*st, pol, now)
	if err := s.store.SaveAdState(&newSt); err != nil {
		return err
	}
	return s.award(aa.UserID, pol.Reward, config.TxTypeAutoAd, autoAdPlacement)
}
