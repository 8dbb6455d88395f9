// Package reset drives the daily counter sweep. The schedule is an uptime
// timer, not a midnight trigger: the sweep runs at startup and every 24 hours
// after, and the store-side date comparison keeps it from running twice for
// the same calendar day.
package reset

import (
	"log/slog"
	"time"

	"github.com/playwatch/rewardd/internal/config"
	"github.com/robfig/cron/v3"
)

// Store is the slice of the persistence layer the driver needs.
type Store interface {
	ResetDaily(today string) (bool, error)
	LastResetDate() (string, error)
}

// Driver owns the reset schedule.
type Driver struct {
	store Store
	loc   *time.Location
	cron  *cron.Cron
	now   func() time.Time
}

// NewDriver creates a reset driver sweeping in the given timezone.
func NewDriver(st Store, loc *time.Location) *Driver {
	return &Driver{
		store: st,
		loc:   loc,
		cron:  cron.New(),
		now:   func() time.Time { return time.Now().In(loc) },
	}
}

// Start runs one sweep immediately, then schedules one every 24 hours of
// uptime.
func (d *Driver) Start() error {
	d.RunOnce()

	if _, err := d.cron.AddFunc("@every 24h", d.RunOnce); err != nil {
		return err
	}
	d.cron.Start()

	slog.Info("daily reset driver started", "timezone", d.loc.String())
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (d *Driver) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
	slog.Info("daily reset driver stopped")
}

// RunOnce sweeps if today's date differs from the last swept date.
func (d *Driver) RunOnce() {
	today := d.now().Format(config.DateFormat)

	ran, err := d.store.ResetDaily(today)
	if err != nil {
		slog.Error("daily reset failed", "date", today, "error", err)
		return
	}
	if ran {
		slog.Info("daily reset swept", "date", today)
	} else {
		slog.Debug("daily reset already done for date", "date", today)
	}
}
