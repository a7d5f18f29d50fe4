package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cubixparts/quotebuilder/internal/catalog"
)

// Watcher periodically fingerprints the catalog source and warns when the
// upstream content no longer matches what was loaded at startup. The loaded
// store stays immutable; picking up a changed catalog requires a restart.
type Watcher struct {
	cron     *cron.Cron
	source   catalog.Source
	schedule string
	baseline string
	lastSeen string
	logger   *zap.Logger
}

// NewWatcher creates a drift watcher for the given source. The baseline is
// the fingerprint of the catalog actually loaded.
func NewWatcher(source catalog.Source, baseline, schedule string, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		cron:     cron.New(),
		source:   source,
		schedule: schedule,
		baseline: baseline,
		lastSeen: baseline,
		logger:   logger,
	}
}

// SetBaseline records the fingerprint of the catalog that was loaded. Call
// before Start; the check runs on the cron goroutine afterwards.
func (w *Watcher) SetBaseline(fingerprint string) {
	w.baseline = fingerprint
	w.lastSeen = fingerprint
}

// Start schedules the periodic check. A watcher with an empty schedule is
// inert.
func (w *Watcher) Start() {
	if w.schedule == "" {
		w.logger.Info("catalog drift watcher disabled")
		return
	}

	if _, err := w.cron.AddFunc(w.schedule, w.check); err != nil {
		w.logger.Error("failed to schedule catalog drift check", zap.Error(err))
		return
	}

	w.logger.Info("catalog drift watcher started",
		zap.String("source", w.source.Describe()),
		zap.String("schedule", w.schedule))
	w.cron.Start()
}

// Stop stops the scheduler.
func (w *Watcher) Stop() {
	w.cron.Stop()
}

func (w *Watcher) check() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	current, err := w.source.Fingerprint(ctx)
	if err != nil {
		w.logger.Error("catalog drift check failed", zap.Error(err))
		return
	}

	if current == w.lastSeen {
		return
	}
	w.lastSeen = current

	if current != w.baseline {
		w.logger.Warn("catalog source changed since load, restart to pick up the new catalog",
			zap.String("source", w.source.Describe()))
	} else {
		w.logger.Info("catalog source reverted to the loaded content",
			zap.String("source", w.source.Describe()))
	}
}
