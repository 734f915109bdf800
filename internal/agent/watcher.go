package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/pinbox/pinbox/internal/logger"
)

// Watcher handles periodic pull-merging of the remote collection.
type Watcher struct {
	agent         *Agent
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewWatcher creates a watcher that pulls every interval. manualTrigger
// may be nil; when set, a send on it forces an immediate pull.
func NewWatcher(a *Agent, log logger.Logger, interval time.Duration, manualTrigger chan struct{}) *Watcher {
	return &Watcher{
		agent:         a,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start pulls once immediately, then keeps pulling in the background.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.pull(ctx); err != nil {
		return fmt.Errorf("initial pull failed: %w", err)
	}

	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := w.pull(ctx); err != nil {
					w.logger.Error("periodic pull failed", logger.Error(err))
				}
			case <-w.manualTrigger:
				w.logger.Info("manual pull triggered")
				if err := w.pull(ctx); err != nil {
					w.logger.Error("manual pull failed", logger.Error(err))
				}
			case <-w.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) pull(ctx context.Context) error {
	added, err := w.agent.Pull(ctx)
	if err != nil {
		return err
	}
	if added > 0 {
		w.logger.Info("adopted remote bookmarks", logger.Int("count", added))
	}
	return nil
}
