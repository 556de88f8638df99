package services

import (
	"sync"
	"time"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// ValidationWatcher coalesces rapid mapping edits into one summary
// recomputation. Each Notify resets the quiet-period timer rather than
// queueing another run, so only the most recent state after the quiet
// period is summarized. A computation that turns out stale (a newer Notify
// arrived while it ran) is discarded without reporting, which guarantees
// onChange never delivers a summary older than the latest input.
type ValidationWatcher struct {
	aggregator MappingAggregator
	interval   time.Duration
	fetch      func() []models.Mapping
	onChange   func(models.ValidationSummary)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

func newValidationWatcher(
	aggregator MappingAggregator,
	interval time.Duration,
	fetch func() []models.Mapping,
	onChange func(models.ValidationSummary),
) *ValidationWatcher {
	return &ValidationWatcher{
		aggregator: aggregator,
		interval:   interval,
		fetch:      fetch,
		onChange:   onChange,
	}
}

// Notify signals that the mapping set changed. The debounce timer resets;
// the summary is recomputed once the set has been quiet for the full
// window.
func (w *ValidationWatcher) Notify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}

	w.gen++
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.interval, w.fire)
}

// Flush runs the recomputation immediately, bypassing the quiet period.
// Used when the caller needs a summary before proceeding (e.g. gating a
// save action).
func (w *ValidationWatcher) Flush() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	w.fire()
}

// Unsubscribe stops the watcher; pending recomputations are dropped
func (w *ValidationWatcher) Unsubscribe() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *ValidationWatcher) fire() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	gen := w.gen
	w.mu.Unlock()

	summary := w.aggregator.SummarizeMappings(w.fetch())

	w.mu.Lock()
	stale := gen != w.gen || w.stopped
	w.mu.Unlock()

	// A newer Notify rearmed the timer while we computed; let that run
	// report instead of delivering a stale summary.
	if stale {
		return
	}

	w.onChange(summary)
}
