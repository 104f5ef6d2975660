// Package timer implements the countdown ticker.
//
// A Timer owns the remaining duration behind a mutex and the pause flag as an
// atomic boolean. Run advances the countdown on a fixed interval and writes an
// update every time the remaining duration sits on a whole second. Toggle is
// safe to call from any goroutine while Run is active.
package timer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/looplab/fsm"

	"github.com/draganm/countdown/internal/humanize"
	"github.com/draganm/countdown/internal/metrics"
	"github.com/draganm/countdown/internal/models"
)

// DefaultInterval is the time between two ticks
const DefaultInterval = 200 * time.Millisecond

const (
	eventPause  = "pause"
	eventResume = "resume"
	eventFinish = "finish"
)

type Config struct {
	Duration time.Duration
	Mode     models.DisplayMode
	Interval time.Duration
	Out      io.Writer
	Metrics  *metrics.Metrics
}

type Timer struct {
	interval time.Duration
	mode     models.DisplayMode
	out      io.Writer
	metrics  *metrics.Metrics

	mu        sync.Mutex
	remaining time.Duration

	paused atomic.Bool
	state  *fsm.FSM
}

type flusher interface {
	Flush() error
}

func New(cfg *Config) *Timer {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	m := cfg.Metrics
	if m == nil {
		m = metrics.NewUnregistered()
	}

	remaining := cfg.Duration
	if remaining < 0 {
		remaining = 0
	}

	t := &Timer{
		interval:  interval,
		mode:      cfg.Mode,
		out:       cfg.Out,
		metrics:   m,
		remaining: remaining,
	}

	t.state = fsm.NewFSM(
		string(models.StateRunning),
		fsm.Events{
			{Name: eventPause, Src: []string{string(models.StateRunning)}, Dst: string(models.StatePaused)},
			{Name: eventResume, Src: []string{string(models.StatePaused)}, Dst: string(models.StateRunning)},
			// a pause that lands after the last decrement still finishes
			{Name: eventFinish, Src: []string{string(models.StateRunning), string(models.StatePaused)}, Dst: string(models.StateDone)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("Timer state changed", "from", e.Src, "to", e.Dst)
				t.metrics.RecordTransition(e.Src, e.Dst)
			},
		},
	)

	m.Remaining.Set(remaining.Seconds())

	return t
}

// Run ticks until the remaining duration reaches zero, then writes the done notice.
// It returns early only on an output error or when ctx is cancelled.
func (t *Timer) Run(ctx context.Context) error {
	slog.Debug("Starting countdown",
		"remaining", t.Remaining(),
		"interval", t.interval,
		"mode", t.mode,
	)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		done, err := t.tick()
		if err != nil {
			return err
		}
		if done {
			return t.finish(ctx)
		}

		select {
		case <-ctx.Done():
			slog.Debug("Countdown aborted", "remaining", t.Remaining())
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// tick runs one step of the countdown with the lock held and reports whether
// the remaining duration had already reached zero.
func (t *Timer) tick() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.remaining == 0 {
		return true, nil
	}

	if t.paused.Load() {
		t.metrics.PausedTicks.Inc()
		return false, nil
	}

	if t.remaining%time.Second == 0 {
		update := fmt.Sprintf("%s%s%3s", t.mode.Prefix(), humanize.Duration(t.remaining), t.mode.Suffix())
		if err := t.write(update); err != nil {
			return false, err
		}
		t.metrics.Updates.Inc()
	}

	t.remaining = saturatingSub(t.remaining, t.interval)
	t.metrics.Ticks.Inc()
	t.metrics.Remaining.Set(t.remaining.Seconds())

	return false, nil
}

func (t *Timer) finish(ctx context.Context) error {
	// zero is terminal; the notice goes out even if ctx was cancelled meanwhile
	if err := t.state.Event(context.WithoutCancel(ctx), eventFinish); err != nil {
		return fmt.Errorf("failed to finish countdown: %w", err)
	}

	if err := t.write(t.mode.Prefix() + "done\n"); err != nil {
		return err
	}

	slog.Debug("Countdown done")
	return nil
}

func (t *Timer) write(s string) error {
	if _, err := io.WriteString(t.out, s); err != nil {
		return fmt.Errorf("%w: failed to write update: %w", ErrOutput, err)
	}
	if f, ok := t.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("%w: failed to flush update: %w", ErrOutput, err)
		}
	}
	return nil
}

// Toggle flips the pause flag and returns the new value.
func (t *Timer) Toggle(ctx context.Context) (bool, error) {
	if t.state.Is(string(models.StateDone)) {
		return t.paused.Load(), ErrDone
	}

	paused := t.flip()

	event := eventResume
	if paused {
		event = eventPause
	}
	if err := t.state.Event(ctx, event); err != nil {
		var invalid fsm.InvalidEventError
		if errors.As(err, &invalid) && t.state.Is(string(models.StateDone)) {
			return paused, ErrDone
		}
		return paused, fmt.Errorf("failed to %s countdown: %w", event, err)
	}

	t.metrics.Toggles.Inc()
	slog.Info("Countdown toggled", "paused", paused, "remaining", t.Remaining())

	return paused, nil
}

func (t *Timer) flip() bool {
	for {
		old := t.paused.Load()
		if t.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Done reports whether the remaining duration reached zero.
func (t *Timer) Done() bool {
	return t.Remaining() == 0
}

func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) Paused() bool {
	return t.paused.Load()
}

func (t *Timer) State() models.State {
	return models.State(t.state.Current())
}

func (t *Timer) Interval() time.Duration {
	return t.interval
}

func saturatingSub(a, b time.Duration) time.Duration {
	if b >= a {
		return 0
	}
	return a - b
}
