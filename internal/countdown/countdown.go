// Package countdown wires the ticker and the input listener together.
//
// Run starts the ticker on its own goroutine and listens for toggle requests
// until the remaining duration reaches zero. It then joins the ticker so the
// done notice is written before returning. The first error from either side
// cancels the other and is returned.
package countdown

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/draganm/countdown/internal/input"
	"github.com/draganm/countdown/internal/metrics"
	"github.com/draganm/countdown/internal/models"
	"github.com/draganm/countdown/internal/timer"
)

// ErrTickerAborted indicates that the ticker goroutine terminated abnormally
var ErrTickerAborted = errors.New("ticker aborted")

type Config struct {
	Settings models.Settings
	Interval time.Duration
	In       io.Reader
	Out      io.Writer
	Metrics  *metrics.Metrics
}

func Run(ctx context.Context, cfg *Config) error {
	total, err := cfg.Settings.Total()
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}

	t := timer.New(&timer.Config{
		Duration: total,
		Mode:     cfg.Settings.Mode(),
		Interval: cfg.Interval,
		Out:      cfg.Out,
		Metrics:  cfg.Metrics,
	})

	l := input.NewListener(cfg.In)
	defer l.Close()

	slog.Info("Starting countdown",
		"duration", total,
		"line_mode", cfg.Settings.LineMode,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrTickerAborted, r)
			}
		}()
		return t.Run(gctx)
	})

	g.Go(func() error {
		return listen(gctx, t, l)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Countdown finished", "duration", total)
	return nil
}

// listen flips the pause flag on every toggle line until the countdown is done.
func listen(ctx context.Context, t *timer.Timer, l *input.Listener) error {
	for !t.Done() {
		line, ok, err := l.Next(ctx, t.Interval())
		if err != nil {
			return err
		}
		if !ok || !input.IsToggle(line) {
			continue
		}

		if _, err := t.Toggle(ctx); err != nil {
			if timer.IsDone(err) {
				return nil
			}
			return err
		}
	}
	return nil
}
